// Package markdown extracts link and image destinations from Markdown
// content for analysis. It does not attempt to re-render Markdown.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// ExtractLinks parses a Markdown body and returns every hyperlink
// destination: inline and reference links, autolinks, and href attributes
// found in raw inline/block HTML fragments.
func ExtractLinks(body []byte) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	links := make([]string, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, string(node.URL(body)))
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, string(node.Destination))
		case *gmast.RawHTML:
			links = append(links, attrValues(rawHTMLSegments(node, body), "a", "href")...)
		case *gmast.HTMLBlock:
			links = append(links, attrValues(htmlBlockText(node, body), "a", "href")...)
		}
		return gmast.WalkContinue, nil
	})

	return links
}

// ExtractImageRefs parses a Markdown body and returns every image
// destination, from both ![alt](path) nodes and <img src> in raw HTML.
func ExtractImageRefs(body []byte) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	images := make([]string, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Image:
			images = append(images, string(node.Destination))
		case *gmast.RawHTML:
			images = append(images, attrValues(rawHTMLSegments(node, body), "img", "src")...)
		case *gmast.HTMLBlock:
			images = append(images, attrValues(htmlBlockText(node, body), "img", "src")...)
		}
		return gmast.WalkContinue, nil
	})

	return images
}

func rawHTMLSegments(n *gmast.RawHTML, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

func htmlBlockText(n *gmast.HTMLBlock, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		sb.Write(line.Value(source))
	}
	if n.HasClosure() {
		sb.Write(n.ClosureLine.Value(source))
	}
	return sb.String()
}

// attrValues parses an HTML fragment and collects the given attribute from
// every element with the given tag name.
func attrValues(fragment, tag, attr string) []string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			if v := getAttr(n, attr); v != "" {
				out = append(out, v)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
