// Package helpindex scans the application help registry: a C-like header
// with #define macros and HELP_URL("key", <expr>) entries mapping help
// keys to documentation paths under the monorepo root.
package helpindex

import (
	"os"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/errors"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
)

var (
	defineRe = regexp.MustCompile(`#define\s+(\w+)\s+"([^"]+)"`)
	// Second argument of HELP_URL: a quoted literal, a macro reference, or
	// a concatenation of the two (MACRO"/suffix").
	helpURLRe = regexp.MustCompile(`HELP_URL\s*\("(?:[^"]|\\")*"\s*,\s*([^)]+)\)`)
)

// Extract reads the help index header and returns the expected filesystem
// path of every HELP_URL target under docRoot.
//
// The first segment of each slash-separated target names a subsite; a
// "docs" segment is inserted after it and ".md" appended, mirroring how
// the documentation tree lays pages out on disk.
func Extract(headerPath, docRoot string) ([]string, error) {
	raw, err := os.ReadFile(headerPath)
	if err != nil {
		return nil, errors.HelpIndexReadFailed(headerPath, err)
	}

	// Commented-out entries must never match.
	content := StripComments(string(raw))

	macros := make(map[string]string)
	for _, m := range defineRe.FindAllStringSubmatch(content, -1) {
		macros[m[1]] = strings.TrimSpace(m[2])
	}

	var out []string
	for _, m := range helpURLRe.FindAllStringSubmatch(content, -1) {
		expanded := expand(strings.TrimSpace(m[1]), macros)
		out = append(out, paths.Join(docRoot, injectDocs(expanded)+".md"))
	}
	return out, nil
}

// expand resolves a HELP_URL expression against the macro table. The
// expression is split on quotes; each piece is either a macro name or a
// literal fragment, concatenated in order.
func expand(raw string, macros map[string]string) string {
	var sb strings.Builder
	for _, part := range strings.Split(raw, `"`) {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if val, ok := macros[trimmed]; ok {
			sb.WriteString(val)
		} else {
			sb.WriteString(trimmed)
		}
	}
	return sb.String()
}

// injectDocs inserts "docs" after the first path component:
// "language-reference-guide/symbols/comma" ->
// "language-reference-guide/docs/symbols/comma".
func injectDocs(p string) string {
	first, rest := paths.FirstSegment(p)
	if first == "" {
		return "docs"
	}
	if rest == "" {
		return first + "/docs"
	}
	return first + "/docs/" + rest
}

// StripComments removes // line comments and /* */ block comments so that
// disabled entries are invisible to the scanners. Newlines terminated by a
// line comment are preserved to keep the shape of the text.
func StripComments(content string) string {
	var sb strings.Builder
	sb.Grow(len(content))

	inBlock := false
	for i := 0; i < len(content); i++ {
		ch := content[i]
		if inBlock {
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				i++
				inBlock = false
			}
			continue
		}

		if ch == '/' && i+1 < len(content) {
			switch content[i+1] {
			case '/':
				for i++; i < len(content); i++ {
					if content[i] == '\n' {
						sb.WriteByte('\n')
						break
					}
				}
				continue
			case '*':
				i++
				inBlock = true
				continue
			}
		}

		sb.WriteByte(ch)
	}

	return sb.String()
}
