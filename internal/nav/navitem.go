// Package nav loads a MkDocs-style navigation hierarchy and maps it onto
// the filesystem. A monorepo composes separately-rooted subsites through
// "!include" directives, each naming another subsite's own nav file.
package nav

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the three shapes a nav entry can take.
type Kind int

const (
	// KindPage is a single-key mapping title -> path.
	KindPage Kind = iota
	// KindSection is a single-key mapping title -> nested entries.
	KindSection
	// KindPlainPath is a bare path string.
	KindPlainPath
)

// Item is one entry of the nav tree. Exactly one shape is populated,
// indicated by Kind. Sibling order is display-only.
type Item struct {
	Kind     Kind
	Title    string
	Path     string
	Children []Item
}

// Config is the decoded nav configuration of one site or subsite.
type Config struct {
	Nav []Item `yaml:"nav"`
}

// UnmarshalYAML decodes the ambiguous source format. The shapes are tried
// in a fixed structural order because nothing in the YAML tags them:
// a scalar is a plain path, a single-key mapping with a scalar value is a
// page, a single-key mapping with a sequence value is a section.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var p string
		if err := value.Decode(&p); err != nil {
			return err
		}
		*it = Item{Kind: KindPlainPath, Path: p}
		return nil

	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: nav entry must be a single-key mapping", value.Line)
		}
		key, val := value.Content[0], value.Content[1]

		var title string
		if err := key.Decode(&title); err != nil {
			return err
		}

		switch val.Kind {
		case yaml.ScalarNode:
			var p string
			if err := val.Decode(&p); err != nil {
				return err
			}
			*it = Item{Kind: KindPage, Title: title, Path: p}
			return nil
		case yaml.SequenceNode:
			var children []Item
			if err := val.Decode(&children); err != nil {
				return err
			}
			*it = Item{Kind: KindSection, Title: title, Children: children}
			return nil
		default:
			return fmt.Errorf("line %d: nav entry %q must map to a path or a list", value.Line, title)
		}

	default:
		return fmt.Errorf("line %d: unsupported nav entry", value.Line)
	}
}

// IncludeTarget reports whether a page target is an "!include" directive
// and returns the named nav file, with optional surrounding quotes removed.
func IncludeTarget(target string) (string, bool) {
	trimmed := strings.TrimSpace(target)
	rest, ok := strings.CutPrefix(trimmed, "!include")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	rest = strings.Trim(rest, `"'`)
	return rest, true
}
