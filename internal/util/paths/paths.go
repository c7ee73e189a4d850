// Package paths provides pure lexical path algebra for the auditor.
//
// Everything here works on slash-separated strings and never touches the
// filesystem: non-existence of a path is a finding, not an error, so the
// normalizers must not care whether a path exists.
package paths

import (
	"path/filepath"
	"strings"
)

// Normalize resolves "." and ".." components lexically.
//
// A ".." pops the previous component only when that component is a plain
// name; leading ".." runs (or ".." directly below the root) are preserved
// so callers can still see that a path escapes its base.
func Normalize(p string) string {
	slashed := filepath.ToSlash(p)
	rooted := strings.HasPrefix(slashed, "/")

	var stack []string
	for _, seg := range strings.Split(slashed, "/") {
		switch seg {
		case "", ".":
			// skip
		case "..":
			if n := len(stack); n > 0 && stack[n-1] != ".." {
				stack = stack[:n-1]
			} else if !rooted {
				stack = append(stack, "..")
			}
		default:
			stack = append(stack, seg)
		}
	}

	joined := strings.Join(stack, "/")
	if rooted {
		return "/" + joined
	}
	if joined == "" {
		return "."
	}
	return joined
}

// Join joins segments and normalizes the result.
func Join(segs ...string) string {
	return Normalize(strings.Join(segs, "/"))
}

// URL normalizes a path into a canonical rendered-URL string: "." dropped,
// ".." pops unconditionally, components joined with "/". No leading slash
// survives; rendered URLs are always site-relative.
func URL(p string) string {
	var parts []string
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}

// Stem returns the final component of p without its extension.
func Stem(p string) string {
	base := filepath.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// StripExt returns p without its extension.
func StripExt(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// Parent returns the normalized parent directory of p ("" for a bare name).
func Parent(p string) string {
	slashed := filepath.ToSlash(p)
	idx := strings.LastIndex(slashed, "/")
	if idx < 0 {
		return ""
	}
	if idx == 0 {
		return "/"
	}
	return slashed[:idx]
}

// FirstSegment returns the first component of a slash-separated path and
// the remainder after it.
func FirstSegment(p string) (first, rest string) {
	slashed := strings.TrimPrefix(filepath.ToSlash(p), "/")
	first, rest, _ = strings.Cut(slashed, "/")
	return first, rest
}
