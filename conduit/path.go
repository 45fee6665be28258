package conduit

import "strings"

// SplitPath splits a slash-separated path into its components.
// Leading and trailing slashes are handled, empty components are removed.
//
// Examples:
//   - "" -> []string{}
//   - "fields" -> []string{"fields"}
//   - "coordsets/coords/type" -> []string{"coordsets", "coords", "type"}
//   - "a//b/" -> []string{"a", "b"}
func SplitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return []string{}
	}
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPath joins path components with "/", skipping empty components.
func JoinPath(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString(p)
	}
	return b.String()
}

// CleanPath normalizes a path: no leading or trailing slash and no empty
// components. Tree paths are always relative to the node they are
// resolved against.
func CleanPath(path string) string {
	return JoinPath(SplitPath(path)...)
}
