// Package pathutil provides the path arithmetic behind map location and
// sourceRoot computation.
//
// All results use forward slashes regardless of host convention, never
// carry a trailing slash, and never start with "./". Empty segments are
// no-ops so that an explicit empty sourceRoot survives a Join unchanged.
package pathutil

import (
	"path"
	"path/filepath"
	"strings"
)

// Unix converts a host path to forward-slash form.
func Unix(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Join joins the given segments with forward slashes and collapses
// "." and ".." components. Empty segments are skipped; if every segment
// is empty the result is "".
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		parts = append(parts, Unix(s))
	}
	if len(parts) == 0 {
		return ""
	}

	return path.Join(parts...)
}

// Relative returns the shortest relative path from the directory fromDir
// to toPath, using ".." segments as needed. Identical locations yield "".
func Relative(fromDir, toPath string) string {
	rel, err := filepath.Rel(filepath.FromSlash(fromDir), filepath.FromSlash(toPath))
	if err != nil {
		// Different volumes or mixed absolute/relative inputs: the
		// target cannot be reached relatively, keep it as-is.
		return Unix(toPath)
	}

	rel = Unix(rel)
	if rel == "." {
		return ""
	}

	return rel
}

// Dir returns the directory portion of p in forward-slash form.
func Dir(p string) string {
	return path.Dir(Unix(p))
}

// HasScheme reports whether p starts with a URL scheme ("https://",
// "webpack://", "data:"). Such values bypass relative-path arithmetic.
func HasScheme(p string) bool {
	for i, r := range p {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			continue
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
			continue
		case i > 0 && r == ':':
			return true
		}

		return false
	}

	return false
}

// IsAbs reports whether p is absolute in either host or URL form.
func IsAbs(p string) bool {
	return strings.HasPrefix(p, "/") || filepath.IsAbs(filepath.FromSlash(p)) || HasScheme(p)
}
