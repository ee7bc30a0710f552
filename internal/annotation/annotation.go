// Package annotation builds the trailing sourceMappingURL comment.
package annotation

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// Newline styles recognized in artifact content.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// commentForms maps a file extension to its comment layout.
var commentForms = map[string]string{
	".js":  "//# sourceMappingURL=%s",
	".jsx": "//# sourceMappingURL=%s",
	".mjs": "//# sourceMappingURL=%s",
	".cjs": "//# sourceMappingURL=%s",
	".ts":  "//# sourceMappingURL=%s",
	".css": "/*# sourceMappingURL=%s */",
}

// Format returns the full annotation for the given extension and URL:
// a leading newline, the comment, and a trailing newline, all using the
// supplied newline style. Extensions with no known comment form yield "".
func Format(ext, url, newline string) string {
	form, ok := commentForms[ext]
	if !ok {
		return ""
	}

	return newline + fmt.Sprintf(form, url) + newline
}

// DetectNewline returns CRLF when the contents use it anywhere, else LF.
func DetectNewline(contents []byte) string {
	if bytes.Contains(contents, []byte(CRLF)) {
		return CRLF
	}

	return LF
}

// DataURI encodes a serialized map as an inline data URI.
func DataURI(mapJSON []byte) string {
	return "data:application/json;charset=utf8;base64," + base64.StdEncoding.EncodeToString(mapJSON)
}
