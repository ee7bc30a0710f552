// Package sourcemap defines the source-map document this tool reads,
// rewrites, and serializes.
//
// Only the fields the writer touches are modeled; the VLQ mappings table
// is carried opaquely and never decoded.
package sourcemap

import (
	"encoding/json"
	"fmt"
)

// Map is a source-map document.
//
// Two absences matter and are kept distinct from their zero values:
//   - SourceRoot nil means "no root recorded"; a pointer to "" is an
//     explicit empty root.
//   - A nil SourcesContent entry means "content unresolved for that
//     source" and serializes as JSON null.
type Map struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	SourceRoot     *string   `json:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// New returns an empty version-3 map.
func New() *Map {
	return &Map{
		Version: 3,
		Sources: []string{},
		Names:   []string{},
	}
}

// Parse decodes a serialized map.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse source map: %w", err)
	}

	return &m, nil
}

// Marshal serializes the map as compact JSON.
func (m *Map) Marshal() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal source map: %w", err)
	}

	return data, nil
}

// SetSourceRoot records an explicit root, including the empty string.
func (m *Map) SetSourceRoot(root string) {
	m.SourceRoot = &root
}

// ContentAt returns the resolved content for source index i, if any.
func (m *Map) ContentAt(i int) (string, bool) {
	if i < 0 || i >= len(m.SourcesContent) || m.SourcesContent[i] == nil {
		return "", false
	}

	return *m.SourcesContent[i], true
}

// TrimContent drops trailing unresolved entries so that a map whose last
// sources never resolved carries a shorter array rather than null padding.
// Interior unresolved entries stay as nulls to keep the index pairing.
func (m *Map) TrimContent() {
	n := len(m.SourcesContent)
	for n > 0 && m.SourcesContent[n-1] == nil {
		n--
	}
	m.SourcesContent = m.SourcesContent[:n]
	if n == 0 {
		m.SourcesContent = nil
	}
}
