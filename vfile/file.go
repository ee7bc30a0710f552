// Package vfile holds the in-memory build artifact the writer operates on.
package vfile

import (
	"io/fs"
	"os"
	"path/filepath"

	"sourcemap-writer/internal/pathutil"
	"sourcemap-writer/sourcemap"
)

// File is an in-memory build artifact: an absolute path, the base
// directory its relative display path hangs off, a content buffer, and
// an optional attached source map. The writer updates Contents and
// SourceMap in place and hands the same File back.
type File struct {
	// Path is the absolute location of the artifact.
	Path string
	// Base is the absolute directory relative paths are computed from.
	Base string
	// Contents is the artifact's byte buffer.
	Contents []byte
	// SourceMap is the attached map, if any.
	SourceMap *sourcemap.Map
	// Mode is the file mode the artifact should be written with.
	Mode fs.FileMode
}

// New returns a File rooted at base with a default regular-file mode.
func New(path, base string, contents []byte) *File {
	return &File{
		Path:     filepath.Clean(path),
		Base:     filepath.Clean(base),
		Contents: contents,
		Mode:     0o644,
	}
}

// Load reads an artifact from disk. Base defaults to the file's directory
// when empty.
func Load(path, base string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if base == "" {
		base = filepath.Dir(abs)
	} else if base, err = filepath.Abs(base); err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	return New(abs, base, contents), nil
}

// Relative returns the base-relative display path in forward-slash form.
func (f *File) Relative() string {
	return pathutil.Relative(f.Base, f.Path)
}

// Dirname returns the directory holding the artifact.
func (f *File) Dirname() string {
	return filepath.Dir(f.Path)
}

// Extname returns the artifact's file extension, including the dot.
func (f *File) Extname() string {
	return filepath.Ext(f.Path)
}

// Valid reports whether the file can act as a write target: it needs an
// absolute path, a base, and a content buffer.
func (f *File) Valid() bool {
	return f != nil && f.Path != "" && filepath.IsAbs(f.Path) && f.Base != "" && f.Contents != nil
}
