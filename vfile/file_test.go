package vfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelative(t *testing.T) {
	f := New("/work/assets/dir1/dir2/helloworld.js", "/work/assets", []byte("x"))
	assert.Equal(t, "dir1/dir2/helloworld.js", f.Relative())
}

func TestExtname(t *testing.T) {
	f := New("/work/assets/app.css", "/work/assets", []byte("body{}"))
	assert.Equal(t, ".css", f.Extname())
}

func TestValid(t *testing.T) {
	assert.True(t, New("/a/b.js", "/a", []byte{}).Valid())
	assert.False(t, (*File)(nil).Valid())
	assert.False(t, New("/a/b.js", "/a", nil).Valid())
	assert.False(t, (&File{Path: "rel.js", Base: "/a", Contents: []byte{}}).Valid())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(path, []byte("console.log(1)"), 0o644))

	f, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "app.js", f.Relative())
	assert.Equal(t, []byte("console.log(1)"), f.Contents)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.js"), "")
	assert.Error(t, err)
}
