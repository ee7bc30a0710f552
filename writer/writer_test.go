package writer_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcemap-writer/internal/diagnostic"
	"sourcemap-writer/sourcemap"
	"sourcemap-writer/vfile"
	"sourcemap-writer/writer"
)

const dataURIPrefix = "data:application/json;charset=utf8;base64,"

func makeFile(path, base, text string) *vfile.File {
	f := vfile.New(path, base, []byte(text))
	m := sourcemap.New()
	m.Sources = []string{"helloworld.js"}
	content := text
	m.SourcesContent = []*string{&content}
	m.Mappings = "AAAA"
	f.SourceMap = m

	return f
}

// extractComment pulls the annotation appended after the original text.
func extractComment(t *testing.T, contents []byte, original string) string {
	t.Helper()
	rest := strings.TrimPrefix(string(contents), original)
	require.NotEqual(t, string(contents), rest, "no annotation was appended")

	return rest
}

func TestWriteInlineRoundTrip(t *testing.T) {
	src := "console.log('hello');\n"
	f := makeFile("/work/assets/helloworld.js", "/work/assets", src)

	out, mapOut, err := writer.Write(context.Background(), f, "", nil)
	require.NoError(t, err)
	assert.Same(t, f, out)
	assert.Nil(t, mapOut)

	comment := extractComment(t, out.Contents, src)
	require.True(t, strings.HasPrefix(comment, "\n//# sourceMappingURL="+dataURIPrefix))
	require.True(t, strings.HasSuffix(comment, "\n"))

	b64 := strings.TrimSuffix(strings.TrimPrefix(comment, "\n//# sourceMappingURL="+dataURIPrefix), "\n")
	decoded, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)

	expected, err := out.SourceMap.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(decoded))
}

func TestWriteInlineCSS(t *testing.T) {
	src := "body { margin: 0; }\n"
	f := makeFile("/work/assets/helloworld.css", "/work/assets", src)
	f.SourceMap.Sources = []string{"helloworld.css"}

	out, _, err := writer.Write(context.Background(), f, "", nil)
	require.NoError(t, err)

	comment := extractComment(t, out.Contents, src)
	assert.True(t, strings.HasPrefix(comment, "\n/*# sourceMappingURL="+dataURIPrefix))
	assert.True(t, strings.HasSuffix(comment, " */\n"))
}

func TestWriteUnknownExtensionUntouched(t *testing.T) {
	src := "plain text artifact\n"
	f := makeFile("/work/assets/readme.txt", "/work/assets", src)

	out, _, err := writer.Write(context.Background(), f, "", nil)
	require.NoError(t, err)
	assert.Equal(t, src, string(out.Contents))
}

func TestWriteNoComment(t *testing.T) {
	src := "console.log('hello');\n"
	f := makeFile("/work/assets/helloworld.js", "/work/assets", src)

	opts := writer.DefaultOptions()
	opts.AddComment = false
	out, mapOut, err := writer.Write(context.Background(), f, "maps", &opts)
	require.NoError(t, err)

	assert.Equal(t, src, string(out.Contents))
	require.NotNil(t, mapOut, "map artifact is still produced without a comment")
}

func TestWriteCRLF(t *testing.T) {
	src := "console.log('hello');\r\nconsole.log('world');\r\n"
	f := makeFile("/work/assets/helloworld.js", "/work/assets", src)

	out, _, err := writer.Write(context.Background(), f, "", nil)
	require.NoError(t, err)

	comment := extractComment(t, out.Contents, src)
	assert.True(t, strings.HasPrefix(comment, "\r\n//# sourceMappingURL="))
	assert.True(t, strings.HasSuffix(comment, "\r\n"))
	assert.NotContains(t, strings.TrimSuffix(comment, "\r\n"), "\n\n")
}

func TestWriteExternalNested(t *testing.T) {
	src := "console.log('hello');\n"
	f := makeFile("/work/assets/dir1/dir2/helloworld.js", "/work/assets", src)

	out, mapOut, err := writer.Write(context.Background(), f, "dir1/maps", nil)
	require.NoError(t, err)

	comment := extractComment(t, out.Contents, src)
	assert.Equal(t, "\n//# sourceMappingURL=../maps/dir1/dir2/helloworld.js.map\n", comment)

	require.NotNil(t, mapOut)
	assert.Equal(t, filepath.FromSlash("/work/assets/dir1/maps/dir1/dir2/helloworld.js.map"), mapOut.Path)
	assert.Equal(t, f.Base, mapOut.Base)
	assert.True(t, mapOut.Mode.IsRegular())

	m, err := sourcemap.Parse(mapOut.Contents)
	require.NoError(t, err)
	assert.Equal(t, "../../../dir2/helloworld.js", m.File)
}

func TestWriteExternalDestPath(t *testing.T) {
	src := "console.log('hello');\n"
	f := makeFile("/work/assets/helloworld.js", "/work/assets", src)

	opts := writer.DefaultOptions()
	opts.DestPath = "dist"
	out, mapOut, err := writer.Write(context.Background(), f, "../maps", &opts)
	require.NoError(t, err)

	comment := extractComment(t, out.Contents, src)
	assert.Equal(t, "\n//# sourceMappingURL=../maps/helloworld.js.map\n", comment)

	require.NotNil(t, mapOut)
	m, err := sourcemap.Parse(mapOut.Contents)
	require.NoError(t, err)
	assert.Equal(t, "../dist/helloworld.js", m.File)
}

func TestWriteExplicitEmptyRootDistinctFromUnset(t *testing.T) {
	f := makeFile("/work/assets/helloworld.js", "/work/assets", "x\n")
	opts := writer.DefaultOptions()
	opts.SourceRoot = writer.Literal("")
	_, mapOut, err := writer.Write(context.Background(), f, ".", &opts)
	require.NoError(t, err)

	m, err := sourcemap.Parse(mapOut.Contents)
	require.NoError(t, err)
	require.NotNil(t, m.SourceRoot)
	assert.Equal(t, "", *m.SourceRoot)
	assert.Contains(t, string(mapOut.Contents), `"sourceRoot":""`)

	f = makeFile("/work/assets/helloworld.js", "/work/assets", "x\n")
	_, mapOut, err = writer.Write(context.Background(), f, ".", nil)
	require.NoError(t, err)
	assert.NotContains(t, string(mapOut.Contents), "sourceRoot")
}

func TestWriteComputedRootDecline(t *testing.T) {
	f := makeFile("/work/assets/dir1/dir2/helloworld.js", "/work/assets", "x\n")
	opts := writer.DefaultOptions()
	opts.SourceRoot = writer.Compute(func(*vfile.File) (string, bool) { return "", false })

	_, mapOut, err := writer.Write(context.Background(), f, "dir1/maps", &opts)
	require.NoError(t, err)

	m, err := sourcemap.Parse(mapOut.Contents)
	require.NoError(t, err)
	require.NotNil(t, m.SourceRoot, "declined function falls back to inference")
	assert.Equal(t, "../../../..", *m.SourceRoot)
}

func TestWriteIncludeContentFalse(t *testing.T) {
	f := makeFile("/work/assets/helloworld.js", "/work/assets", "x\n")
	opts := writer.DefaultOptions()
	opts.IncludeContent = false

	_, mapOut, err := writer.Write(context.Background(), f, ".", &opts)
	require.NoError(t, err)
	assert.NotContains(t, string(mapOut.Contents), "sourcesContent")
}

func TestWriteMissingSourceNeverFails(t *testing.T) {
	dir := t.TempDir()
	f := vfile.New(filepath.Join(dir, "app.js"), dir, []byte("x\n"))
	m := sourcemap.New()
	m.Sources = []string{"present.js", "absent.js"}
	m.Mappings = "AAAA"
	f.SourceMap = m
	require.NoError(t, os.WriteFile(filepath.Join(dir, "present.js"), []byte("var p;"), 0o644))

	var rec diagnostic.Recorder
	opts := writer.DefaultOptions()
	opts.Debug = true
	opts.Diagnostics = &rec

	_, mapOut, err := writer.Write(context.Background(), f, ".", &opts)
	require.NoError(t, err)

	parsed, err := sourcemap.Parse(mapOut.Contents)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(parsed.SourcesContent), len(parsed.Sources))
	require.Len(t, rec.Entries, 2)
	assert.Equal(t, []string{"source file not found: " + filepath.Join(dir, "absent.js")}, rec.Warnings())
}

func TestWriteMapSourcesRewrite(t *testing.T) {
	f := makeFile("/work/assets/helloworld.js", "/work/assets", "x\n")
	opts := writer.DefaultOptions()
	opts.MapSources = func(s string) string { return "../src/" + s }

	_, mapOut, err := writer.Write(context.Background(), f, ".", &opts)
	require.NoError(t, err)

	m, err := sourcemap.Parse(mapOut.Contents)
	require.NoError(t, err)
	assert.Equal(t, []string{"../src/helloworld.js"}, m.Sources)
}

func TestWriteURLPrefixAndOverride(t *testing.T) {
	f := makeFile("/work/assets/helloworld.js", "/work/assets", "x\n")
	opts := writer.DefaultOptions()
	opts.SourceMappingURLPrefix = writer.Literal("https://cdn.example.com")

	out, _, err := writer.Write(context.Background(), f, ".", &opts)
	require.NoError(t, err)
	assert.Contains(t, string(out.Contents), "sourceMappingURL=https://cdn.example.com/helloworld.js.map")

	f = makeFile("/work/assets/helloworld.js", "/work/assets", "x\n")
	opts.SourceMappingURL = writer.Compute(func(v *vfile.File) (string, bool) {
		return "https://elsewhere.example.com/" + v.Relative() + ".map", true
	})
	out, _, err = writer.Write(context.Background(), f, ".", &opts)
	require.NoError(t, err)
	assert.Contains(t, string(out.Contents), "sourceMappingURL=https://elsewhere.example.com/helloworld.js.map")
}

func TestWriteRejectsInvalidArtifact(t *testing.T) {
	_, _, err := writer.Write(context.Background(), nil, "", nil)
	assert.ErrorIs(t, err, writer.ErrNotAnArtifact)

	f := vfile.New("/work/assets/app.js", "/work/assets", nil)
	_, _, err = writer.Write(context.Background(), f, "", nil)
	assert.ErrorIs(t, err, writer.ErrNotAnArtifact)
}

func TestWriteRejectsMissingMap(t *testing.T) {
	f := vfile.New("/work/assets/app.js", "/work/assets", []byte("x"))
	_, _, err := writer.Write(context.Background(), f, "maps", nil)
	assert.ErrorIs(t, err, writer.ErrNoSourceMap)
}
