// Package writer attaches a source map to an in-memory build artifact.
//
// A write either embeds the map inline as a data URI or emits it as a
// second artifact next to a relative reference, and in both cases fixes
// up the map's file and sourceRoot fields so that original sources stay
// resolvable from wherever the map ends up.
package writer

import (
	"context"
	"fmt"
	"path/filepath"

	"sourcemap-writer/internal/annotation"
	"sourcemap-writer/internal/content"
	"sourcemap-writer/internal/resolve"
	"sourcemap-writer/vfile"
)

// Write serializes and links file's source map. destDir selects the mode:
// empty means inline, anything else is the base-relative directory the
// external map file is placed in.
//
// The first return is the same file, its Contents and SourceMap updated
// in place. The second is the map artifact, nil in inline mode.
func Write(ctx context.Context, file *vfile.File, destDir string, opts *Options) (*vfile.File, *vfile.File, error) {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if !file.Valid() {
		return nil, nil, ErrNotAnArtifact
	}
	m := file.SourceMap
	if m == nil {
		return nil, nil, ErrNoSourceMap
	}

	// Content first: lookups use the map's original root, before the
	// location pass rewrites it.
	if opts.IncludeContent {
		content.Resolve(ctx, file, opts.sink())
	} else {
		m.SourcesContent = nil
	}

	loc := resolve.Locate(resolve.Request{
		File:      file,
		DestDir:   destDir,
		DestPath:  opts.DestPath,
		Root:      effectiveRoot(file, opts),
		URL:       resolved(opts.SourceMappingURL, file),
		URLPrefix: resolved(opts.SourceMappingURLPrefix, file),
		MapFile:   opts.MapFile,
	})

	m.File = loc.File
	m.SourceRoot = loc.SourceRoot
	if opts.MapSources != nil {
		for i, s := range m.Sources {
			m.Sources[i] = opts.MapSources(s)
		}
	}

	data, err := m.Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("serialize map for %s: %w", file.Relative(), err)
	}

	var mapFile *vfile.File
	url := loc.URL
	if destDir == "" {
		url = annotation.DataURI(data)
	} else {
		mapFile = vfile.New(filepath.FromSlash(loc.MapPath), file.Base, data)
	}

	if opts.AddComment {
		newline := annotation.DetectNewline(file.Contents)
		if comment := annotation.Format(file.Extname(), url, newline); comment != "" {
			file.Contents = append(file.Contents, comment...)
		}
	}

	return file, mapFile, nil
}

// effectiveRoot picks the explicit root for the location pass: the
// option wins, then a root already recorded on the map; nil means infer.
func effectiveRoot(file *vfile.File, opts *Options) *string {
	if r, ok := opts.SourceRoot.Resolve(file); ok {
		return &r
	}

	return file.SourceMap.SourceRoot
}

func resolved(opt StringOpt, file *vfile.File) *string {
	if v, ok := opt.Resolve(file); ok {
		return &v
	}

	return nil
}
