// Package resolve computes where a map lives and how the artifact and the
// map refer to each other.
//
// Everything is reasoned about in destination space: the comment inside
// the artifact and the file/sourceRoot fields inside the map must hold
// after the artifact and the map have been moved to wherever the build
// will put them, not where they sit right now.
package resolve

import (
	"strings"

	"sourcemap-writer/internal/pathutil"
	"sourcemap-writer/vfile"
)

// Request carries the inputs of one location computation. Option values
// arrive already resolved to plain strings: a nil pointer means the
// option was not supplied.
type Request struct {
	// File is the artifact being written.
	File *vfile.File
	// DestDir is the base-relative (or absolute) directory the map file
	// will live in. Empty means inline mode.
	DestDir string
	// DestPath is the base-relative destination root the artifact will
	// be written under, when it differs from its current location.
	DestPath string
	// Root is the explicit sourceRoot; the empty string is meaningful.
	Root *string
	// URL fully overrides the computed comment URL.
	URL *string
	// URLPrefix is prepended to the base-relative map path.
	URLPrefix *string
	// MapFile rewrites the base-relative map path.
	MapFile func(string) string
}

// Location is the result of one computation.
type Location struct {
	// MapRel is the base-relative path of the physical map file.
	// Empty in inline mode.
	MapRel string
	// MapPath is the absolute path the map artifact should be written to.
	// Empty in inline mode.
	MapPath string
	// URL is the reference the artifact's comment must embed to reach
	// the map from its destination. Empty in inline mode, where the
	// caller embeds a data URI instead.
	URL string
	// File is the map's embedded file field: the artifact's destination
	// relative to the map's own directory.
	File string
	// SourceRoot is the root to record in the map, always expressed
	// relative to the map's directory. Nil means omit the field.
	SourceRoot *string
}

// Locate runs the path algebra for one artifact.
func Locate(req Request) Location {
	base := pathutil.Unix(req.File.Base)
	fileAbs := pathutil.Unix(req.File.Path)
	rel := pathutil.Relative(base, fileAbs)

	if req.DestDir == "" {
		return locateInline(req, base, fileAbs, rel)
	}

	mapRel := pathutil.Join(req.DestDir, rel) + ".map"
	if req.MapFile != nil {
		mapRel = pathutil.Unix(req.MapFile(mapRel))
	}
	mapPath := pathutil.Join(base, mapRel)
	if pathutil.IsAbs(mapRel) {
		// An absolute destination directory pins the map outright;
		// base and destPath rebasing no longer apply to it.
		mapPath = mapRel
	}

	destFile := fileAbs
	destMap := mapPath
	if req.DestPath != "" {
		destFile = pathutil.Join(base, req.DestPath, rel)
		if !pathutil.IsAbs(mapRel) {
			destMap = pathutil.Join(base, req.DestPath, mapRel)
		}
	}
	mapDir := pathutil.Dir(destMap)

	url := pathutil.Relative(pathutil.Dir(destFile), destMap)
	if req.URLPrefix != nil {
		url = strings.TrimRight(*req.URLPrefix, "/") + "/" + mapRel
	}
	if req.URL != nil {
		url = *req.URL
	}

	return Location{
		MapRel:     mapRel,
		MapPath:    mapPath,
		URL:        url,
		File:       pathutil.Relative(mapDir, destFile),
		SourceRoot: sourceRoot(req.Root, mapDir, base),
	}
}

// locateInline handles the mode where the map travels inside the artifact:
// the map's conceptual directory is wherever the artifact will land.
func locateInline(req Request, base, fileAbs, rel string) Location {
	destFile := fileAbs
	if req.DestPath != "" {
		destFile = pathutil.Join(base, req.DestPath, rel)
	}
	mapDir := pathutil.Dir(destFile)

	return Location{
		File:       pathutil.Relative(mapDir, destFile),
		SourceRoot: sourceRoot(req.Root, mapDir, base),
	}
}

// sourceRoot computes the stored root. An explicit root wins even when
// empty; otherwise the root is inferred so that sources under the
// artifact's current base stay reachable from the map's final directory.
func sourceRoot(explicit *string, mapDir, base string) *string {
	if explicit != nil {
		r := *explicit
		if pathutil.HasScheme(r) || pathutil.IsAbs(r) {
			return &r
		}
		rebased := pathutil.Join(pathutil.Relative(mapDir, base), r)

		return &rebased
	}

	inferred := pathutil.Relative(mapDir, base)
	if inferred == "" {
		return nil
	}

	return &inferred
}
