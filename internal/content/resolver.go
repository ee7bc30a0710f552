// Package content fills in missing sourcesContent entries from disk.
package content

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"sourcemap-writer/internal/diagnostic"
	"sourcemap-writer/internal/pathutil"
	"sourcemap-writer/vfile"
)

// maxConcurrentReads caps parallel filesystem reads per call.
const maxConcurrentReads = 8

// Resolve loads content for every source entry of the file's map that
// does not already carry one. Reads run concurrently but results are
// stored by source index, so completion order never changes the array.
//
// Failures are never errors: an unreadable source stays unresolved and,
// with a non-discarding sink, produces one log line naming the source and
// one warning naming the path attempted. Trailing unresolved entries are
// trimmed from the final array.
func Resolve(ctx context.Context, file *vfile.File, sink diagnostic.Sink) {
	if sink == nil {
		sink = diagnostic.Discard
	}
	m := file.SourceMap
	if m == nil || len(m.Sources) == 0 {
		return
	}

	for len(m.SourcesContent) < len(m.Sources) {
		m.SourcesContent = append(m.SourcesContent, nil)
	}

	root := ""
	if m.SourceRoot != nil {
		root = *m.SourceRoot
	}

	attempted := make([]string, len(m.Sources))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, source := range m.Sources {
		i := i
		if m.SourcesContent[i] != nil {
			continue
		}

		candidate := candidatePath(file.Base, root, source)
		attempted[i] = candidate

		g.Go(func() error {
			data, err := os.ReadFile(candidate)
			if err != nil {
				return nil
			}
			text := string(data)
			m.SourcesContent[i] = &text

			return nil
		})
	}
	_ = g.Wait()

	for i, source := range m.Sources {
		if attempted[i] == "" || m.SourcesContent[i] != nil {
			continue
		}
		sink.Logf("no content for source %q, tried loading it from disk", source)
		sink.Warnf("source file not found: %s", attempted[i])
	}

	m.TrimContent()
}

// candidatePath resolves a source entry to the filesystem location it
// should be loaded from: the artifact's base, the map's recorded root if
// any, then the source path itself. An absolute root stands alone.
func candidatePath(base, root, source string) string {
	switch {
	case pathutil.HasScheme(root):
		// URL roots cannot be read from the local filesystem; keep the
		// join so the failure names something meaningful.
		return filepath.Join(base, filepath.FromSlash(source))
	case root != "" && filepath.IsAbs(filepath.FromSlash(root)):
		return filepath.Join(filepath.FromSlash(root), filepath.FromSlash(source))
	default:
		return filepath.Join(base, filepath.FromSlash(root), filepath.FromSlash(source))
	}
}
