package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sourcemap-writer/internal/config"
	"sourcemap-writer/sourcemap"
	"sourcemap-writer/vfile"
	"sourcemap-writer/writer"
)

// File permission constants.
const (
	dirPerm = 0o755
)

var writeFlags struct {
	destDir   string
	destPath  string
	base      string
	root      string
	urlPrefix string
	url       string
	noContent bool
	noComment bool
	debug     bool
	config    string
}

var writeCmd = &cobra.Command{
	Use:   "write <file>...",
	Short: "Serialize and link the source map of each file",
	Long: "Reads each file and its sibling <file>.map, rewrites the map's file and\n" +
		"sourceRoot fields for the chosen destination, then writes the annotated\n" +
		"file back — inline by default, external with --dest-dir.",
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

func init() {
	f := writeCmd.Flags()
	f.StringVar(&writeFlags.destDir, "dest-dir", "", "base-relative directory for external map files (empty = inline)")
	f.StringVar(&writeFlags.destPath, "dest-path", "", "base-relative destination root the files will be deployed under")
	f.StringVar(&writeFlags.base, "base", "", "base directory for relative paths (default: each file's directory)")
	f.StringVar(&writeFlags.root, "source-root", "", "explicit sourceRoot to record (empty string is preserved)")
	f.StringVar(&writeFlags.urlPrefix, "url-prefix", "", "prefix prepended to the map URL, e.g. a CDN host")
	f.StringVar(&writeFlags.url, "url", "", "full override of the sourceMappingURL value")
	f.BoolVar(&writeFlags.noContent, "no-content", false, "strip sourcesContent from the map")
	f.BoolVar(&writeFlags.noComment, "no-comment", false, "do not append the sourceMappingURL comment")
	f.BoolVar(&writeFlags.debug, "debug", false, "log sources whose content could not be loaded")
	f.StringVar(&writeFlags.config, "config", "", "YAML config file (flags win over config values)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	destDir, opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	for _, arg := range args {
		file, err := loadArtifact(arg, writeFlags.base)
		if err != nil {
			return err
		}

		out, mapOut, err := writer.Write(cmd.Context(), file, destDir, &opts)
		if err != nil {
			return fmt.Errorf("write %s: %w", arg, err)
		}

		if err := emit(out); err != nil {
			return err
		}
		if mapOut != nil {
			if err := emit(mapOut); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", out.Relative(), mapOut.Relative())
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (inline)\n", out.Relative())
		}
	}

	return nil
}

// buildOptions merges the config file (if any) with command-line flags.
// A flag that was set on the command line wins over the config value.
func buildOptions(cmd *cobra.Command) (string, writer.Options, error) {
	opts := writer.DefaultOptions()
	destDir := ""

	if writeFlags.config != "" {
		cfg, err := config.LoadFile(writeFlags.config)
		if err != nil {
			return "", opts, err
		}
		opts = cfg.Options()
		destDir = cfg.DestDir
	}

	flags := cmd.Flags()
	if flags.Changed("dest-dir") {
		destDir = writeFlags.destDir
	}
	if flags.Changed("dest-path") {
		opts.DestPath = writeFlags.destPath
	}
	if flags.Changed("source-root") {
		opts.SourceRoot = writer.Literal(writeFlags.root)
	}
	if flags.Changed("url-prefix") {
		opts.SourceMappingURLPrefix = writer.Literal(writeFlags.urlPrefix)
	}
	if flags.Changed("url") {
		opts.SourceMappingURL = writer.Literal(writeFlags.url)
	}
	if writeFlags.noContent {
		opts.IncludeContent = false
	}
	if writeFlags.noComment {
		opts.AddComment = false
	}
	if writeFlags.debug {
		opts.Debug = true
	}

	return destDir, opts, nil
}

// loadArtifact reads a file and its sibling .map into a vfile.File.
func loadArtifact(path, base string) (*vfile.File, error) {
	file, err := vfile.Load(path, base)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if base != "" && strings.HasPrefix(file.Relative(), "..") {
		return nil, fmt.Errorf("%w: %s is outside base %s", writer.ErrInvalidArguments, path, base)
	}

	mapData, err := os.ReadFile(file.Path + ".map")
	if err == nil {
		m, err := sourcemap.Parse(mapData)
		if err != nil {
			return nil, fmt.Errorf("load %s.map: %w", path, err)
		}
		file.SourceMap = m
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s.map: %w", path, err)
	}

	return file, nil
}

// emit writes an artifact back to disk, creating directories as needed.
func emit(f *vfile.File) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), dirPerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Relative(), err)
	}
	if err := os.WriteFile(f.Path, f.Contents, f.Mode); err != nil {
		return fmt.Errorf("write %s: %w", f.Relative(), err)
	}

	return nil
}
