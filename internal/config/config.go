// Package config loads writer options from a YAML file.
//
// The file mirrors the writer's option surface; keys that only make
// sense as code (mapFile, mapSources, computed values) have no YAML
// form and stay CLI/API-only.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"sourcemap-writer/writer"
)

// Config is the YAML shape. Pointer fields distinguish "absent" from a
// zero value: an explicitly empty sourceRoot is a real setting.
type Config struct {
	DestDir                string  `yaml:"destDir"`
	DestPath               string  `yaml:"destPath"`
	SourceRoot             *string `yaml:"sourceRoot"`
	SourceMappingURL       *string `yaml:"sourceMappingURL"`
	SourceMappingURLPrefix *string `yaml:"sourceMappingURLPrefix"`
	IncludeContent         *bool   `yaml:"includeContent"`
	AddComment             *bool   `yaml:"addComment"`
	Debug                  bool    `yaml:"debug"`
}

// LoadFile reads and parses a config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data. Unknown keys and mistyped values are
// rejected as invalid options.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", writer.ErrInvalidOption, err)
	}

	return &cfg, nil
}

// Options converts the config to writer options, starting from defaults.
func (c *Config) Options() writer.Options {
	opts := writer.DefaultOptions()
	opts.DestPath = c.DestPath
	opts.Debug = c.Debug

	if c.SourceRoot != nil {
		opts.SourceRoot = writer.Literal(*c.SourceRoot)
	}
	if c.SourceMappingURL != nil {
		opts.SourceMappingURL = writer.Literal(*c.SourceMappingURL)
	}
	if c.SourceMappingURLPrefix != nil {
		opts.SourceMappingURLPrefix = writer.Literal(*c.SourceMappingURLPrefix)
	}
	if c.IncludeContent != nil {
		opts.IncludeContent = *c.IncludeContent
	}
	if c.AddComment != nil {
		opts.AddComment = *c.AddComment
	}

	return opts
}
