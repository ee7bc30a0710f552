package writer

import (
	"sourcemap-writer/internal/diagnostic"
	"sourcemap-writer/vfile"
)

// StringOpt is a string-valued option that is either unset, a literal,
// or computed per artifact. The literal empty string is a real value,
// distinct from unset; a computed function may decline by returning
// ok=false, which falls back to the unset behavior.
type StringOpt struct {
	set     bool
	literal string
	fn      func(*vfile.File) (string, bool)
}

// Literal returns an option fixed to s. Literal("") is meaningful.
func Literal(s string) StringOpt {
	return StringOpt{set: true, literal: s}
}

// Compute returns an option evaluated once per artifact.
func Compute(fn func(*vfile.File) (string, bool)) StringOpt {
	return StringOpt{set: true, fn: fn}
}

// Resolve evaluates the option for the given artifact.
func (o StringOpt) Resolve(f *vfile.File) (string, bool) {
	if !o.set {
		return "", false
	}
	if o.fn != nil {
		return o.fn(f)
	}

	return o.literal, true
}

// Options controls a single write. Every field is independent; zero
// values mean "not supplied" except for the booleans, whose defaults
// come from DefaultOptions.
type Options struct {
	// IncludeContent embeds original source text in the map. When
	// false, sourcesContent is stripped entirely.
	IncludeContent bool
	// AddComment appends the sourceMappingURL annotation. When false,
	// contents are left byte-for-byte untouched.
	AddComment bool
	// SourceRoot is the explicit root to record; unset means infer.
	SourceRoot StringOpt
	// SourceMappingURL fully overrides the computed comment URL.
	SourceMappingURL StringOpt
	// SourceMappingURLPrefix is prepended to the base-relative map path.
	SourceMappingURLPrefix StringOpt
	// MapFile rewrites the base-relative map path before use.
	MapFile func(string) string
	// MapSources rewrites each entry of the map's sources array.
	MapSources func(string) string
	// DestPath is the base-relative destination root the artifact will
	// be written under.
	DestPath string
	// Debug enables diagnostics for unresolved source content.
	Debug bool
	// Diagnostics receives debug output; defaults to stderr.
	Diagnostics diagnostic.Sink
}

// DefaultOptions returns the per-write defaults.
func DefaultOptions() Options {
	return Options{
		IncludeContent: true,
		AddComment:     true,
	}
}

// sink returns the diagnostics destination for this write.
func (o *Options) sink() diagnostic.Sink {
	if !o.Debug {
		return diagnostic.Discard
	}
	if o.Diagnostics != nil {
		return o.Diagnostics
	}

	return diagnostic.NewConsole()
}
