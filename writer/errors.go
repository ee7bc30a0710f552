package writer

import "errors"

var (
	// ErrNotAnArtifact reports a write target that is not a usable
	// artifact: nil, missing an absolute path, a base, or contents.
	ErrNotAnArtifact = errors.New("target is not an artifact")

	// ErrNoSourceMap reports an artifact with no attached source map.
	ErrNoSourceMap = errors.New("no source map found on artifact")

	// ErrInvalidArguments reports positional arguments of the wrong shape.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrInvalidOption reports a named option with an unusable value.
	ErrInvalidOption = errors.New("invalid option")
)
