package config

import "errors"

// Sentinel errors returned by this package. Call sites wrap them with
// fmt.Errorf("...: %w", err) so callers can test with errors.Is.
var (
	// ErrNoFilename is returned by New when the filename is empty.
	ErrNoFilename = errors.New("no config filename given")

	// ErrConfigNotFound indicates the configuration file does not exist.
	// New treats a missing file as an empty tree, so this surfaces only
	// from lower-level load helpers.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrParse indicates the configuration file exists but could not be
	// parsed in any supported format.
	ErrParse = errors.New("config parse error")

	// ErrBadFormat indicates an unsupported serialization format name.
	ErrBadFormat = errors.New("unsupported config format")

	// ErrNotMapping is returned when a whole-tree replace is attempted
	// with a value that is not a mapping.
	ErrNotMapping = errors.New("value is not a mapping")

	// ErrArgsParse indicates a malformed override argument.
	ErrArgsParse = errors.New("argument parse error")

	// ErrKeyNotFound is returned by typed accessors for unset paths.
	ErrKeyNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned by typed accessors when the stored
	// value cannot be converted to the requested type.
	ErrTypeMismatch = errors.New("cannot convert value")
)
