package config

import "log/slog"

// Option adjusts construction behavior. Options are applied in order by
// New before the file is loaded.
type Option func(*settings)

// settings collects everything New needs beyond the filename.
type settings struct {
	format       string
	strict       bool
	nostore      bool
	logger       *slog.Logger
	defaults     any
	envPrefix    string
	envTransform EnvTransformFunc
	useEnv       bool
	args         []string
}

// WithFormat forces the serialization format instead of detecting it
// from the filename or content. Supported: "yaml", "toml", "json",
// "jsonc". New fails with ErrBadFormat for anything else.
func WithFormat(format string) Option {
	return func(s *settings) {
		s.format = format
	}
}

// WithStrictParse makes New fail when the file exists but cannot be
// parsed. Without it a broken file is reported through the logger, if
// any, and the instance starts with an empty tree.
func WithStrictParse() Option {
	return func(s *settings) {
		s.strict = true
	}
}

// WithNoStore permanently disables writing: every Store call becomes a
// no-op returning false. Intended for read-only or comparison
// instances over a file owned by someone else.
func WithNoStore() Option {
	return func(s *settings) {
		s.nostore = true
	}
}

// WithLogger injects a logger for debug and warning traces (load
// fallbacks, overwritten intermediates, stores). The default is no
// logging at all.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithDefaults seeds the tree before the file loads. Accepts a
// map[string]any or a struct; struct fields are mapped through their
// "yaml" tags. File values win over defaults.
func WithDefaults(defaults any) Option {
	return func(s *settings) {
		s.defaults = defaults
	}
}

// WithEnvPrefix overlays environment variables onto the loaded tree.
// Every existing leaf path is checked once at construction: "a.b.c"
// with prefix "APP_" reads APP_A_B_C. Values are parsed as int, float,
// bool, or string, in that order. Only paths already present (from the
// file or defaults) can be overridden.
func WithEnvPrefix(prefix string) Option {
	return func(s *settings) {
		s.envPrefix = prefix
		s.useEnv = true
	}
}

// WithEnvTransform customizes the path to environment variable mapping
// used by WithEnvPrefix. The default upper-cases the path and replaces
// separators with underscores.
func WithEnvTransform(fn EnvTransformFunc) Option {
	return func(s *settings) {
		s.envTransform = fn
		s.useEnv = true
	}
}

// WithArgs overlays override arguments of the form --dotted.path=value
// (or "--dotted.path value", or a bare --flag meaning true) onto the
// loaded tree. Highest precedence layer.
func WithArgs(args []string) Option {
	return func(s *settings) {
		s.args = args
	}
}
