package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// Config is a path-addressable configuration store backed by a single
// file. Values live in a nested tree of mappings; paths like
// "server/port", "server:port" and "server.port" address the same leaf.
// Mutations are tracked with a dirty flag so Store only writes when
// something actually changed.
type Config struct {
	mu       sync.RWMutex
	filename string
	format   string
	tree     map[string]any
	dirty    bool
	nostore  bool
	logger   *slog.Logger
}

// New creates a store bound to filename. If the file exists and is
// non-empty its contents are deserialized into the tree; a missing file
// is not an error and yields an empty tree. A file that exists but
// cannot be parsed also yields an empty tree unless WithStrictParse was
// given, in which case New fails.
//
// Optional layers are applied in order: defaults (WithDefaults), then
// the file, then environment overrides (WithEnvPrefix), then override
// arguments (WithArgs). The instance starts clean: Changed reports
// false until the first effective Set.
func New(filename string, opts ...Option) (*Config, error) {
	if filename == "" {
		return nil, ErrNoFilename
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	format, err := normalizeFormat(s.format)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = detectFileFormat(filename)
	}

	c := &Config{
		filename: filename,
		format:   format,
		tree:     make(map[string]any),
		nostore:  s.nostore,
		logger:   s.logger,
	}

	if s.defaults != nil {
		tree, err := defaultsTree(s.defaults)
		if err != nil {
			return nil, fmt.Errorf("apply defaults: %w", err)
		}
		c.tree = tree
	}

	fileTree, used, err := loadTree(filename, c.format)
	switch {
	case err == nil:
		mergeMaps(c.tree, fileTree)
	case errors.Is(err, ErrConfigNotFound):
		c.logDebug("config file missing, starting empty", "file", filename)
	default:
		if s.strict {
			return nil, err
		}
		c.logWarn("config load failed, starting empty", "file", filename, "error", err)
	}
	if c.format == "" {
		c.format = used
	}
	if c.format == "" {
		c.format = formatYAML
	}

	if s.useEnv {
		c.applyEnv(s.envPrefix, s.envTransform)
	}
	if len(s.args) > 0 {
		if err := c.applyArgs(s.args); err != nil {
			return nil, err
		}
	}

	// Construction layers never count as mutations.
	c.dirty = false
	return c, nil
}

// Get returns the value at path, or nil when the path was never set or
// has been deleted. The root path ("/" or "") returns the whole tree.
// Container values are returned live, not copied; mutating them
// directly bypasses change tracking.
func (c *Config) Get(path string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lookupValue(c.tree, splitPath(path))
}

// Set stores value at path, creating intermediate mappings as needed.
// Setting an existing non-mapping intermediate replaces it with a fresh
// mapping (reported through the logger, if any). A nil value deletes
// the leaf and prunes intermediate mappings the deletion left empty.
//
// The root path is special: Set("/", nil) clears the whole tree and
// Set("/", m) replaces it with m, which must be a map[string]any.
//
// The dirty flag is raised only when the effective value changed, as
// judged by deep equality. Re-assigning an equal value is a no-op.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := splitPath(path)
	if len(keys) == 0 {
		return c.setRoot(value)
	}

	if value == nil {
		if removeValue(c.tree, keys) {
			c.dirty = true
		}
		return nil
	}

	changed, clobbered := assignValue(c.tree, keys, value)
	if clobbered != "" {
		c.logWarn("replaced non-mapping value with a mapping", "path", clobbered)
	}
	if changed {
		c.dirty = true
	}
	return nil
}

// setRoot clears or replaces the whole tree. Caller holds the lock.
func (c *Config) setRoot(value any) error {
	if value == nil {
		if len(c.tree) == 0 {
			return nil
		}
		c.tree = make(map[string]any)
		c.dirty = true
		return nil
	}

	tree, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("replace tree with %T: %w", value, ErrNotMapping)
	}
	if reflect.DeepEqual(c.tree, tree) {
		return nil
	}
	c.tree = tree
	c.dirty = true
	return nil
}

// Delete removes the value at path. Equivalent to Set(path, nil).
func (c *Config) Delete(path string) error {
	return c.Set(path, nil)
}

// Changed reports whether unwritten mutations exist. It is raised by
// any effective Set or Delete and cleared only by a successful Store.
func (c *Config) Changed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dirty
}

// Raw exposes the live tree for bulk inspection. Mutations made through
// it bypass dirty tracking; treat it as an escape hatch, not the
// supported write path.
func (c *Config) Raw() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.tree
}

// Filename returns the backing file path given to New.
func (c *Config) Filename() string {
	return c.filename
}

// Format returns the effective serialization format.
func (c *Config) Format() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.format
}

func (c *Config) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Config) logWarn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
