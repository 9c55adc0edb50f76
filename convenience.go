package config

import (
	"errors"
	"fmt"
	"io"
)

// Dump writes the current tree to w in the instance's storage format.
func (c *Config) Dump(w io.Writer) error {
	c.mu.RLock()
	data, err := marshalTree(c.tree, c.format)
	c.mu.RUnlock()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("dump config: %w", err)
	}
	return nil
}

// Clone returns an independent copy of the configuration. The clone
// shares no state with the original and never writes to disk, which
// makes it safe for what-if mutation and comparison.
func (c *Config) Clone() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return &Config{
		filename: c.filename,
		format:   c.format,
		tree:     deepCopyTree(c.tree),
		nostore:  true,
		logger:   c.logger,
	}
}

// Validate reports every required path that is unset. The returned
// error joins one ErrKeyNotFound per missing path, or nil when all are
// present.
func (c *Config) Validate(required ...string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs []error
	for _, path := range required {
		if lookupValue(c.tree, splitPath(path)) == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrKeyNotFound, path))
		}
	}
	return errors.Join(errs...)
}

// Flatten returns the tree as a single-level map of dotted leaf paths
// to values. The result is a copy; mutating it does not touch the
// configuration.
func (c *Config) Flatten() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return flattenMap(deepCopyTree(c.tree), "")
}
