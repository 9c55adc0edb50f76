package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Store serializes the tree to the backing file, or to target if one is
// given. It only writes when unwritten mutations exist: a clean or
// nostore instance returns false without touching the filesystem. On
// success the dirty flag clears and Store returns true; on failure the
// flag stays raised so a retry can still write.
func (c *Config) Store(target ...string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nostore || !c.dirty {
		return false, nil
	}

	dest := c.filename
	if len(target) > 0 && target[0] != "" {
		dest = target[0]
	}

	data, err := marshalTree(c.tree, c.format)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := atomicWriteFile(dest, data); err != nil {
		return false, err
	}

	c.dirty = false
	c.logDebug("stored configuration", "file", dest, "format", c.format, "bytes", len(data))
	return true, nil
}

// marshalTree serializes the tree in the given format. JSONC files are
// written back as plain JSON; comments do not survive a round-trip.
func marshalTree(tree map[string]any, format string) ([]byte, error) {
	switch format {
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tree); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatJSON, formatJSONC:
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatYAML:
		return yaml.Marshal(tree)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
}

// atomicWriteFile writes data through a temp file in the target
// directory and renames it into place, creating directories as needed.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary config file in %q: %w", dir, err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op once renamed

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temporary config file %q: %w", tempPath, err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("sync temporary config file %q: %w", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temporary config file %q: %w", tempPath, err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("set permissions on %q: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename %q to %q: %w", tempPath, path, err)
	}
	return nil
}
