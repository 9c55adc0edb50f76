package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Supported serialization formats.
const (
	formatYAML  = "yaml"
	formatTOML  = "toml"
	formatJSON  = "json"
	formatJSONC = "jsonc"
)

// EnvTransformFunc converts a configuration path to an environment
// variable name.
type EnvTransformFunc func(path string) string

// normalizeFormat validates a caller-supplied format name. Empty means
// detect later.
func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "":
		return "", nil
	case formatYAML, "yml":
		return formatYAML, nil
	case formatTOML, "tml":
		return formatTOML, nil
	case formatJSON:
		return formatJSON, nil
	case formatJSONC:
		return formatJSONC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
}

// detectFileFormat determines the format from the file extension, or ""
// when the extension is not recognized.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml", ".tml":
		return formatTOML
	case ".json":
		return formatJSON
	case ".jsonc":
		return formatJSONC
	default:
		return ""
	}
}

// detectFormatFromContent attempts detection by parsing. JSON first as
// the strictest format, then YAML which is a superset of it, then TOML.
// Each attempt targets a top-level mapping, the only document shape the
// tree accepts; unmarshaling into a bare any would let YAML claim
// nearly arbitrary text as a scalar, including valid TOML.
func detectFormatFromContent(data []byte) string {
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return formatJSON
	}
	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return formatYAML
	}
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return formatTOML
	}
	return ""
}

// loadTree reads and deserializes the file at path. format may be
// empty, in which case the extension decides, then the content; the
// format actually used is returned so the instance keeps writing the
// same way. A missing file returns ErrConfigNotFound; an empty file
// yields an empty tree without a parse attempt.
func loadTree(path, format string) (map[string]any, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrConfigNotFound
		}
		return nil, "", fmt.Errorf("read config file %q: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), format, nil
	}

	if format == "" {
		format = detectFileFormat(path)
	}
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, "", fmt.Errorf("%w: cannot determine format of %q", ErrParse, path)
		}
	}

	tree, err := parseTree(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("%w: file %q: %w", ErrParse, path, err)
	}
	return tree, format, nil
}

// parseTree deserializes data in the given format into a tree. The top
// level of the document must be a mapping.
func parseTree(data []byte, format string) (map[string]any, error) {
	tree := make(map[string]any)
	switch format {
	case formatTOML:
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	case formatJSON:
		if err := decodeJSON(data, &tree); err != nil {
			return nil, err
		}
	case formatJSONC:
		if err := decodeJSON(jsonc.ToJSON(data), &tree); err != nil {
			return nil, err
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
	return tree, nil
}

func decodeJSON(data []byte, tree *map[string]any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // preserve number precision across round-trips
	return dec.Decode(tree)
}

// applyEnv overlays environment values onto existing tree paths. Only
// paths already present can be overridden, so an unset tree stays
// unset. Construction-time only; does not touch the dirty flag.
func (c *Config) applyEnv(prefix string, transform EnvTransformFunc) {
	if transform == nil {
		transform = defaultEnvTransform(prefix)
	}
	for path := range flattenMap(c.tree, "") {
		envVar := transform(path)
		if envVar == "" {
			continue
		}
		if value, ok := os.LookupEnv(envVar); ok {
			assignValue(c.tree, splitPath(path), parseValue(value))
			c.logDebug("applied environment override", "path", path, "var", envVar)
		}
	}
}

// defaultEnvTransform upper-cases the path and swaps separators for
// underscores: "server.port" with prefix "APP_" becomes APP_SERVER_PORT.
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(path string) string {
		return prefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
	}
}

// applyArgs overlays parsed override arguments. Construction-time only.
func (c *Config) applyArgs(args []string) error {
	overrides, err := parseArgs(args)
	if err != nil {
		return err
	}
	for path, value := range flattenMap(overrides, "") {
		assignValue(c.tree, splitPath(path), value)
		c.logDebug("applied argument override", "path", path)
	}
	return nil
}

// parseArgs converts override arguments into a nested map. Supported
// shapes: "--key.path=value", "--key.path value", and a bare "--flag"
// meaning true. Arguments that do not start with "--" are skipped.
func parseArgs(args []string) (map[string]any, error) {
	result := make(map[string]any)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			// bare "--" separator
			i++
			continue
		}

		var keyPath, valueStr string
		switch {
		case strings.Contains(content, "="):
			parts := strings.SplitN(content, "=", 2)
			keyPath = parts[0]
			valueStr = parts[1]
			i++
		case i+1 >= len(args) || strings.HasPrefix(args[i+1], "--"):
			keyPath = content
			valueStr = "true"
			i++
		default:
			keyPath = content
			valueStr = args[i+1]
			i += 2
		}

		if keyPath == "" {
			continue
		}
		keys := strings.Split(keyPath, ".")
		for _, key := range keys {
			if !isValidKeySegment(key) {
				return nil, fmt.Errorf("%w: invalid key segment %q in %q", ErrArgsParse, key, keyPath)
			}
		}
		assignValue(result, keys, parseValue(valueStr))
	}
	return result, nil
}

// parseValue parses an override string into an int64, float64, bool, or
// string. Quoting a value forces it to stay a string.
func parseValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
