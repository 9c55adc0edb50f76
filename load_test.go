package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeFormat tests format name validation
func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{"yaml", formatYAML, true},
		{"YAML", formatYAML, true},
		{"yml", formatYAML, true},
		{"toml", formatTOML, true},
		{"tml", formatTOML, true},
		{"json", formatJSON, true},
		{"jsonc", formatJSONC, true},
		{"ini", "", false},
		{"xml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeFormat(tt.in)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				assert.ErrorIs(t, err, ErrBadFormat)
			}
		})
	}
}

// TestFormatDetection tests extension and content based detection
func TestFormatDetection(t *testing.T) {
	t.Run("ByExtension", func(t *testing.T) {
		assert.Equal(t, formatYAML, detectFileFormat("app.yaml"))
		assert.Equal(t, formatYAML, detectFileFormat("app.YML"))
		assert.Equal(t, formatTOML, detectFileFormat("app.toml"))
		assert.Equal(t, formatJSON, detectFileFormat("app.json"))
		assert.Equal(t, formatJSONC, detectFileFormat("app.jsonc"))
		assert.Equal(t, "", detectFileFormat("app.conf"))
		assert.Equal(t, "", detectFileFormat("noext"))
	})

	t.Run("ByContent", func(t *testing.T) {
		assert.Equal(t, formatJSON, detectFormatFromContent([]byte(`{"a": 1}`)))
		assert.Equal(t, formatYAML, detectFormatFromContent([]byte("a: 1\nb:\n  c: 2\n")))
		assert.Equal(t, formatTOML, detectFormatFromContent([]byte("[table]\nkey = \"v\" # comment\nother = 1\n")))

		// A bare key = value body is the shape YAML happily reads as a
		// plain scalar; it must still be recognized as TOML.
		assert.Equal(t, formatTOML, detectFormatFromContent([]byte("title = \"test\"\nport = 9000\n")))
	})

	t.Run("NonMappingContentUndetected", func(t *testing.T) {
		// The tree requires a top-level mapping, so documents with a
		// scalar or sequence root never sniff.
		assert.Equal(t, "", detectFormatFromContent([]byte(`[1, 2, 3]`)))
		assert.Equal(t, "", detectFormatFromContent([]byte("just a sentence\n")))
	})
}

// TestLoadTree tests file loading across formats
func TestLoadTree(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("MissingFile", func(t *testing.T) {
		_, _, err := loadTree(filepath.Join(tmpDir, "absent.yaml"), "")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := filepath.Join(tmpDir, "empty.toml")
		require.NoError(t, os.WriteFile(path, []byte("\n \n"), 0644))

		tree, used, err := loadTree(path, formatTOML)
		require.NoError(t, err)
		assert.Empty(t, tree)
		assert.Equal(t, formatTOML, used)
	})

	t.Run("TOML", func(t *testing.T) {
		path := filepath.Join(tmpDir, "app.toml")
		content := `
title = "test"

[server]
port = 9000
hosts = ["alpha", "beta"]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		tree, used, err := loadTree(path, "")
		require.NoError(t, err)
		assert.Equal(t, formatTOML, used)
		assert.Equal(t, "test", tree["title"])
		assert.Equal(t, int64(9000), lookupValue(tree, []string{"server", "port"}))
	})

	t.Run("JSONPreservesNumbers", func(t *testing.T) {
		path := filepath.Join(tmpDir, "app.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"big": 9007199254740993}`), 0644))

		tree, _, err := loadTree(path, formatJSON)
		require.NoError(t, err)
		num, ok := tree["big"].(json.Number)
		require.True(t, ok)
		assert.Equal(t, "9007199254740993", num.String())
	})

	t.Run("JSONCStripsComments", func(t *testing.T) {
		path := filepath.Join(tmpDir, "app.jsonc")
		content := `{
  // server section
  "server": {
    "port": 8080, // default
  },
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		tree, used, err := loadTree(path, "")
		require.NoError(t, err)
		assert.Equal(t, formatJSONC, used)
		num, ok := lookupValue(tree, []string{"server", "port"}).(json.Number)
		require.True(t, ok)
		assert.Equal(t, "8080", num.String())
	})

	t.Run("ExtensionDecidesBeforeContent", func(t *testing.T) {
		// YAML is a JSON superset, so a .yaml file holding JSON still
		// loads as YAML: the extension is consulted before sniffing.
		path := filepath.Join(tmpDir, "actually-json.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0644))

		tree, used, err := loadTree(path, "")
		require.NoError(t, err)
		assert.Equal(t, formatYAML, used)
		assert.Equal(t, 1, tree["a"])
	})

	t.Run("ContentSniffWithoutExtension", func(t *testing.T) {
		path := filepath.Join(tmpDir, "sniffed")
		require.NoError(t, os.WriteFile(path, []byte("key: value\n"), 0644))

		tree, used, err := loadTree(path, "")
		require.NoError(t, err)
		assert.Equal(t, formatYAML, used)
		assert.Equal(t, "value", tree["key"])
	})

	t.Run("UndetectableContent", func(t *testing.T) {
		path := filepath.Join(tmpDir, "garbage")
		require.NoError(t, os.WriteFile(path, []byte("\x00\x01 not : a : config ["), 0644))

		_, _, err := loadTree(path, "")
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("WrongForcedFormat", func(t *testing.T) {
		path := filepath.Join(tmpDir, "yaml-as-toml.yaml")
		require.NoError(t, os.WriteFile(path, []byte("nested:\n  key: value\n"), 0644))

		_, _, err := loadTree(path, formatTOML)
		assert.ErrorIs(t, err, ErrParse)
	})
}

// TestParseArgs tests override argument parsing
func TestParseArgs(t *testing.T) {
	t.Run("KeyEqualsValue", func(t *testing.T) {
		got, err := parseArgs([]string{"--server.port=9090"})
		require.NoError(t, err)
		assert.Equal(t, int64(9090), lookupValue(got, []string{"server", "port"}))
	})

	t.Run("KeySpaceValue", func(t *testing.T) {
		got, err := parseArgs([]string{"--server.host", "example.com"})
		require.NoError(t, err)
		assert.Equal(t, "example.com", lookupValue(got, []string{"server", "host"}))
	})

	t.Run("BareFlagIsTrue", func(t *testing.T) {
		got, err := parseArgs([]string{"--verbose", "--debug"})
		require.NoError(t, err)
		assert.Equal(t, true, got["verbose"])
		assert.Equal(t, true, got["debug"])
	})

	t.Run("SkipsNonFlagArguments", func(t *testing.T) {
		got, err := parseArgs([]string{"positional", "--k=1", "trailing"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"k": int64(1)}, got)
	})

	t.Run("BareDoubleDashIgnored", func(t *testing.T) {
		got, err := parseArgs([]string{"--", "--k=1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got["k"])
	})

	t.Run("InvalidSegment", func(t *testing.T) {
		_, err := parseArgs([]string{"--bad key=1"})
		assert.ErrorIs(t, err, ErrArgsParse)
	})
}

// TestParseValue tests override value typing
func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"8080", int64(8080)},
		{"-3", int64(-3)},
		{"1", int64(1)}, // int wins over bool
		{"0", int64(0)},
		{"0.5", 0.5},
		{"true", true},
		{"false", false},
		{"plain", "plain"},
		{`"8080"`, "8080"}, // quoting keeps strings strings
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.in))
		})
	}
}
