package config

import "strings"

// Path separators accepted interchangeably within a single path string.
// "a/b", "a:b" and "a.b" all address the same location, and a leading or
// trailing separator is ignored.
const pathSeparators = "/:."

// splitPath resolves a raw path expression into an ordered key sequence.
// Each maximal run of non-separator characters is one key, so adjacent
// separators never produce empty keys. An empty string, "/", or a string
// of only separators resolves to the empty sequence, which addresses the
// root of the tree. Pure function, any input is a valid path.
func splitPath(raw string) []string {
	return strings.FieldsFunc(raw, isPathSeparator)
}

func isPathSeparator(r rune) bool {
	return strings.ContainsRune(pathSeparators, r)
}

// joinPath renders a key sequence in canonical dotted form.
func joinPath(keys []string) string {
	return strings.Join(keys, ".")
}
