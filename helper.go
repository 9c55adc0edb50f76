package config

// flattenMap converts a nested map to a flat map keyed by dotted paths.
// Non-mapping containers (slices) are treated as leaf values.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if sub, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(sub, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}
	return flat
}

// deepCopyValue copies mappings and slices recursively. Scalars are
// returned as-is.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyTree(t)
	case []any:
		s := make([]any, len(t))
		for i, item := range t {
			s[i] = deepCopyValue(item)
		}
		return s
	default:
		return v
	}
}

func deepCopyTree(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		out[k] = deepCopyValue(v)
	}
	return out
}

// mergeMaps overlays src onto dst. Nested mappings merge recursively,
// anything else in src replaces the dst value.
func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeMaps(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

// isValidKeySegment checks that an override argument key segment is a
// bare identifier: ASCII letters, digits, underscores, and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
