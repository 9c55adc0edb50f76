package config

import "reflect"

// The tree is a nested map[string]any, the shape every supported
// deserializer produces. Leaves are scalars, []any slices, or further
// map[string]any nodes. These helpers implement path lookup, assignment
// with auto-vivification, and deletion with upward pruning. None of them
// lock; Config serializes access.

// lookupValue walks keys from node and returns the value found, or nil
// when an intermediate key is absent or is not a mapping. An empty key
// sequence returns node itself.
func lookupValue(node map[string]any, keys []string) any {
	var current any = node
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := m[key]
		if !ok {
			return nil
		}
		current = v
	}
	return current
}

// assignValue stores value at the location addressed by keys, creating
// intermediate mappings as needed. An existing non-mapping intermediate
// is replaced by a fresh mapping; clobbered reports the dotted path of
// the replaced node, or "" when nothing was overwritten. changed is
// false when the location already held a deeply equal value.
// keys must be non-empty and value non-nil.
func assignValue(node map[string]any, keys []string, value any) (changed bool, clobbered string) {
	current := node
	for i, key := range keys[:len(keys)-1] {
		next, exists := current[key]
		if !exists {
			child := make(map[string]any)
			current[key] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			child = make(map[string]any)
			current[key] = child
			clobbered = joinPath(keys[:i+1])
		}
		current = child
	}

	last := keys[len(keys)-1]
	if old, exists := current[last]; exists && reflect.DeepEqual(old, value) {
		return false, clobbered
	}
	current[last] = value
	return true, clobbered
}

// removeValue deletes the leaf addressed by keys and prunes intermediate
// mappings left empty by the deletion, stopping at the first non-empty
// ancestor. It never vivifies: a path through a missing or non-mapping
// intermediate is a no-op. Reports whether anything was removed.
// keys must be non-empty.
func removeValue(node map[string]any, keys []string) bool {
	key := keys[0]
	if len(keys) == 1 {
		if _, exists := node[key]; !exists {
			return false
		}
		delete(node, key)
		return true
	}

	child, ok := node[key].(map[string]any)
	if !ok {
		return false
	}
	if !removeValue(child, keys[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(node, key)
	}
	return true
}
