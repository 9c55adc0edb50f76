package config

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// tagName is the struct tag consulted by Scan and WithDefaults.
const tagName = "yaml"

// Scan decodes the subtree at path into target, which must be a
// non-nil pointer to a struct or map. An unset path decodes an empty
// mapping, which writes no fields. Decoding understands string
// conversions for time.Duration, time.Time (RFC 3339), net.IP,
// net.IPNet, url.URL, and comma-separated slices.
func (c *Config) Scan(path string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	c.mu.RLock()
	section := lookupValue(c.tree, splitPath(path))
	if section != nil {
		// Decode from a copy so mapstructure never aliases the live tree.
		section = deepCopyValue(section)
	}
	c.mu.RUnlock()

	if section == nil {
		section = make(map[string]any)
	}
	sectionMap, ok := section.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: path %q holds %T", ErrNotMapping, path, section)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("scan %q into %T: %w", path, target, err)
	}
	return nil
}

// defaultsTree converts a WithDefaults value into a tree. Maps are
// deep-copied; anything else goes through mapstructure, so structs map
// their fields by tag.
func defaultsTree(defaults any) (map[string]any, error) {
	if m, ok := defaults.(map[string]any); ok {
		return deepCopyTree(m), nil
	}

	tree := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &tree,
		TagName: tagName,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(defaults); err != nil {
		return nil, err
	}
	return tree, nil
}

// decodeHook returns the composite hook for Scan type conversions.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}
		str := data.(string)
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Pointer
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}

		_, ipnet, err := net.ParseCIDR(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR: %w", err)
		}
		if isPtr {
			return ipnet, nil
		}
		return *ipnet, nil
	}
}

func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Pointer
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		u, err := url.Parse(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
