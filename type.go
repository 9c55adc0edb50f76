package config

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// String retrieves a string value at path, converting from common
// scalar types when the stored value is not already a string. Unset
// paths report ErrKeyNotFound.
func (c *Config) String(path string) (string, error) {
	val := c.Get(path)
	if val == nil {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%w: %T to string at %s", ErrTypeMismatch, val, path)
	}
}

// Int64 retrieves an integer value at path. Converts from numeric
// types, parsable strings (base auto-detected, so "0xFF" works), and
// booleans; floats truncate.
func (c *Config) Int64(path string) (int64, error) {
	val := c.Get(path)
	if val == nil {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64 at %s", ErrTypeMismatch, u, path)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	case reflect.String:
		// json.Number lands here too.
		s := v.String()
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), nil
		}
		return 0, fmt.Errorf("%w: string %q to int64 at %s", ErrTypeMismatch, s, path)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("%w: %T to int64 at %s", ErrTypeMismatch, val, path)
}

// Bool retrieves a boolean value at path. Converts from parsable
// strings and from numbers, where zero is false and anything else true.
func (c *Config) Bool(path string) (bool, error) {
	val := c.Get(path)
	if val == nil {
		return false, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		s := v.String()
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		}
		return false, fmt.Errorf("%w: string %q to bool at %s", ErrTypeMismatch, s, path)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("%w: %T to bool at %s", ErrTypeMismatch, val, path)
}

// Float64 retrieves a float value at path. Converts from numeric types,
// parsable strings, and booleans.
func (c *Config) Float64(path string) (float64, error) {
	val := c.Get(path)
	if val == nil {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := v.String()
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}
		return 0, fmt.Errorf("%w: string %q to float64 at %s", ErrTypeMismatch, s, path)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("%w: %T to float64 at %s", ErrTypeMismatch, val, path)
}
