package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// With returns a copy of the config with the field at the dotted JSON path
// replaced, e.g. ("currency.symbol", "€") or ("watermark.enabled", true).
// The receiver is never mutated; nil optional blocks are allocated on the
// way down. The updated copy is validated before it is returned.
func (c Config) With(path string, value any) (Config, error) {
	clone, err := c.clone()
	if err != nil {
		return Config{}, err
	}

	segments := strings.Split(path, ".")
	if path == "" || len(segments) == 0 {
		return Config{}, fmt.Errorf("%w: empty config path", ErrInvalidConfig)
	}

	target := reflect.ValueOf(&clone).Elem()
	for i, seg := range segments {
		for target.Kind() == reflect.Pointer {
			if target.IsNil() {
				target.Set(reflect.New(target.Type().Elem()))
			}
			target = target.Elem()
		}
		if target.Kind() != reflect.Struct {
			return Config{}, fmt.Errorf("%w: %q is not a config section", ErrInvalidConfig, strings.Join(segments[:i], "."))
		}
		field, ok := fieldByJSONTag(target, seg)
		if !ok {
			return Config{}, fmt.Errorf("%w: unknown config path %q", ErrInvalidConfig, path)
		}
		target = field
	}

	if err := setJSONValue(target, value); err != nil {
		return Config{}, fmt.Errorf("%w: cannot set %q: %v", ErrInvalidConfig, path, err)
	}
	if err := clone.Validate(); err != nil {
		return Config{}, err
	}
	return clone, nil
}

// clone deep-copies through the JSON form, which also covers slices,
// pointers and future fields without bespoke copy code.
func (c Config) clone() (Config, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return Config{}, err
	}
	var out Config
	if err := json.Unmarshal(raw, &out); err != nil {
		return Config{}, err
	}
	return out, nil
}

func fieldByJSONTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" {
			continue
		}
		if comma := strings.IndexByte(tag, ','); comma >= 0 {
			tag = tag[:comma]
		}
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// setJSONValue assigns through a JSON round trip so callers can pass plain
// Go values or raw decoded JSON interchangeably.
func setJSONValue(field reflect.Value, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, field.Addr().Interface())
}
