// Package configbinder binds flat "dotted.key=value" overrides onto yaml-tagged structs.
package configbinder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseAssignments turns ["console.pause=never", "launch.mode=detach"] into a nested map
// suitable for BindProperties. Keys are split on '.', the value on the first '='.
func ParseAssignments(assignments []string) (map[string]interface{}, error) {
	root := make(map[string]interface{})
	for _, raw := range assignments {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q: expected key.path=value", raw)
		}

		node := root
		parts := strings.Split(key, ".")
		for i, part := range parts {
			if part == "" {
				return nil, fmt.Errorf("invalid override %q: empty path segment", raw)
			}
			if i == len(parts)-1 {
				node[part] = value
				break
			}
			next, exists := node[part]
			if !exists {
				child := make(map[string]interface{})
				node[part] = child
				node = child
				continue
			}
			child, isMap := next.(map[string]interface{})
			if !isMap {
				return nil, fmt.Errorf("invalid override %q: %q is already a value", raw, part)
			}
			node = child
		}
	}
	return root, nil
}

// BindProperties decodes properties onto target using the "yaml" tags.
// Only keys present in properties are touched; strings are converted to the field type.
func BindProperties(properties map[string]interface{}, target interface{}) error {
	if len(properties) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(properties); err != nil {
		targetType := reflect.TypeOf(target)
		if targetType.Kind() == reflect.Ptr {
			targetType = targetType.Elem()
		}
		return fmt.Errorf("failed to bind properties to %s: %w", targetType.Name(), err)
	}
	return nil
}
