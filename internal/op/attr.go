package op

import (
	"reflect"
	"strings"
)

// DefaultPathSeparator joins the segments of a dotted path.
const DefaultPathSeparator = "."

// GetAttribute traverses source as a nested mapping along dottedPath
// and returns the value at the terminal segment. Every failure mode
// (nil or non-traversable source, missing segment, non-mapping
// intermediate value) returns defaultValue; it never panics.
func GetAttribute(source interface{}, dottedPath string, defaultValue interface{}) interface{} {
	return GetAttributeSep(source, dottedPath, defaultValue, DefaultPathSeparator)
}

// GetAttributeSep is GetAttribute with a caller-chosen segment
// separator. An empty separator makes the path unsplittable and is
// treated as a lookup failure.
func GetAttributeSep(source interface{}, dottedPath string, defaultValue interface{}, sep string) interface{} {
	if source == nil || sep == "" {
		return defaultValue
	}

	current := source
	for _, segment := range strings.Split(dottedPath, sep) {
		value, ok := lookupKey(current, segment)
		if !ok {
			return defaultValue
		}
		current = value
	}
	return current
}

// lookupKey fetches a string key from any mapping value.
func lookupKey(source interface{}, key string) (interface{}, bool) {
	switch m := source.(type) {
	case map[string]interface{}:
		v, ok := m[key]
		return v, ok
	case map[interface{}]interface{}:
		v, ok := m[key]
		return v, ok
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}
