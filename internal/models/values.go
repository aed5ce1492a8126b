package models

import (
	"fmt"
	"time"
)

// NormalizeValue rewrites a decoded YAML value into JSON-shaped data: mapping
// keys become strings and timestamps become RFC 3339 strings.
func NormalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = NormalizeValue(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = NormalizeValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = NormalizeValue(item)
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return value
	}
}
