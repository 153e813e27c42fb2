// Package configmap reads typed values out of stored action configs, which
// arrive as map[string]any after JSON decoding.
package configmap

import "fmt"

func String(config map[string]any, key string) string {
	if value, ok := config[key].(string); ok {
		return value
	}

	return ""
}

// StringSlice accepts both []string and the []any a JSON decoder produces.
func StringSlice(config map[string]any, key string) []string {
	switch value := config[key].(type) {
	case []string:
		return value
	case []any:
		result := make([]string, 0, len(value))
		for _, item := range value {
			result = append(result, fmt.Sprintf("%v", item))
		}

		return result
	default:
		return nil
	}
}
