// Package payload holds defensive accessors for raw upstream JSON decoded
// into map[string]any. Missing or mis-typed fields read as zero values, never
// as errors.
package payload

// String returns the first non-empty string stored under any of the keys.
func String(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Value returns the first non-nil value stored under any of the keys.
func Value(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Map returns the nested object under key, or nil.
func Map(m map[string]any, key string) map[string]any {
	nested, _ := m[key].(map[string]any)
	return nested
}

// List returns the array under key, or nil.
func List(m map[string]any, key string) []any {
	items, _ := m[key].([]any)
	return items
}

// Maps returns the array under key filtered down to object elements.
func Maps(m map[string]any, key string) []map[string]any {
	items, ok := m[key].([]any)
	if !ok {
		return nil
	}
	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			result = append(result, obj)
		}
	}
	return result
}

// Float coerces a numeric value to float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// FirstFloat returns the leading element of a numeric array.
func FirstFloat(v any) (float64, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return 0, false
	}
	return Float(items[0])
}

// FirstInt returns the leading element of a numeric array rounded to int.
func FirstInt(v any) (int, bool) {
	f, ok := FirstFloat(v)
	if !ok {
		return 0, false
	}
	return int(f + 0.5), true
}
