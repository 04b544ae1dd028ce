package common

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
)

// Arguments arrive either as decoded JSON-RPC params or as an HTTP body or
// query merged into a map, so numbers may be float64, int or string.

// String returns args[key] as a string, or "".
func String(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// StringDefault returns args[key], or def when it is missing or empty.
func StringDefault(args map[string]any, key, def string) string {
	if s := String(args, key); s != "" {
		return s
	}
	return def
}

// RequireString returns args[key] or a validation error when it is empty.
func RequireString(args map[string]any, key string) (string, error) {
	s := String(args, key)
	if s == "" {
		return "", apperrors.Validation("%s is required", key)
	}
	return s, nil
}

// Int returns args[key] as an integer, or def when it is missing or not
// numeric.
func Int(args map[string]any, key string, def int64) int64 {
	n, ok := intValue(args[key])
	if !ok {
		return def
	}
	return n
}

// RequireInt returns args[key] or a validation error when it is missing.
func RequireInt(args map[string]any, key string) (int64, error) {
	n, ok := intValue(args[key])
	if !ok {
		return 0, apperrors.Validation("%s is required and must be a number", key)
	}
	return n, nil
}

func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Bool returns args[key] as a bool, or def when it is missing.
func Bool(args map[string]any, key string, def bool) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Has reports whether key is present and non-nil.
func Has(args map[string]any, key string) bool {
	v, ok := args[key]
	return ok && v != nil
}

// StringSlice accepts a JSON array of strings or a comma-separated string.
func StringSlice(args map[string]any, key string) []string {
	var out []string
	switch v := args[key].(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case string:
		out = strings.Split(v, ",")
	}

	cleaned := out[:0]
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// Decode converts args[key] into out through JSON. A string value holding
// JSON is decoded as well, since some clients stringify nested arguments.
func Decode(args map[string]any, key string, out any) error {
	v, ok := args[key]
	if !ok || v == nil {
		return apperrors.Validation("%s is required", key)
	}

	var raw []byte
	if s, isString := v.(string); isString && json.Valid([]byte(s)) {
		raw = []byte(s)
	} else {
		b, err := json.Marshal(v)
		if err != nil {
			return apperrors.Validation("invalid %s: %v", key, err)
		}
		raw = b
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Validation("invalid %s: %v", key, err)
	}
	return nil
}

// Enum returns args[key] (or def) when it is one of allowed.
func Enum(args map[string]any, key, def string, allowed ...string) (string, error) {
	v := StringDefault(args, key, def)
	if v == "" {
		return "", apperrors.Validation("%s is required", key)
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", apperrors.Validation("Invalid %s: %q. Must be one of: %s", key, v, strings.Join(allowed, ", "))
}
