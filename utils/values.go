package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueError reports a request value that cannot be coerced to the type a
// field stores.
type ValueError struct {
	Field string
	Value any
	Kind  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("cast to %s failed for value %v at path %q", e.Kind, e.Value, e.Field)
}

// Truthy applies JavaScript truthiness to a decoded JSON value: null, false,
// 0 and "" are falsy, every object and array is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// IsNumber reports whether v decoded from a JSON number.
func IsNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}

// ToString coerces a decoded JSON scalar to a string. null becomes "".
func ToString(field string, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", &ValueError{Field: field, Value: v, Kind: "string"}
	}
}

// ToNumber coerces a decoded JSON number or numeric string to float64.
func ToNumber(field string, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, &ValueError{Field: field, Value: v, Kind: "number"}
		}
		return n, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, &ValueError{Field: field, Value: v, Kind: "number"}
	}
}
