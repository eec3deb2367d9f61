package validator

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// IsEmpty reports whether value counts as "not provided": nil, an empty
// string, an empty slice or a false boolean.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case []File:
		return len(v) == 0
	case time.Time:
		return v.IsZero()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ToString renders value the way a text control would display it.
func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ToFloat coerces numbers and numeric strings into a float64.
func ToFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// ToStrings coerces list-shaped values into a string slice. Scalars become a
// single element list; nil yields an empty list.
func ToStrings(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = ToString(item)
		}
		return out
	case []File:
		out := make([]string, len(v))
		for i, file := range v {
			out[i] = file.Name
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, rv.Len())
		for i := range out {
			out[i] = ToString(rv.Index(i).Interface())
		}
		return out
	}
	return []string{ToString(value)}
}

func itemCount(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case []File:
		return len(v)
	case File:
		return 1
	}
	return len(ToStrings(value))
}

func lengthOf(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case []string:
		return len(v), true
	case []any:
		return len(v), true
	case []File:
		return len(v), true
	case nil:
		return 0, true
	}
	if _, ok := ToFloat(value); ok {
		return utf8.RuneCountInString(ToString(value)), true
	}
	return 0, false
}

func digitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func messageOr(message []string, fallback string) string {
	for _, m := range message {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			return m
		}
	}
	return fallback
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
