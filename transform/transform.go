/*
Package transform contains result-shaping functions for pattern.Pattern.Then.

Transforms never fail: a missing element selects nil and an unparsable number yields nil.
Element keys are int (index in a []any) or string (key in a map[string]any).
*/
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava12/llkp/pattern"
)

// Pick returns the element of v addressed by key, nil if there is no such element.
func Pick(v, key any) any {
	switch k := key.(type) {
	case int:
		a, ok := v.([]any)
		if ok && k >= 0 && k < len(a) {
			return a[k]
		}
	case string:
		m, ok := v.(map[string]any)
		if ok {
			return m[k]
		}
	}
	return nil
}

// Select yields an element of parsed value.
func Select(key any) pattern.TransformFunc {
	return func(v any, _ string) any {
		return Pick(v, key)
	}
}

// As wraps parsed value into a single-entry map.
func As(name string) pattern.TransformFunc {
	return func(v any, _ string) any {
		return map[string]any{name: v}
	}
}

// Map converts a []any into a map, fields maps keys to element indexes.
func Map(fields map[string]int) pattern.TransformFunc {
	return func(v any, _ string) any {
		m := make(map[string]any, len(fields))
		for name, index := range fields {
			m[name] = Pick(v, index)
		}
		return m
	}
}

// Make replaces parsed value with a constant.
func Make(value any) pattern.TransformFunc {
	return func(any, string) any {
		return value
	}
}

// Text replaces parsed value with consumed text.
func Text() pattern.TransformFunc {
	return func(_ any, text string) any {
		return text
	}
}

func numberText(v any, text string) string {
	s, ok := v.(string)
	if !ok {
		s = text
	}
	return s
}

// ParseInt converts a string (or consumed text if parsed value is not a string) to int.
func ParseInt(radix int) pattern.TransformFunc {
	return func(v any, text string) any {
		n, e := strconv.ParseInt(numberText(v, text), radix, 0)
		if e != nil {
			return nil
		}
		return int(n)
	}
}

// ParseFloat converts a string (or consumed text if parsed value is not a string) to float64.
func ParseFloat() pattern.TransformFunc {
	return func(v any, text string) any {
		f, e := strconv.ParseFloat(numberText(v, text), 64)
		if e != nil {
			return nil
		}
		return f
	}
}

func flatten(a []any, dst []any) []any {
	for _, item := range a {
		nested, ok := item.([]any)
		if ok {
			dst = flatten(nested, dst)
		} else {
			dst = append(dst, item)
		}
	}
	return dst
}

// Flatten converts nested []any into a flat []any. Other values are not changed.
func Flatten() pattern.TransformFunc {
	return func(v any, _ string) any {
		a, ok := v.([]any)
		if !ok {
			return v
		}
		return flatten(a, make([]any, 0, len(a)))
	}
}

// Merge concatenates strings of a (nested) []any using sep.
// nil elements are treated as empty strings, other non-strings are formatted with fmt.Sprint.
func Merge(sep string) pattern.TransformFunc {
	return func(v any, _ string) any {
		switch x := v.(type) {
		case nil:
			return ""
		case string:
			return x
		case []any:
			items := flatten(x, nil)
			parts := make([]string, len(items))
			for i, item := range items {
				if item != nil {
					parts[i] = fmt.Sprint(item)
				}
			}
			return strings.Join(parts, sep)
		default:
			return fmt.Sprint(x)
		}
	}
}

// Join converts a []any of pairs into a map: every element gives key and value
// selected by key and val. Later pairs overwrite earlier ones with the same key.
// Pairs with nil keys are skipped, non-string keys are formatted with fmt.Sprint.
func Join(key, val any) pattern.TransformFunc {
	return func(v any, _ string) any {
		a, _ := v.([]any)
		m := make(map[string]any, len(a))
		for _, item := range a {
			k := Pick(item, key)
			if k == nil {
				continue
			}
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			m[ks] = Pick(item, val)
		}
		return m
	}
}

// Trim removes leading and trailing white space from a string value.
func Trim() pattern.TransformFunc {
	return func(v any, _ string) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		return strings.TrimSpace(s)
	}
}

func bounds(start, end, length int) (int, int) {
	if start < 0 {
		start += length
	}
	if end <= 0 {
		end += length
	}
	start = max(0, min(start, length))
	end = max(start, min(end, length))
	return start, end
}

// Slice cuts a string (by code points) or a []any. Negative start and non-positive end
// count from the end of value, so Slice(1, -1) strips the first and the last elements
// and Slice(2, 0) strips the first two.
func Slice(start, end int) pattern.TransformFunc {
	return func(v any, _ string) any {
		switch x := v.(type) {
		case string:
			runes := []rune(x)
			s, e := bounds(start, end, len(runes))
			return string(runes[s:e])
		case []any:
			s, e := bounds(start, end, len(x))
			return x[s:e]
		default:
			return v
		}
	}
}
