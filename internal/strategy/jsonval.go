package strategy

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// decodeLoose unmarshals a JSON blob into a generic value, repairing the
// text on a first failure. Embedded blobs routinely carry trailing commas,
// single quotes, and unquoted keys; repair-then-retry keeps the per-block
// "never fatal" contract.
func decodeLoose(blob string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(blob), &v); err == nil {
		return v, true
	}
	repaired, err := jsonrepair.JSONRepair(blob)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &v); err != nil {
		return nil, false
	}
	return v, true
}

// asMap safely narrows a generic value to an object.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asSlice safely narrows a generic value to an array.
func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// dig walks a dotted-style path through nested objects, returning the value
// at the end or false at the first missing segment. It never panics on
// unexpected shapes.
func dig(v any, path ...string) (any, bool) {
	cur := v
	for _, seg := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// str reads a key as a string, accepting numbers formatted as strings too.
func str(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

// num reads a key as a number, accepting numeric strings ("23,450") too.
func num(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return toNum(v)
}

func toNum(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(t)
		f, err := strconv.ParseFloat(cleaned, 64)
		return f, err == nil
	}
	return 0, false
}

// firstStr returns the first present-and-nonempty string among keys.
func firstStr(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := str(m, k); ok {
			return s, true
		}
	}
	return "", false
}

// firstNum returns the first present numeric value among keys, in priority
// order.
func firstNum(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := num(m, k); ok {
			return f, true
		}
	}
	return 0, false
}
