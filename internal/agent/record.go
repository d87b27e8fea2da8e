package agent

import (
	"math"
	"strings"
)

// Record is a structured object recovered from an agent result.
// The pickers never panic on unexpected shapes; they report absence instead.
type Record map[string]any

// Has reports whether key is present, even with a null value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value of key when it is a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Map returns the value of key when it is an object.
func (r Record) Map(key string) Record {
	m, _ := r[key].(map[string]any)
	return Record(m)
}

// Slice returns the value of key when it is an array.
func (r Record) Slice(key string) []any {
	s, _ := r[key].([]any)
	return s
}

// Strings returns the string elements of the array at key, trimmed, with
// blanks and repeats removed. Order of first appearance is kept.
func (r Record) Strings(key string) []string {
	return UniqueStrings(r.Slice(key))
}

// Int returns the numeric value of key truncated to an int, clamped at zero.
func (r Record) Int(key string) int {
	f, ok := r[key].(float64)
	if !ok || math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// Truthy reports whether the value of key would count as set: non-empty
// strings, non-zero numbers, true, and any object or array.
func (r Record) Truthy(key string) bool {
	return truthy(r[key])
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

// UniqueStrings keeps the non-blank string elements of items in order of first
// appearance.
func UniqueStrings(items []any) []string {
	var out []string
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
