package options

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/spf13/cast"
)

// FileRef points at an uploaded file held for a form. A nil *FileRef (or an
// absent key) means "no file selected".
type FileRef struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"-" yaml:"-"`
	Size  int64  `json:"size" yaml:"size"`
	Pages int    `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// State is an immutable snapshot of form values keyed by option key. The
// keyspace is flat: keys nested under tabs share it with top-level keys.
// The zero value is an empty state.
type State struct {
	values map[string]any
}

// NewState copies values into a new snapshot.
func NewState(values map[string]any) State {
	s := State{values: make(map[string]any, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// With returns a new snapshot with key set to v. The receiver is unchanged.
func (s State) With(key string, v any) State {
	next := State{values: make(map[string]any, len(s.values)+1)}
	for k, old := range s.values {
		next.values[k] = old
	}
	next.values[key] = v
	return next
}

// Get returns the value stored under key.
func (s State) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key has an entry, even a nil one.
func (s State) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of keys.
func (s State) Len() int { return len(s.values) }

// Keys returns the keys in sorted order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a copy of the underlying mapping.
func (s State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// File returns the file reference stored under key, or nil.
func (s State) File(key string) *FileRef {
	switch f := s.values[key].(type) {
	case *FileRef:
		return f
	case FileRef:
		return &f
	default:
		return nil
	}
}

// MarshalJSON emits the flat mapping.
func (s State) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.values)
}

// MarshalYAML emits the flat mapping.
func (s State) MarshalYAML() (any, error) {
	return s.Values(), nil
}

// Init seeds a state from the set's defaults, including the contents of
// every tab. Keys are flat, so the first occurrence in depth-first order
// wins, as in kindIndex. Tab and file options start absent.
func Init(set Set) State {
	values := make(map[string]any, len(set))
	seen := map[string]bool{}
	set.Walk(func(key string, d Descriptor) bool {
		if seen[key] {
			return true
		}
		seen[key] = true
		if v, ok := initial(d); ok {
			values[key] = v
		}
		return true
	})
	return State{values: values}
}

// initial is the seeded value of one descriptor.
func initial(d Descriptor) (any, bool) {
	switch d.Type {
	case KindBoolean:
		return Truthy(d.Default), true
	case KindSelect:
		switch {
		case d.Default != nil:
			return d.Default, true
		case len(d.Choices) > 0:
			return d.Choices[0], true
		default:
			return "", true
		}
	case KindNumber:
		if isNumeric(d.Default) {
			return d.Default, true
		}
		return 0, true
	case KindString, KindLongString:
		if d.Default != nil {
			return d.Default, true
		}
		return "", true
	}
	return nil, false
}

// Truthy mirrors loose truthiness: nil, false, zero, NaN and "" are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case *FileRef:
		return t != nil
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(t) != 0
	default:
		return true
	}
}

func isNumeric(v any) bool {
	switch t := v.(type) {
	case float64:
		return !math.IsNaN(t)
	case float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	case string:
		if t == "" {
			return false
		}
		_, err := cast.ToFloat64E(t)
		return err == nil
	default:
		return false
	}
}

// Display coerces a value to the string shown in a text control.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *FileRef:
		if t == nil {
			return ""
		}
		return t.Name
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
