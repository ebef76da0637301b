package options

import (
	"testing"
)

func mustParse(t *testing.T, doc string) Set {
	t.Helper()
	set, err := ParseSet([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}
	return set
}

func TestInit(t *testing.T) {
	set := mustParse(t, `{
		"ocr":       {"type": "boolean"},
		"tables":    {"type": "boolean", "default": true},
		"mode":      {"type": "select", "choices": ["fast", "accurate"]},
		"lang":      {"type": "select", "choices": ["en", "fr"], "default": "fr"},
		"empty_sel": {"type": "select"},
		"dpi":       {"type": "number", "default": 300},
		"pages":     {"type": "number", "default": "all"},
		"nodef":     {"type": "number"},
		"prompt":    {"type": "long_string", "default": "hello"},
		"name":      {"type": "string"},
		"color":     {"type": "rgb", "default": "red"},
		"doc":       {"type": "file"},
		"tabbed":    {"type": "tab", "choices": ["A"], "content": {"A": {"x": {"type": "string"}}}}
	}`)

	state := Init(set)

	tests := []struct {
		key  string
		want any
	}{
		{"ocr", false},
		{"tables", true},
		{"mode", "fast"},
		{"lang", "fr"},
		{"empty_sel", ""},
		{"dpi", float64(300)},
		{"pages", 0},
		{"nodef", 0},
		{"prompt", "hello"},
		{"name", ""},
		{"x", ""},
		{"color", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := state.Get(tt.key)
			if !ok {
				t.Fatalf("key %q not seeded", tt.key)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}

	for _, key := range []string{"doc", "tabbed"} {
		if state.Has(key) {
			t.Errorf("key %q should start absent", key)
		}
	}
}

func TestInit_NestedTabDefaults(t *testing.T) {
	set := mustParse(t, `{
		"mode": {"type": "tab", "choices": ["A", "B"], "content": {
			"A": {
				"dpi":  {"type": "number", "default": 300},
				"ocr":  {"type": "boolean", "default": true},
				"lang": {"type": "select", "choices": ["en", "fr"], "default": "fr"}
			},
			"B": {
				"dpi":   {"type": "number", "default": 72},
				"inner": {"type": "tab", "choices": ["X"], "content": {"X": {"deep": {"type": "string", "default": "d"}}}}
			}
		}}
	}`)
	state := Init(set)

	tests := []struct {
		key  string
		want any
	}{
		{"dpi", float64(300)}, // first occurrence wins
		{"ocr", true},
		{"lang", "fr"},
		{"deep", "d"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got, _ := state.Get(tt.key); got != tt.want {
				t.Errorf("Get(%q) = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
	for _, key := range []string{"mode", "inner"} {
		if state.Has(key) {
			t.Errorf("tab %q should start absent", key)
		}
	}
}

func TestInit_ValueTypesMatchKinds(t *testing.T) {
	set := mustParse(t, `{
		"b": {"type": "boolean", "default": "yes"},
		"s": {"type": "select", "choices": ["one"]},
		"n": {"type": "number", "default": 1.5},
		"t": {"type": "string", "default": "v"},
		"l": {"type": "long_string"}
	}`)
	state := Init(set)

	for _, e := range set {
		v, _ := state.Get(e.Key)
		switch e.Descriptor.Type {
		case KindBoolean:
			if _, ok := v.(bool); !ok {
				t.Errorf("%s: got %T, want bool", e.Key, v)
			}
		case KindSelect:
			if !e.Descriptor.HasChoice(Display(v)) {
				t.Errorf("%s: %v is not a choice", e.Key, v)
			}
		case KindNumber:
			if !isNumeric(v) {
				t.Errorf("%s: %v is not numeric", e.Key, v)
			}
		case KindString, KindLongString:
			if _, ok := v.(string); !ok {
				t.Errorf("%s: got %T, want string", e.Key, v)
			}
		}
	}
}

func TestState_WithIsImmutable(t *testing.T) {
	before := NewState(map[string]any{"a": "1"})
	after := before.With("a", "2").With("b", true)

	if v, _ := before.Get("a"); v != "1" {
		t.Errorf("before a = %v, want 1", v)
	}
	if before.Has("b") {
		t.Error("before should not gain key b")
	}
	if v, _ := after.Get("a"); v != "2" {
		t.Errorf("after a = %v, want 2", v)
	}
	if after.Len() != 2 {
		t.Errorf("after Len() = %d, want 2", after.Len())
	}
}

func TestState_ZeroValue(t *testing.T) {
	var s State
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	out, err := s.MarshalJSON()
	if err != nil || string(out) != "{}" {
		t.Errorf("MarshalJSON() = %s, %v", out, err)
	}
	if next := s.With("k", 1); next.Len() != 1 {
		t.Errorf("With() Len = %d, want 1", next.Len())
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{float64(0), false},
		{float64(2), true},
		{0, false},
		{7, true},
		{map[string]any{}, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.in); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{float64(300), "300"},
		{1.25, "1.25"},
		{true, "true"},
		{&FileRef{Name: "a.pdf"}, "a.pdf"},
		{[]any{"a", 1.0}, `["a",1]`},
	}
	for _, tt := range tests {
		if got := Display(tt.in); got != tt.want {
			t.Errorf("Display(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
