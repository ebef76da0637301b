package options

import (
	"encoding/json"
	"reflect"
	"testing"
)

const tabSchema = `{
	"mode": {
		"type": "tab",
		"choices": ["A", "B"],
		"content": {
			"A": {"x": {"type": "string"}},
			"B": {"y": {"type": "string"}}
		}
	}
}`

func TestParseSet_PreservesOrder(t *testing.T) {
	set, err := ParseSet([]byte(`{
		"zeta": {"type": "string"},
		"alpha": {"type": "boolean"},
		"mid": {"type": "number", "default": 3}
	}`))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	if got := set.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestParseSet_UnknownTypeFallsBackToString(t *testing.T) {
	set, err := ParseSet([]byte(`{"color": {"type": "rgb", "default": "red"}}`))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}

	d, ok := set.Get("color")
	if !ok {
		t.Fatal("expected color option")
	}
	if d.Type != KindString {
		t.Errorf("Type = %q, want %q", d.Type, KindString)
	}
	if d.RawType != "rgb" {
		t.Errorf("RawType = %q, want rgb", d.RawType)
	}
}

func TestParseSet_Nested(t *testing.T) {
	set, err := ParseSet([]byte(tabSchema))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}

	d, _ := set.Get("mode")
	if d.Type != KindTab {
		t.Fatalf("Type = %q, want tab", d.Type)
	}
	if !reflect.DeepEqual(d.Choices, []string{"A", "B"}) {
		t.Errorf("Choices = %v", d.Choices)
	}
	if _, ok := d.Content["A"].Get("x"); !ok {
		t.Error("expected x under tab A")
	}
	if _, ok := d.Content["B"].Get("y"); !ok {
		t.Error("expected y under tab B")
	}
}

func TestParseSet_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{"a":`},
		{"array root", `[1, 2]`},
		{"string root", `"x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSet([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseSet_SkipsNonObjectDescriptors(t *testing.T) {
	set, err := ParseSet([]byte(`{"a": 1, "b": {"type": "string"}, "c": "x"}`))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}
	if got := set.Keys(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Keys() = %v, want [b]", got)
	}
}

func TestSet_UnmarshalInsideStruct(t *testing.T) {
	var resp struct {
		Success bool `json:"success"`
		Options Set  `json:"options"`
	}
	doc := `{"success": true, "options": {"b": {"type": "string"}, "a": {"type": "select", "choices": ["x"]}}}`
	if err := json.Unmarshal([]byte(doc), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := resp.Options.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Keys() = %v, want [b a]", got)
	}
}

func TestSet_MarshalJSONKeepsOrder(t *testing.T) {
	set, err := ParseSet([]byte(`{"z": {"type": "string"}, "a": {"type": "rgb"}}`))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}

	out, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"z":{"type":"string"},"a":{"type":"rgb"}}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}

func TestSet_Walk(t *testing.T) {
	set, err := ParseSet([]byte(`{
		"top": {"type": "string"},
		"mode": {
			"type": "tab",
			"choices": ["A", "B"],
			"content": {
				"A": {"inner": {"type": "tab", "choices": ["deep"], "content": {"deep": {"d": {"type": "number"}}}}},
				"B": {"y": {"type": "string"}}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}

	var keys []string
	set.Walk(func(key string, _ Descriptor) bool {
		keys = append(keys, key)
		return true
	})
	want := []string{"top", "mode", "inner", "d", "y"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Walk() visited %v, want %v", keys, want)
	}
}
