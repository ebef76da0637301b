package options

import (
	"reflect"
	"testing"
)

func TestValidate_Clean(t *testing.T) {
	set := mustParse(t, `{
		"ocr":  {"type": "boolean", "default": false},
		"mode": {"type": "select", "choices": ["fast"], "default": "fast"},
		"dpi":  {"type": "number", "default": 300},
		"tab":  {"type": "tab", "choices": ["A"], "content": {"A": {"x": {"type": "string"}}}}
	}`)
	if problems := Validate(set); len(problems) != 0 {
		t.Errorf("Validate() = %v, want none", problems)
	}
}

func TestValidate_Problems(t *testing.T) {
	set := mustParse(t, `{
		"untyped": {},
		"color":   {"type": "rgb"},
		"sel":     {"type": "select", "choices": ["a"], "default": "z"},
		"empty":   {"type": "select"},
		"flag":    {"type": "boolean", "default": "yes"},
		"dpi":     {"type": "number", "default": "many"},
		"mode":    {"type": "tab", "choices": ["A", "B"], "content": {
			"A": {"inner": {"type": "select"}},
			"Z": {}
		}}
	}`)

	var got []string
	for _, p := range Validate(set) {
		got = append(got, p.String())
	}
	want := []string{
		"untyped: missing type, rendered as string",
		`color: unknown type "rgb", rendered as string`,
		`sel: default "z" is not one of the choices`,
		"empty: select has no choices",
		"flag: default yes is not a boolean",
		"dpi: default many is not numeric, seeded as 0",
		`mode: content "Z" does not match any choice`,
		"mode.A.inner: select has no choices",
		`mode: tab "B" has no content`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() =\n%v\nwant\n%v", got, want)
	}
}

func TestValidate_ReservedKeys(t *testing.T) {
	set := mustParse(t, `{
		"_present":   {"type": "string"},
		"_clear:doc": {"type": "boolean"},
		"_tabs":      {"type": "string"},
		"mode":       {"type": "tab", "choices": ["A"], "content": {
			"A": {"_action": {"type": "string"}}
		}}
	}`)

	var got []string
	for _, p := range Validate(set) {
		got = append(got, p.String())
	}
	want := []string{
		`_present: key collides with the reserved form field "_present"`,
		`_clear:doc: key collides with the reserved form field "_clear:doc"`,
		`mode.A._action: key collides with the reserved form field "_action"`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() =\n%v\nwant\n%v", got, want)
	}
}
