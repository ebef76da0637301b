package options

import (
	"net/url"
	"testing"
)

func TestRender_Controls(t *testing.T) {
	set := mustParse(t, `{
		"b":  {"type": "boolean", "description": "Enable it"},
		"s":  {"type": "select", "choices": ["fast", "accurate"]},
		"t":  {"type": "string"},
		"n":  {"type": "number"},
		"l":  {"type": "long_string"},
		"f":  {"type": "file"},
		"u":  {"type": "mystery"},
		"tb": {"type": "tab", "choices": ["A"], "content": {"A": {}}}
	}`)
	fields := RenderSet(set, Init(set))

	want := []Control{ControlToggle, ControlSelect, ControlText, ControlNumber, ControlTextArea, ControlFile, ControlText, ControlTabs}
	if len(fields) != len(want) {
		t.Fatalf("len(fields) = %d, want %d", len(fields), len(want))
	}
	for i, f := range fields {
		if f.Control != want[i] {
			t.Errorf("%s: Control = %q, want %q", f.Key, f.Control, want[i])
		}
		if f.Label != f.Key {
			t.Errorf("%s: Label = %q", f.Key, f.Label)
		}
	}
	if fields[0].Description != "Enable it" {
		t.Errorf("Description = %q", fields[0].Description)
	}
	if fields[5].File != nil {
		t.Error("absent file should render as no file")
	}
}

func TestRender_SelectMarksCurrentChoice(t *testing.T) {
	set := mustParse(t, `{"mode": {"type": "select", "choices": ["fast", "accurate"]}}`)
	state := Init(set).With("mode", "accurate")

	f := Render("mode", set[0].Descriptor, state)
	if len(f.Choices) != 2 {
		t.Fatalf("len(Choices) = %d", len(f.Choices))
	}
	if f.Choices[0].Selected || !f.Choices[1].Selected {
		t.Errorf("Choices = %+v, want accurate selected", f.Choices)
	}
}

func TestRender_SelectWithoutChoices(t *testing.T) {
	set := mustParse(t, `{"mode": {"type": "select"}}`)
	f := Render("mode", set[0].Descriptor, Init(set))
	if f.Choices == nil || len(f.Choices) != 0 {
		t.Errorf("Choices = %#v, want empty list", f.Choices)
	}
}

func TestRender_TabDefaultsToFirstChoice(t *testing.T) {
	set := mustParse(t, tabSchema)
	f := Render("mode", set[0].Descriptor, Init(set))

	if f.Value != "A" {
		t.Errorf("active tab = %q, want A", f.Value)
	}
	if !f.Tabs[0].Active || f.Tabs[1].Active {
		t.Errorf("Tabs = %+v", f.Tabs)
	}
	if len(f.Children) != 1 || f.Children[0].Key != "x" {
		t.Errorf("Children = %+v, want [x]", f.Children)
	}
}

func TestRender_TabMissingContent(t *testing.T) {
	set := mustParse(t, `{"mode": {"type": "tab", "choices": ["A", "B"], "content": {"A": {"x": {"type": "string"}}}}}`)
	state := Init(set).With("mode", "B")

	f := Render("mode", set[0].Descriptor, state)
	if f.Value != "B" {
		t.Errorf("active tab = %q, want B", f.Value)
	}
	if len(f.Children) != 0 {
		t.Errorf("Children = %+v, want none", f.Children)
	}
}

func TestRender_TabWithoutChoices(t *testing.T) {
	set := mustParse(t, `{"mode": {"type": "tab"}}`)
	f := Render("mode", set[0].Descriptor, Init(set))
	if len(f.Tabs) != 0 || len(f.Children) != 0 {
		t.Errorf("got tabs=%v children=%v, want none", f.Tabs, f.Children)
	}
}

func TestRender_NestedTabs(t *testing.T) {
	set := mustParse(t, `{
		"outer": {"type": "tab", "choices": ["A"], "content": {
			"A": {"inner": {"type": "tab", "choices": ["X", "Y"], "content": {
				"X": {"x1": {"type": "string"}},
				"Y": {"y1": {"type": "boolean"}}
			}}}
		}}
	}`)
	state := Init(set).With("inner", "Y").With("y1", true)

	f := Render("outer", set[0].Descriptor, state)
	inner := f.Children[0]
	if inner.Value != "Y" {
		t.Fatalf("inner active = %q, want Y", inner.Value)
	}
	if len(inner.Children) != 1 || inner.Children[0].Key != "y1" || !inner.Children[0].Checked {
		t.Errorf("inner children = %+v", inner.Children)
	}
}

func TestRender_NestedDefaults(t *testing.T) {
	set := mustParse(t, `{"mode": {"type": "tab", "choices": ["A", "B"], "content": {"A": {
		"dpi":  {"type": "number", "default": 300},
		"ocr":  {"type": "boolean", "default": true},
		"lang": {"type": "select", "choices": ["en", "fr"], "default": "fr"}
	}}}}`)

	f := Render("mode", set[0].Descriptor, Init(set))
	if len(f.Children) != 3 {
		t.Fatalf("children = %+v", f.Children)
	}
	dpi, ocr, lang := f.Children[0], f.Children[1], f.Children[2]
	if dpi.Value != "300" {
		t.Errorf("dpi value = %q, want 300", dpi.Value)
	}
	if !ocr.Checked {
		t.Error("ocr unchecked, want its default true")
	}
	if lang.Value != "fr" || !lang.Choices[1].Selected || lang.Choices[0].Selected {
		t.Errorf("lang = %q choices %+v, want fr selected", lang.Value, lang.Choices)
	}

	// Posting the rendered tab keeps the defaults.
	state := Decode(set, Init(set), post([]Field{f}, url.Values{"dpi": {"300"}, "ocr": {"true"}, "lang": {"fr"}}))
	if got := Payload(set, state); got["dpi"] != float64(300) || got["ocr"] != true || got["lang"] != "fr" {
		t.Errorf("Payload() = %#v", got)
	}
}

func TestTabAction_RoundTrip(t *testing.T) {
	action := TabAction("a=b&c", "x y:z")
	key, choice, ok := ParseTabAction(action)
	if !ok || key != "a=b&c" || choice != "x y:z" {
		t.Errorf("ParseTabAction() = %q, %q, %v", key, choice, ok)
	}
	if _, _, ok := ParseTabAction("garbage"); ok {
		t.Error("expected garbage to be rejected")
	}
}

// post builds a submission as a browser would post the rendered form.
func post(fields []Field, values url.Values) Submission {
	if values == nil {
		values = url.Values{}
	}
	var mark func([]Field)
	mark = func(fs []Field) {
		for _, f := range fs {
			values.Add(FieldPresent, f.Key)
			mark(f.Children)
		}
	}
	mark(fields)
	return Submission{Values: values}
}

func TestTabRevisitPreservesNestedValues(t *testing.T) {
	set := mustParse(t, tabSchema)
	ctrl := NewController(set, Init(set))

	// Type x on tab A.
	ctrl.Apply(func(s State) State {
		return Decode(set, s, post(RenderSet(set, s), url.Values{"x": {"hello"}}))
	})

	// Switch to B, carrying the visible form along.
	ctrl.Apply(func(s State) State {
		s = Decode(set, s, post(RenderSet(set, s), url.Values{"x": {"hello"}}))
		next, ok := SwitchTab(set, s, "mode", "B")
		if !ok {
			t.Fatal("SwitchTab(B) rejected")
		}
		return next
	})

	// On B only y is rendered; posting it must not touch x.
	ctrl.Apply(func(s State) State {
		return Decode(set, s, post(RenderSet(set, s), url.Values{"y": {"world"}}))
	})

	// Back to A.
	ctrl.Apply(func(s State) State {
		next, _ := SwitchTab(set, s, "mode", "A")
		return next
	})

	state := ctrl.Snapshot()
	if v, _ := state.Get("x"); v != "hello" {
		t.Errorf("x = %v, want hello", v)
	}
	if v, _ := state.Get("y"); v != "world" {
		t.Errorf("y = %v, want world", v)
	}
	f := Render("mode", set[0].Descriptor, state)
	if f.Children[0].Value != "hello" {
		t.Errorf("rendered x = %q, want hello", f.Children[0].Value)
	}
}
