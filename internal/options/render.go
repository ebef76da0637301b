package options

import "net/url"

// Control names the affordance a field is drawn with.
type Control string

const (
	ControlToggle   Control = "toggle"
	ControlSelect   Control = "select"
	ControlText     Control = "text"
	ControlNumber   Control = "number"
	ControlTextArea Control = "textarea"
	ControlFile     Control = "file"
	ControlTabs     Control = "tabs"
)

// Field is the rendered view model of one option.
type Field struct {
	Key         string
	Label       string
	Description string
	Kind        Kind
	Control     Control

	// Value is the display string for text-like controls and selects.
	Value string
	// Checked is set for toggles.
	Checked bool
	// File is the attached upload, nil when none.
	File *FileRef

	Choices  []Choice
	Tabs     []Tab
	Children []Field
}

// Choice is one entry of a select control.
type Choice struct {
	Value    string
	Selected bool
}

// Tab is one label of a tab row.
type Tab struct {
	Name   string
	Active bool
	// Action is the encoded value posted to switch to this tab.
	Action string
}

// Render maps one descriptor and the current state to a field. It is a pure
// function of its arguments.
func Render(key string, d Descriptor, state State) Field {
	v, _ := state.Get(key)
	f := Field{
		Key:         key,
		Label:       key,
		Description: d.Description,
		Kind:        d.Type,
	}

	switch d.Type {
	case KindBoolean:
		f.Control = ControlToggle
		f.Checked = Truthy(v)
	case KindSelect:
		f.Control = ControlSelect
		f.Value = Display(v)
		f.Choices = make([]Choice, 0, len(d.Choices))
		for _, c := range d.Choices {
			f.Choices = append(f.Choices, Choice{Value: c, Selected: c == f.Value})
		}
	case KindString:
		f.Control = ControlText
		f.Value = Display(v)
	case KindNumber:
		f.Control = ControlNumber
		f.Value = Display(v)
	case KindLongString:
		f.Control = ControlTextArea
		f.Value = Display(v)
	case KindFile:
		f.Control = ControlFile
		f.File = state.File(key)
	case KindTab:
		f.Control = ControlTabs
		active := ActiveTab(key, d, state)
		f.Value = active
		f.Tabs = make([]Tab, 0, len(d.Choices))
		for _, c := range d.Choices {
			f.Tabs = append(f.Tabs, Tab{Name: c, Active: c == active, Action: TabAction(key, c)})
		}
		f.Children = RenderSet(d.Content[active], state)
	}
	return f
}

// RenderSet renders every option of the set in order.
func RenderSet(set Set, state State) []Field {
	fields := make([]Field, 0, len(set))
	for _, e := range set {
		fields = append(fields, Render(e.Key, e.Descriptor, state))
	}
	return fields
}

// ActiveTab returns the selected tab of a tab descriptor: the state value
// when it names a choice, otherwise the first choice.
func ActiveTab(key string, d Descriptor, state State) string {
	if v, ok := state.Get(key); ok {
		if s := Display(v); d.HasChoice(s) {
			return s
		}
	}
	if len(d.Choices) > 0 {
		return d.Choices[0]
	}
	return ""
}

// TabAction encodes a tab switch for posting back.
func TabAction(key, choice string) string {
	return url.Values{"key": {key}, "choice": {choice}}.Encode()
}

// ParseTabAction decodes a value produced by TabAction.
func ParseTabAction(action string) (key, choice string, ok bool) {
	q, err := url.ParseQuery(action)
	if err != nil || !q.Has("key") || !q.Has("choice") {
		return "", "", false
	}
	return q.Get("key"), q.Get("choice"), true
}
