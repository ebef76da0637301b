package options

import "net/url"

// Reserved form field names used by the rendered form.
const (
	// FieldPresent lists, once per rendered field, the keys the form carried.
	FieldPresent = "_present"
	// FieldTab carries a TabAction when a tab label was pressed.
	FieldTab = "_tab"
	// FieldAction carries the submit action.
	FieldAction = "_action"
	// FieldClearPrefix, followed by a key, clears that key's file.
	FieldClearPrefix = "_clear:"
)

// Submission is one posted form: its values plus the files already stored
// for file options, keyed by option key.
type Submission struct {
	Values url.Values
	Files  map[string]*FileRef
}

// Decode folds a submission into state and returns the new snapshot. Only
// options both visible under the current tab selection and listed in
// FieldPresent are read, so values under inactive tabs are never touched.
func Decode(set Set, state State, sub Submission) State {
	present := map[string]bool{}
	for _, k := range sub.Values[FieldPresent] {
		present[k] = true
	}
	return decodeSet(set, state, sub, present)
}

func decodeSet(set Set, state State, sub Submission, present map[string]bool) State {
	for _, e := range set {
		key, d := e.Key, e.Descriptor
		if !present[key] {
			continue
		}
		switch d.Type {
		case KindBoolean:
			state = state.With(key, checkboxValue(sub.Values, key))
		case KindSelect:
			if v := sub.Values.Get(key); sub.Values.Has(key) && d.HasChoice(v) {
				state = state.With(key, v)
			}
		case KindString, KindNumber, KindLongString:
			if sub.Values.Has(key) {
				state = state.With(key, sub.Values.Get(key))
			}
		case KindFile:
			if f := sub.Files[key]; f != nil {
				state = state.With(key, f)
			} else if sub.Values.Has(FieldClearPrefix + key) {
				state = state.With(key, (*FileRef)(nil))
			}
		case KindTab:
			state = decodeSet(d.Content[ActiveTab(key, d, state)], state, sub, present)
		}
	}
	return state
}

func checkboxValue(values url.Values, key string) bool {
	if !values.Has(key) {
		return false
	}
	switch values.Get(key) {
	case "false", "off", "0":
		return false
	default:
		return true
	}
}

// SwitchTab selects choice on the tab option key, which may be nested under
// other tabs. Nested values of every tab are kept. It reports false when
// key is not a visible tab option or choice is not one of its choices.
func SwitchTab(set Set, state State, key, choice string) (State, bool) {
	d, ok := Visible(set, state)[key]
	if !ok || d.Type != KindTab || !d.HasChoice(choice) {
		return state, false
	}
	return state.With(key, choice), true
}

// Visible returns the descriptors reachable under the current tab selection.
// On key collisions the first visible descriptor wins.
func Visible(set Set, state State) map[string]Descriptor {
	out := map[string]Descriptor{}
	var walk func(Set)
	walk = func(s Set) {
		for _, e := range s {
			if _, seen := out[e.Key]; !seen {
				out[e.Key] = e.Descriptor
			}
			if e.Descriptor.Type == KindTab {
				walk(e.Descriptor.Content[ActiveTab(e.Key, e.Descriptor, state)])
			}
		}
	}
	walk(set)
	return out
}
