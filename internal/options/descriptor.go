// Package options models provider option schemas and the form built from them.
//
// A provider publishes an ordered Set of Descriptors. Init seeds a flat State
// from the Set; Render turns (Set, State) into a tree of Field view models;
// Decode folds a posted form back into a new State; Payload turns the State
// into an extraction request body. Controller ties these together for one
// provider selection.
package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Kind is the closed set of descriptor types.
type Kind string

const (
	KindBoolean    Kind = "boolean"
	KindSelect     Kind = "select"
	KindString     Kind = "string"
	KindNumber     Kind = "number"
	KindLongString Kind = "long_string"
	KindFile       Kind = "file"
	KindTab        Kind = "tab"
)

// ParseKind maps a wire type to a Kind. Unknown types degrade to KindString
// so they render as a plain-text editor.
func ParseKind(s string) Kind {
	switch k := Kind(s); k {
	case KindBoolean, KindSelect, KindString, KindNumber, KindLongString, KindFile, KindTab:
		return k
	default:
		return KindString
	}
}

// Known reports whether s names one of the closed set of kinds.
func Known(s string) bool {
	return ParseKind(s) == Kind(s)
}

// Descriptor describes one configurable input.
type Descriptor struct {
	Type Kind
	// RawType is the type string as sent by the backend.
	RawType     string
	Default     any
	Choices     []string
	Content     map[string]Set
	Description string
}

// Entry is one keyed descriptor of a Set.
type Entry struct {
	Key        string
	Descriptor Descriptor
}

// Set is an ordered mapping of option key to descriptor. Order is the order
// the backend returned and is the display order.
type Set []Entry

// ErrNotObject is returned when an option set document is not a JSON object.
var ErrNotObject = errors.New("option set must be a JSON object")

// ParseSet decodes an option set document, preserving key order.
func ParseSet(data []byte) (Set, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}
	return parseSet(root), nil
}

func parseSet(obj gjson.Result) Set {
	var set Set
	index := map[string]int{}
	obj.ForEach(func(k, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		key := k.String()
		d := parseDescriptor(v)
		if i, ok := index[key]; ok {
			set[i].Descriptor = d
			return true
		}
		index[key] = len(set)
		set = append(set, Entry{Key: key, Descriptor: d})
		return true
	})
	return set
}

func parseDescriptor(v gjson.Result) Descriptor {
	raw := v.Get("type").String()
	d := Descriptor{
		Type:        ParseKind(raw),
		RawType:     raw,
		Description: v.Get("description").String(),
	}
	if def := v.Get("default"); def.Exists() && def.Type != gjson.Null {
		d.Default = def.Value()
	}
	if choices := v.Get("choices"); choices.IsArray() {
		for _, c := range choices.Array() {
			if c.Type == gjson.String || c.Type == gjson.Number {
				d.Choices = append(d.Choices, c.String())
			}
		}
	}
	if content := v.Get("content"); content.IsObject() {
		d.Content = map[string]Set{}
		content.ForEach(func(name, nested gjson.Result) bool {
			if nested.IsObject() {
				d.Content[name.String()] = parseSet(nested)
			}
			return true
		})
	}
	return d
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (s *Set) UnmarshalJSON(data []byte) error {
	set, err := ParseSet(data)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// MarshalJSON emits the set as a JSON object in display order.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		d, err := json.Marshal(e.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", e.Key, err)
		}
		buf.Write(d)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the set as an ordered list for CLI output.
func (s Set) MarshalYAML() (any, error) {
	out := make([]map[string]any, 0, len(s))
	for _, e := range s {
		out = append(out, map[string]any{e.Key: e.Descriptor.wire()})
	}
	return out, nil
}

type wireDescriptor struct {
	Type        string         `json:"type" yaml:"type"`
	Default     any            `json:"default,omitempty" yaml:"default,omitempty"`
	Choices     []string       `json:"choices,omitempty" yaml:"choices,omitempty"`
	Content     map[string]Set `json:"content,omitempty" yaml:"content,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
}

func (d Descriptor) wire() wireDescriptor {
	t := d.RawType
	if t == "" {
		t = string(d.Type)
	}
	return wireDescriptor{
		Type:        t,
		Default:     d.Default,
		Choices:     d.Choices,
		Content:     d.Content,
		Description: d.Description,
	}
}

// MarshalJSON emits the backend wire shape of the descriptor.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

// Get returns the descriptor stored under key at this level of the set.
func (s Set) Get(key string) (Descriptor, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Descriptor, true
		}
	}
	return Descriptor{}, false
}

// Keys returns the top-level keys in display order.
func (s Set) Keys() []string {
	keys := make([]string, len(s))
	for i, e := range s {
		keys[i] = e.Key
	}
	return keys
}

// HasChoice reports whether c is one of the descriptor's choices.
func (d Descriptor) HasChoice(c string) bool {
	for _, choice := range d.Choices {
		if choice == c {
			return true
		}
	}
	return false
}

// Walk visits every descriptor of the set depth first, including the
// contents of every tab regardless of which one is active. Returning false
// from fn stops the walk.
func (s Set) Walk(fn func(key string, d Descriptor) bool) bool {
	for _, e := range s {
		if !fn(e.Key, e.Descriptor) {
			return false
		}
		if e.Descriptor.Type != KindTab {
			continue
		}
		for _, choice := range e.Descriptor.Choices {
			if !e.Descriptor.Content[choice].Walk(fn) {
				return false
			}
		}
	}
	return true
}
