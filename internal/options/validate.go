package options

import (
	"fmt"
	"sort"
	"strings"
)

// Problem is one invariant violation found in an option set.
type Problem struct {
	// Path is the dotted location of the option, e.g. "mode.fast.dpi".
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// Validate reports descriptor invariant violations in set and every nested
// tab. None of them stops rendering; they exist for linting.
func Validate(set Set) []Problem {
	var problems []Problem
	validateSet(set, nil, &problems)
	return problems
}

func validateSet(set Set, prefix []string, problems *[]Problem) {
	for _, e := range set {
		path := append(append([]string{}, prefix...), e.Key)
		add := func(format string, args ...any) {
			*problems = append(*problems, Problem{
				Path:    strings.Join(path, "."),
				Message: fmt.Sprintf(format, args...),
			})
		}

		if reserved(e.Key) {
			add("key collides with the reserved form field %q", e.Key)
		}

		d := e.Descriptor
		if d.RawType == "" {
			add("missing type, rendered as string")
		} else if !Known(d.RawType) {
			add("unknown type %q, rendered as string", d.RawType)
		}

		switch d.Type {
		case KindSelect:
			if len(d.Choices) == 0 {
				add("select has no choices")
			}
			if d.Default != nil && !d.HasChoice(Display(d.Default)) {
				add("default %q is not one of the choices", Display(d.Default))
			}
		case KindTab:
			if len(d.Choices) == 0 {
				add("tab has no choices")
			}
			names := make([]string, 0, len(d.Content))
			for name := range d.Content {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if !d.HasChoice(name) {
					add("content %q does not match any choice", name)
				}
			}
			for _, c := range d.Choices {
				nested, ok := d.Content[c]
				if !ok {
					add("tab %q has no content", c)
					continue
				}
				validateSet(nested, append(path, c), problems)
			}
		case KindBoolean:
			if d.Default != nil {
				if _, ok := d.Default.(bool); !ok {
					add("default %v is not a boolean", d.Default)
				}
			}
		case KindNumber:
			if d.Default != nil && !isNumeric(d.Default) {
				add("default %v is not numeric, seeded as 0", d.Default)
			}
		case KindString, KindLongString, KindFile:
		}
	}
}

// reserved reports whether key is one of the control fields a form post
// carries next to the option values.
func reserved(key string) bool {
	switch key {
	case FieldPresent, FieldTab, FieldAction:
		return true
	}
	return strings.HasPrefix(key, FieldClearPrefix)
}
