package options

import (
	"strings"

	"github.com/spf13/cast"
)

// Payload builds the extraction request body from a snapshot. Every key is
// carried over, including the selected name of each tab. Numbers typed as
// text are parsed here; text that does not parse is sent as typed. File
// options are left out and travel separately (see Files).
func Payload(set Set, state State) map[string]any {
	kinds := kindIndex(set)
	out := make(map[string]any, state.Len())
	for k, v := range state.Values() {
		switch kinds[k] {
		case KindFile:
			continue
		case KindNumber:
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				if f, err := cast.ToFloat64E(strings.TrimSpace(s)); err == nil {
					out[k] = f
					continue
				}
			}
			out[k] = v
		case KindBoolean:
			out[k] = Truthy(v)
		default:
			if _, isFile := v.(*FileRef); isFile {
				continue
			}
			out[k] = v
		}
	}
	return out
}

// Files returns the file references held by the snapshot, keyed by option.
func Files(set Set, state State) map[string]*FileRef {
	out := map[string]*FileRef{}
	for k, kind := range kindIndex(set) {
		if kind != KindFile {
			continue
		}
		if f := state.File(k); f != nil {
			out[k] = f
		}
	}
	return out
}

// kindIndex maps every key in the set, under any tab, to its kind. The
// first occurrence in depth-first order wins.
func kindIndex(set Set) map[string]Kind {
	kinds := map[string]Kind{}
	set.Walk(func(key string, d Descriptor) bool {
		if _, ok := kinds[key]; !ok {
			kinds[key] = d.Type
		}
		return true
	})
	return kinds
}
