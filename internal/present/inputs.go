package present

import (
	"encoding/json"
	"sort"

	"github.com/spf13/cast"
)

// InputRow is one recorded extraction input.
type InputRow struct {
	Key   string
	Value string
}

// InputValue shows strings and numbers as they are and anything else as
// JSON.
func InputValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return FormatNumber(cast.ToFloat64(t))
	case json.Number:
		return t.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// InputRows lists inputs in key order.
func InputRows(inputs map[string]any) []InputRow {
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]InputRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, InputRow{Key: k, Value: InputValue(inputs[k])})
	}
	return rows
}
