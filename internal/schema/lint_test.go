package schema

import (
	"strings"
	"testing"
)

func TestLint_Clean(t *testing.T) {
	doc := `{
		"ocr":  {"type": "boolean", "default": false},
		"mode": {"type": "tab", "choices": ["A"], "content": {"A": {"dpi": {"type": "number", "default": 300}}}}
	}`
	findings, err := Lint([]byte(doc))
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("Lint() = %v, want none", findings)
	}
}

func TestLint_Findings(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"choices not a list", `{"mode": {"type": "select", "choices": "fast"}}`, "schema /mode/choices"},
		{"nested content not an object", `{"t": {"type": "tab", "choices": ["A"], "content": {"A": 3}}}`, "schema /t/content/A"},
		{"empty select", `{"mode": {"type": "select", "choices": []}}`, "mode: select has no choices"},
		{"bad nested default", `{"t": {"type": "tab", "choices": ["A"], "content": {"A": {"n": {"type": "number", "default": "x"}}}}}`, "t.A.n: default x is not numeric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, err := Lint([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Lint() error = %v", err)
			}
			found := false
			for _, f := range findings {
				if strings.Contains(f, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("Lint() = %v, want a finding containing %q", findings, tt.want)
			}
		})
	}
}

func TestLint_NotAnOptionSet(t *testing.T) {
	for _, doc := range []string{`{"a":`, `[1]`} {
		if _, err := Lint([]byte(doc)); err == nil {
			t.Errorf("Lint(%s) expected error", doc)
		}
	}
}

func TestRaw(t *testing.T) {
	raw, err := Raw()
	if err != nil {
		t.Fatalf("Raw() error = %v", err)
	}
	if !strings.Contains(string(raw), "$defs") {
		t.Error("schema missing $defs")
	}
}
