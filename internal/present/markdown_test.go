package present

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []string
		notWant []string
	}{
		{
			name: "heading",
			src:  "# Hi",
			want: []string{"<h1", "Hi</h1>"},
		},
		{
			name: "table wrapped",
			src:  "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want: []string{`<div class="table-scroll"><table>`, "</table></div>", "<td>1</td>"},
		},
		{
			name:    "script stripped",
			src:     "hello <script>alert(1)</script>",
			want:    []string{"hello"},
			notWant: []string{"<script", "alert(1)"},
		},
		{
			name: "raw html kept",
			src:  "<sub>2</sub>",
			want: []string{"<sub>2</sub>"},
		},
		{
			name:    "event handler stripped",
			src:     `<a href="https://example.com" onclick="x()">link</a>`,
			want:    []string{`href="https://example.com"`},
			notWant: []string{"onclick"},
		},
		{
			name: "strikethrough",
			src:  "~~gone~~",
			want: []string{"<del>gone</del>"},
		},
		{
			name: "task list",
			src:  "- [x] done\n",
			want: []string{"<input", "checked"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Markdown(tt.src))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Markdown(%q) = %q, missing %q", tt.src, got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("Markdown(%q) = %q, should not contain %q", tt.src, got, w)
				}
			}
		})
	}
}
