package backend

import (
	"encoding/json"

	"github.com/lumio-ai/benchdash/internal/options"
)

// Provider is one extraction provider. Label is the value sent back to the
// backend; Name is what users see.
type Provider struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

// ResultData carries the extracted document.
type ResultData struct {
	Markdown string `json:"markdown" yaml:"markdown"`
}

// ExtractionResult is an extraction outcome rendered inline or from a report.
type ExtractionResult struct {
	Success  bool       `json:"success" yaml:"success"`
	Metadata *Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Data     ResultData `json:"data" yaml:"data"`
}

// Markdown returns the extracted markdown, empty for a nil result.
func (r *ExtractionResult) Markdown() string {
	if r == nil {
		return ""
	}
	return r.Data.Markdown
}

// Metadata describes when and how well an extraction ran. Timestamps are
// either epoch numbers or date strings; keys the dashboard does not know
// are kept in Extra.
type Metadata struct {
	StartedAt      any            `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	CompletedAt    any            `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	ExtractionTime any            `json:"extraction_time,omitempty" yaml:"extraction_time,omitempty"`
	Score          *Score         `json:"score,omitempty" yaml:"score,omitempty"`
	Extra          map[string]any `json:"-" yaml:"extra,omitempty"`
}

var metadataKeys = map[string]bool{
	"started_at":      true,
	"completed_at":    true,
	"extraction_time": true,
	"score":           true,
}

// UnmarshalJSON decodes the known fields and collects the rest into Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	type plain Metadata
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if metadataKeys[k] {
			continue
		}
		if known.Extra == nil {
			known.Extra = map[string]any{}
		}
		known.Extra[k] = v
	}
	*m = Metadata(known)
	return nil
}

// MarshalJSON emits the known fields with Extra merged back in.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+4)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.StartedAt != nil {
		out["started_at"] = m.StartedAt
	}
	if m.CompletedAt != nil {
		out["completed_at"] = m.CompletedAt
	}
	if m.ExtractionTime != nil {
		out["extraction_time"] = m.ExtractionTime
	}
	if m.Score != nil {
		out["score"] = m.Score
	}
	return json.Marshal(out)
}

// Score holds quality fractions in [0, 1].
type Score struct {
	Overall         *float64         `json:"overall_score,omitempty" yaml:"overall_score,omitempty"`
	Structural      *float64         `json:"structural_score,omitempty" yaml:"structural_score,omitempty"`
	Content         *float64         `json:"content_score,omitempty" yaml:"content_score,omitempty"`
	Semantic        *float64         `json:"semantic_score,omitempty" yaml:"semantic_score,omitempty"`
	DetailedMetrics *DetailedMetrics `json:"detailed_metrics,omitempty" yaml:"detailed_metrics,omitempty"`
}

// DetailedMetrics compares extracted against expected counts.
type DetailedMetrics struct {
	WordCountExpected       *float64 `json:"word_count_expected,omitempty" yaml:"word_count_expected,omitempty"`
	WordCountExtracted      *float64 `json:"word_count_extracted,omitempty" yaml:"word_count_extracted,omitempty"`
	CharacterCountExpected  *float64 `json:"character_count_expected,omitempty" yaml:"character_count_expected,omitempty"`
	CharacterCountExtracted *float64 `json:"character_count_extracted,omitempty" yaml:"character_count_extracted,omitempty"`
	WordCountRatio          *float64 `json:"word_count_ratio,omitempty" yaml:"word_count_ratio,omitempty"`
	CharacterCountRatio     *float64 `json:"character_count_ratio,omitempty" yaml:"character_count_ratio,omitempty"`
}

// Report is a persisted extraction.
type Report struct {
	ID        string         `json:"id" yaml:"id"`
	CreatedAt string         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Inputs    map[string]any `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Metadata  *Metadata      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Markdown  string         `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// Result views the report as an extraction result.
func (r *Report) Result() *ExtractionResult {
	return &ExtractionResult{
		Success:  true,
		Metadata: r.Metadata,
		Data:     ResultData{Markdown: r.Markdown},
	}
}

// Provider returns the provider recorded in the report inputs, if any.
func (r *Report) Provider() string {
	if s, ok := r.Inputs["provider"].(string); ok {
		return s
	}
	return ""
}

// ExtractOutcome is what a successful extraction returned: a persisted
// report to navigate to, or a result to render in place.
type ExtractOutcome struct {
	ReportID string            `json:"report_id,omitempty" yaml:"report_id,omitempty"`
	Result   *ExtractionResult `json:"result,omitempty" yaml:"result,omitempty"`
}

// OptionsResponse is a loaded option set with its seeded state.
type OptionsResponse struct {
	Options options.Set   `json:"options" yaml:"options"`
	State   options.State `json:"state" yaml:"state"`
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data"`
}

type providersData struct {
	Providers []Provider `json:"providers"`
}

type reportsData struct {
	Reports []Report `json:"reports"`
}

type reportData struct {
	Report *Report `json:"report"`
}

type optionsEnvelope struct {
	Success bool            `json:"success"`
	Options json.RawMessage `json:"options"`
}

type extractEnvelope struct {
	Success  bool        `json:"success"`
	ReportID string      `json:"report_id"`
	Metadata *Metadata   `json:"metadata"`
	Data     *ResultData `json:"data"`
}
