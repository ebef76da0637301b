package present

import (
	"testing"
	"time"

	"github.com/lumio-ai/benchdash/internal/backend"
)

func ptr(f float64) *float64 { return &f }

func TestScoreBars(t *testing.T) {
	bars := ScoreBars(&backend.Score{Overall: ptr(0.9), Content: ptr(0.5)})
	want := []struct {
		name    string
		percent string
	}{
		{"Overall", "90.0%"},
		{"Structural", "0.0%"},
		{"Content", "50.0%"},
		{"Semantic", "0.0%"},
	}
	if len(bars) != len(want) {
		t.Fatalf("len(bars) = %d", len(bars))
	}
	for i, w := range want {
		if bars[i].Name != w.name || bars[i].Percent != w.percent {
			t.Errorf("bars[%d] = %+v, want %s %s", i, bars[i], w.name, w.percent)
		}
	}

	if got := ScoreBars(nil); len(got) != 0 {
		t.Errorf("ScoreBars(nil) = %v, want none", got)
	}
}

func TestScoreChart(t *testing.T) {
	c := ScoreChart([]Bar{{Name: "Full", Value: 100}, {Name: "Empty", Value: 0}, {Name: "Over", Value: 150}})

	if len(c.Grid) != 5 || c.Grid[0].Label != "0%" || c.Grid[4].Label != "100%" {
		t.Errorf("Grid = %+v", c.Grid)
	}
	if c.Grid[4].Y != c.Top {
		t.Errorf("100%% line at %v, want %v", c.Grid[4].Y, c.Top)
	}
	full, empty, over := c.Bars[0], c.Bars[1], c.Bars[2]
	if full.H != c.PlotHeight || full.Y != c.Top {
		t.Errorf("full bar = %+v", full)
	}
	if empty.H != 0 || empty.Y != c.Top+c.PlotHeight {
		t.Errorf("empty bar = %+v", empty)
	}
	if over.H != c.PlotHeight {
		t.Errorf("over bar not clamped: %+v", over)
	}
	if !(full.X < empty.X && empty.X < over.X) {
		t.Error("bars out of order")
	}
	if over.X+over.W > c.Left+c.PlotWidth {
		t.Error("last bar overflows the plot")
	}
}

func TestDetailed(t *testing.T) {
	d := Detailed(&backend.DetailedMetrics{
		WordCountExpected:   ptr(120),
		WordCountExtracted:  ptr(118),
		WordCountRatio:      ptr(0.9833),
		CharacterCountRatio: ptr(1),
	})
	if d.Words != "118/120" || d.Chars != "0/0" || d.WordRatio != "98.3%" || d.CharRatio != "100.0%" {
		t.Errorf("Detailed() = %+v", d)
	}
	if Detailed(nil) != nil {
		t.Error("Detailed(nil) should be nil")
	}
}

func TestMetrics(t *testing.T) {
	now := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	v := Metrics(&backend.Metadata{ExtractionTime: 125.0}, now)
	if v.Duration != "2 min 5 sec" || v.Started != "-" || v.HasScores() {
		t.Errorf("Metrics() = %+v", v)
	}

	v = Metrics(&backend.Metadata{Score: &backend.Score{Overall: ptr(1)}}, now)
	if !v.HasScores() || len(v.Chart.Bars) != 4 || v.Detailed != nil {
		t.Errorf("Metrics() = %+v", v)
	}

	if v := Metrics(nil, now); v.Duration != "-" || v.HasScores() {
		t.Errorf("Metrics(nil) = %+v", v)
	}
}
