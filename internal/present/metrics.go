package present

import (
	"time"

	"github.com/lumio-ai/benchdash/internal/backend"
)

// Bar is one score component scaled to 0-100.
type Bar struct {
	Name    string
	Value   float64
	Percent string
	// Series is the chart color slot, 1-4.
	Series int
}

// ScoreBars returns the Overall, Structural, Content and Semantic bars of a
// score, missing components as 0. A nil score has no bars.
func ScoreBars(s *backend.Score) []Bar {
	if s == nil {
		return nil
	}
	parts := []struct {
		name string
		v    *float64
	}{
		{"Overall", s.Overall},
		{"Structural", s.Structural},
		{"Content", s.Content},
		{"Semantic", s.Semantic},
	}
	bars := make([]Bar, 0, len(parts))
	for i, p := range parts {
		v := 0.0
		if p.v != nil {
			v = *p.v * 100
		}
		bars = append(bars, Bar{Name: p.name, Value: v, Percent: FormatPercent(v), Series: i + 1})
	}
	return bars
}

// Chart is the SVG layout of a 0-100% bar chart.
type Chart struct {
	Width, Height float64
	Left, Top     float64
	PlotWidth     float64
	PlotHeight    float64
	Grid          []GridLine
	Bars          []ChartBar
}

// GridLine is a horizontal rule with its axis label.
type GridLine struct {
	Y     float64
	Label string
}

// ChartBar is one positioned bar.
type ChartBar struct {
	Bar
	X, Y, W, H float64
	// LabelX is the center of the bar for its axis label.
	LabelX float64
}

const (
	chartWidth  = 480
	chartHeight = 256
	chartTop    = 8
	chartRight  = 16
	chartLeft   = 44
	chartBottom = 28
)

// ScoreChart lays out bars on a fixed canvas with grid lines every 25%.
// Values outside 0-100 are clamped.
func ScoreChart(bars []Bar) Chart {
	c := Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Left:       chartLeft,
		Top:        chartTop,
		PlotWidth:  chartWidth - chartLeft - chartRight,
		PlotHeight: chartHeight - chartTop - chartBottom,
	}
	for pct := 0; pct <= 100; pct += 25 {
		c.Grid = append(c.Grid, GridLine{
			Y:     c.Top + c.PlotHeight*(1-float64(pct)/100),
			Label: FormatNumber(float64(pct)) + "%",
		})
	}
	if len(bars) == 0 {
		return c
	}

	band := c.PlotWidth / float64(len(bars))
	for i, b := range bars {
		v := b.Value
		if v < 0 {
			v = 0
		} else if v > 100 {
			v = 100
		}
		h := c.PlotHeight * v / 100
		x := c.Left + float64(i)*band + band*0.2
		c.Bars = append(c.Bars, ChartBar{
			Bar:    b,
			X:      x,
			Y:      c.Top + c.PlotHeight - h,
			W:      band * 0.6,
			H:      h,
			LabelX: x + band*0.3,
		})
	}
	return c
}

// DetailedView is the detailed-metrics box.
type DetailedView struct {
	Words     string
	Chars     string
	WordRatio string
	CharRatio string
}

// Detailed formats detailed metrics, missing counts as 0.
func Detailed(d *backend.DetailedMetrics) *DetailedView {
	if d == nil {
		return nil
	}
	return &DetailedView{
		Words:     FormatNumber(or0(d.WordCountExtracted)) + "/" + FormatNumber(or0(d.WordCountExpected)),
		Chars:     FormatNumber(or0(d.CharacterCountExtracted)) + "/" + FormatNumber(or0(d.CharacterCountExpected)),
		WordRatio: FormatPercent(or0(d.WordCountRatio) * 100),
		CharRatio: FormatPercent(or0(d.CharacterCountRatio) * 100),
	}
}

// MetricsView is everything the metrics panel shows.
type MetricsView struct {
	Started   string
	Completed string
	Duration  string
	Bars      []Bar
	Chart     Chart
	Detailed  *DetailedView
}

// HasScores reports whether any score bars are shown.
func (m MetricsView) HasScores() bool { return len(m.Bars) > 0 }

// Metrics builds the metrics panel of a result.
func Metrics(m *backend.Metadata, now time.Time) MetricsView {
	if m == nil {
		return MetricsView{Started: Missing, Completed: Missing, Duration: Missing}
	}
	v := MetricsView{
		Started:   FormatTime(m.StartedAt, now),
		Completed: FormatTime(m.CompletedAt, now),
		Duration:  FormatDuration(m.ExtractionTime),
		Bars:      ScoreBars(m.Score),
	}
	if len(v.Bars) > 0 {
		v.Chart = ScoreChart(v.Bars)
		v.Detailed = Detailed(m.Score.DetailedMetrics)
	}
	return v
}

func or0(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
