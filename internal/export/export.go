// Package export builds spreadsheet exports of extraction reports.
package export

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/lumio-ai/benchdash/internal/backend"
)

// SheetName is the worksheet holding the report rows.
const SheetName = "Reports"

// Headers are the column titles of the report sheet, in order.
var Headers = []string{
	"ID",
	"Created At",
	"Provider",
	"Duration (s)",
	"Overall (%)",
	"Structural (%)",
	"Content (%)",
	"Semantic (%)",
	"Words Extracted",
	"Words Expected",
	"Chars Extracted",
	"Chars Expected",
}

// Exporter produces XLSX workbooks.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an exporter. A nil logger uses slog.Default().
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// ReportsXLSX returns a workbook with one row per report. Missing metrics
// are left blank.
func (e *Exporter) ReportsXLSX(reports []backend.Report) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for i, r := range reports {
		row := i + 2
		write := func(col int, v any) {
			if v == nil || v == "" {
				return
			}
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}

		write(1, r.ID)
		write(2, r.CreatedAt)
		write(3, r.Provider())

		m := r.Metadata
		if m == nil {
			continue
		}
		if d, err := cast.ToFloat64E(m.ExtractionTime); err == nil && m.ExtractionTime != nil {
			write(4, d)
		}
		if s := m.Score; s != nil {
			write(5, percent(s.Overall))
			write(6, percent(s.Structural))
			write(7, percent(s.Content))
			write(8, percent(s.Semantic))
			if dm := s.DetailedMetrics; dm != nil {
				write(9, value(dm.WordCountExtracted))
				write(10, value(dm.WordCountExpected))
				write(11, value(dm.CharacterCountExtracted))
				write(12, value(dm.CharacterCountExpected))
			}
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, style)
	}
	_ = f.SetColWidth(SheetName, "A", "A", 38) // id
	_ = f.SetColWidth(SheetName, "B", "B", 26) // created
	_ = f.SetColWidth(SheetName, "C", "C", 18) // provider
	_ = f.SetColWidth(SheetName, "D", "L", 14) // metrics

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.Info("export.xlsx.ok",
		"rows", len(reports),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// percent scales a fraction to a percentage with one decimal.
func percent(p *float64) any {
	if p == nil {
		return nil
	}
	return math.Round(*p*1000) / 10
}

func value(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
