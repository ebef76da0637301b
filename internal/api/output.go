package api

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the output format for CLI commands.
type OutputFormat string

const (
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
)

var outputFormat atomic.Value

func init() {
	outputFormat.Store(OutputFormatYAML)
}

// SetOutputFormat sets the format used by Output. Unknown values fall back
// to YAML.
func SetOutputFormat(format string) {
	switch OutputFormat(format) {
	case OutputFormatJSON:
		outputFormat.Store(OutputFormatJSON)
	default:
		outputFormat.Store(OutputFormatYAML)
	}
}

// GetOutputFormat returns the current output format.
func GetOutputFormat() OutputFormat {
	return outputFormat.Load().(OutputFormat)
}

// Output writes data to w in the configured format.
func Output(w io.Writer, data any) error {
	return OutputTo(w, GetOutputFormat(), data)
}

// OutputTo writes data to the given writer in the specified format.
func OutputTo(w io.Writer, format OutputFormat, data any) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteFile writes raw bytes to path, or to w when path is "-".
func WriteFile(w io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
