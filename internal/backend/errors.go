package backend

import (
	"context"
	"errors"

	"github.com/lumio-ai/benchdash/internal/api"
)

// User-facing failures. Their text is shown verbatim.
var (
	ErrUnexpectedResponse = errors.New("Extraction failed: unexpected response")
	ErrReportsUnavailable = errors.New("Failed to load reports")
	ErrReportUnavailable  = errors.New("Failed to load report")
)

var userErrors = []error{ErrUnexpectedResponse, ErrReportsUnavailable, ErrReportUnavailable}

// UserMessage returns the short text shown to users for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Network error: request timed out"
	case errors.Is(err, api.ErrTransport):
		return "Network error"
	case err.Error() == "":
		return "Network error"
	default:
		return err.Error()
	}
}
