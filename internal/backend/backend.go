// Package backend loads providers, option sets and reports from the
// extraction backend and submits extractions to it.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/options"
	"github.com/lumio-ai/benchdash/internal/schema"
)

// Client wraps the API client with typed loaders. Every call is a single
// attempt.
type Client struct {
	api    *api.Client
	logger *slog.Logger
}

// New creates a backend client. A nil logger uses slog.Default().
func New(c *api.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{api: c, logger: logger}
}

// API returns the underlying HTTP client.
func (c *Client) API() *api.Client { return c.api }

// Providers lists the extraction providers. Failures of any kind yield an
// empty list.
func (c *Client) Providers(ctx context.Context) []Provider {
	var resp envelope[providersData]
	if err := c.api.Get(ctx, "/api/providers", &resp); err != nil {
		c.logger.Debug("providers.load failed", "error", err)
		return []Provider{}
	}
	if !resp.Success || resp.Data == nil || resp.Data.Providers == nil {
		c.logger.Debug("providers.load empty", "success", resp.Success)
		return []Provider{}
	}
	return resp.Data.Providers
}

// Ping checks that the backend answers the providers endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.api.Get(ctx, "/api/providers", nil)
}

// Options loads the option set of a provider and seeds its form state. ok
// is false when nothing usable was returned; failures are never surfaced.
func (c *Client) Options(ctx context.Context, label string) (set options.Set, state options.State, ok bool) {
	var resp optionsEnvelope
	if err := c.api.Get(ctx, optionsPath(label), &resp); err != nil {
		c.logger.Debug("options.load failed", "provider", label, "error", err)
		return nil, options.State{}, false
	}
	if !resp.Success || len(resp.Options) == 0 || string(resp.Options) == "null" {
		c.logger.Debug("options.load empty", "provider", label, "success", resp.Success)
		return nil, options.State{}, false
	}

	set, err := options.ParseSet(resp.Options)
	if err != nil {
		c.logger.Debug("options.load malformed", "provider", label, "error", err)
		return nil, options.State{}, false
	}
	if set == nil {
		set = options.Set{}
	}

	findings, err := schema.Lint(resp.Options)
	if err != nil {
		c.logger.Warn("options.lint failed", "provider", label, "error", err)
	}
	for _, f := range findings {
		c.logger.Warn("options.lint", "provider", label, "finding", f)
	}

	return set, options.Init(set), true
}

// Extract submits body to the provider. With files attached the request is
// multipart: non-string values are JSON-encoded form fields and each file
// is a part named by its option key.
func (c *Client) Extract(ctx context.Context, label string, body map[string]any, files map[string]*options.FileRef) (*ExtractOutcome, error) {
	start := time.Now()
	path := extractPath(label)

	var resp extractEnvelope
	var err error
	if len(files) == 0 {
		err = c.api.Post(ctx, path, body, &resp)
	} else {
		fields, ferr := multipartFields(body)
		if ferr != nil {
			return nil, ferr
		}
		err = c.api.PostMultipart(ctx, path, fields, fileParts(files), &resp)
	}

	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		c.logger.Warn("extract.failed", "provider", label, "error", err, "elapsed_ms", elapsed)
		if errors.Is(err, api.ErrTransport) {
			return nil, fmt.Errorf("extract %s: %w", label, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	if !resp.Success {
		c.logger.Warn("extract.failed", "provider", label, "error", "success=false", "elapsed_ms", elapsed)
		return nil, ErrUnexpectedResponse
	}

	if resp.ReportID != "" {
		c.logger.Info("extract.ok", "provider", label, "outcome", "report", "report_id", resp.ReportID, "elapsed_ms", elapsed)
		return &ExtractOutcome{ReportID: resp.ReportID}, nil
	}

	if resp.Data == nil {
		c.logger.Warn("extract.failed", "provider", label, "error", "no report_id or data", "elapsed_ms", elapsed)
		return nil, ErrUnexpectedResponse
	}
	result := &ExtractionResult{Success: true, Metadata: resp.Metadata, Data: *resp.Data}
	c.logger.Info("extract.ok", "provider", label, "outcome", "inline", "elapsed_ms", elapsed)
	return &ExtractOutcome{Result: result}, nil
}

// Reports lists all persisted reports.
func (c *Client) Reports(ctx context.Context) ([]Report, error) {
	var resp envelope[reportsData]
	if err := c.api.Get(ctx, "/api/reports", &resp); err != nil {
		return nil, loadError(ErrReportsUnavailable, err)
	}
	if !resp.Success {
		return nil, ErrReportsUnavailable
	}
	if resp.Data == nil || resp.Data.Reports == nil {
		return []Report{}, nil
	}
	return resp.Data.Reports, nil
}

// Report loads one report. A successful answer without a report returns
// nil, nil.
func (c *Client) Report(ctx context.Context, id string) (*Report, error) {
	var resp envelope[reportData]
	if err := c.api.Get(ctx, "/api/reports/"+url.PathEscape(id), &resp); err != nil {
		return nil, loadError(ErrReportUnavailable, err)
	}
	if !resp.Success {
		return nil, ErrReportUnavailable
	}
	if resp.Data == nil {
		return nil, nil
	}
	return resp.Data.Report, nil
}

// loadError keeps transport failures distinct from bad answers.
func loadError(sentinel, err error) error {
	if errors.Is(err, api.ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func optionsPath(label string) string {
	return "/api/providers/" + url.PathEscape(label) + "/options"
}

func extractPath(label string) string {
	return "/api/providers/" + url.PathEscape(label) + "/extract"
}

func multipartFields(body map[string]any) (map[string]string, error) {
	fields := make(map[string]string, len(body))
	for k, v := range body {
		if s, ok := v.(string); ok {
			fields[k] = s
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", k, err)
		}
		fields[k] = string(b)
	}
	return fields, nil
}

func fileParts(files map[string]*options.FileRef) []api.FilePart {
	keys := make([]string, 0, len(files))
	for k, f := range files {
		if f != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]api.FilePart, 0, len(keys))
	for _, k := range keys {
		f := files[k]
		parts = append(parts, api.FilePart{Field: k, Filename: f.Name, Path: f.Path})
	}
	return parts
}
