// Package session keeps server-side form sessions: one options controller
// per provider selection, its last outcome and its uploaded files.
package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/options"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidPDF is returned when an uploaded PDF cannot be read.
	ErrInvalidPDF = errors.New("invalid PDF")
)

// Session is one form: a provider selection with its controller.
type Session struct {
	ID         string
	Provider   string
	Controller *options.Controller

	dir string

	mu       sync.Mutex
	result   *backend.ExtractionResult
	errMsg   string
	lastSeen time.Time
}

// Result returns the last inline extraction result, if any.
func (s *Session) Result() *backend.ExtractionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Error returns the last extraction error message, if any.
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ClearOutcome drops the previous result and error before a new submission.
func (s *Session) ClearOutcome() {
	s.mu.Lock()
	s.result, s.errMsg = nil, ""
	s.mu.Unlock()
}

// SetResult records an inline result. It is dropped when the session was
// discarded in the meantime.
func (s *Session) SetResult(r *backend.ExtractionResult) {
	if s.Controller.Closed() {
		return
	}
	s.mu.Lock()
	s.result, s.errMsg = r, ""
	s.mu.Unlock()
}

// SetError records a failed submission. It is dropped when the session was
// discarded in the meantime.
func (s *Session) SetError(msg string) {
	if s.Controller.Closed() {
		return
	}
	s.mu.Lock()
	s.result, s.errMsg = nil, msg
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SaveUpload stores a file for option key, replacing any earlier file for
// the same key. PDFs are checked and their pages counted.
func (s *Session) SaveUpload(key, filename string, r io.Reader) (*options.FileRef, error) {
	if s.Controller.Closed() {
		return nil, ErrNotFound
	}
	dir := filepath.Join(s.dir, hex.EncodeToString([]byte(key)))
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to clear upload: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := cleanFilename(filename)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	ref := &options.FileRef{Name: name, Path: path, Size: size}
	if isPDF(f, name) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind upload: %w", err)
		}
		pages, err := api.PageCount(f, nil)
		if err != nil {
			f.Close()
			os.RemoveAll(dir)
			return nil, fmt.Errorf("%w: %s", ErrInvalidPDF, name)
		}
		ref.Pages = pages
	}
	return ref, nil
}

func isPDF(f *os.File, name string) bool {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return true
	}
	head := make([]byte, 512)
	n, _ := f.ReadAt(head, 0)
	return http.DetectContentType(head[:n]) == "application/pdf"
}

func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "upload"
	}
	return name
}
