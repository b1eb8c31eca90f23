package services

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for document extensions other than the
// supported ones. User-correctable.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError wraps a parse failure for a corrupt or unreadable payload.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the AI response contained no parseable JSON.
// Raw carries the full response for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed AI response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IncompleteResponseError means the AI response parsed but is missing a
// required key.
type IncompleteResponseError struct {
	Key string
}

func (e *IncompleteResponseError) Error() string {
	return fmt.Sprintf("AI response is missing required key: %s", e.Key)
}

// ConfigurationError marks a missing credential or model resource. Fatal,
// never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// truncateForLog shortens text for log lines so a failing input can be
// diagnosed without dumping whole documents.
func truncateForLog(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
