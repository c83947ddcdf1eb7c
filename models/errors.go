package models

import "fmt"

// Error codes used across the extraction engine.
const (
	ErrCodeFetchFailed  = "FETCH_FAILED"
	ErrCodeBrowserCrash = "BROWSER_CRASH"
	ErrCodeTimeout      = "SCRAPE_TIMEOUT"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// ExtractError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ExtractError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ExtractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// NewExtractError creates a new ExtractError.
func NewExtractError(code, message string, err error) *ExtractError {
	return &ExtractError{Code: code, Message: message, Err: err}
}
