package model

import (
	"errors"
	"fmt"
)

// Error codes surfaced to API callers.
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeFetch      = "FETCH_ERROR"
	ErrCodeParse      = "PARSE_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// AnalysisError is a fatal analysis failure with enough context to pick an
// HTTP status and a user facing message.
type AnalysisError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	URL        string `json:"url,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Cause      error  `json:"-"`
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

func NewValidationError(message string) *AnalysisError {
	return &AnalysisError{Code: ErrCodeValidation, Message: message}
}

func NewFetchError(url string, cause error) *AnalysisError {
	return &AnalysisError{Code: ErrCodeFetch, Message: "failed to fetch page", URL: url, Cause: cause}
}

// NewHTTPStatusError reports a fetch that reached the server but got a non-2xx reply.
func NewHTTPStatusError(url string, statusCode int) *AnalysisError {
	return &AnalysisError{
		Code:       ErrCodeFetch,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		URL:        url,
		StatusCode: statusCode,
	}
}

func NewParseError(url string, cause error) *AnalysisError {
	return &AnalysisError{Code: ErrCodeParse, Message: "failed to parse HTML", URL: url, Cause: cause}
}

// AsAnalysisError unwraps err into an *AnalysisError if it carries one.
func AsAnalysisError(err error) (*AnalysisError, bool) {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// ErrorCode returns the code of an AnalysisError, or ErrCodeInternal for any other error.
func ErrorCode(err error) string {
	if ae, ok := AsAnalysisError(err); ok {
		return ae.Code
	}
	return ErrCodeInternal
}
