package pipeline

import "fmt"

// Code tags the stage failure that terminated a run.
type Code string

const (
	CodeUnsupportedFormat   Code = "unsupported_format"
	CodeUploadError         Code = "upload_error"
	CodeExtractionFailed    Code = "extraction_failed"
	CodeInvalidInput        Code = "invalid_input"
	CodeNoContent           Code = "no_content"
	CodeSummarizationFailed Code = "summarization_failed"
)

// RunError is the single terminal error of a failed run. Message is the
// human-readable cause shown to the user; Err keeps the underlying detail
// for logs only.
type RunError struct {
	Code    Code
	Message string
	Err     error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(code Code, message string, err error) *RunError {
	return &RunError{Code: code, Message: message, Err: err}
}
