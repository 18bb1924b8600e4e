package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeInvalidReference      = "INVALID_REFERENCE"
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeForbidden             = "FORBIDDEN"
	CodeSourceUnavailable     = "SOURCE_UNAVAILABLE"
	CodeTransientSource       = "TRANSIENT_SOURCE_ERROR"
	CodeClassifierUnavailable = "CLASSIFIER_UNAVAILABLE"
	CodeBatchMismatch         = "BATCH_MISMATCH"
	CodeCache                 = "CACHE_ERROR"
	CodeInternal              = "INTERNAL_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func New(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

// NewInvalidReference reports a reference that is not a recognizable video URL.
func NewInvalidReference(reference string) *AppError {
	return New("invalid video reference", CodeInvalidReference, 400, map[string]any{
		"reference": reference,
	})
}

func NewValidation(message, field string, value any) *AppError {
	return New(message, CodeValidation, 400, map[string]any{
		"field": field,
		"value": value,
	})
}

func NewNotFound(videoID string) *AppError {
	return New("video not found", CodeNotFound, 404, map[string]any{
		"video_id": videoID,
	})
}

func NewForbidden(videoID string) *AppError {
	return New("video is private or restricted", CodeForbidden, 403, map[string]any{
		"video_id": videoID,
	})
}

func NewSourceUnavailable(message string) *AppError {
	return New(message, CodeSourceUnavailable, 503, nil)
}

// NewTransientSource carries the source's raw reason string for diagnostics.
func NewTransientSource(reason, videoID string, cause error) *AppError {
	e := New("comment source error: "+reason, CodeTransientSource, 502, map[string]any{
		"reason":   reason,
		"video_id": videoID,
	})
	e.Cause = cause
	return e
}

func NewClassifierUnavailable(model string) *AppError {
	return New("classifier not loaded", CodeClassifierUnavailable, 503, map[string]any{
		"model": model,
	})
}

// NewBatchMismatch signals a pipeline defect, never a retryable condition.
func NewBatchMismatch(comments, predictions int) *AppError {
	return New("comment/prediction length mismatch", CodeBatchMismatch, 500, map[string]any{
		"comments":    comments,
		"predictions": predictions,
	})
}

func NewCacheError(message, operation, key string, cause error) *AppError {
	e := New(message, CodeCache, 500, map[string]any{
		"operation": operation,
		"key":       key,
	})
	e.Cause = cause
	return e
}

func NewInternal(operation string, cause error) *AppError {
	e := New("internal error during "+operation, CodeInternal, 500, map[string]any{
		"operation": operation,
	})
	e.Cause = cause
	return e
}

// CodeOf extracts the error code from err's chain, or CodeInternal if err is
// not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// StatusOf extracts the HTTP status from err's chain, or 500.
func StatusOf(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 500
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
