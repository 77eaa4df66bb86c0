package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// Code extracts the ErrorCode from any error. Non-AppError values map to
// ErrCodeInternal.
func Code(err error) ErrorCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrCodeInternal
}

// HTTPStatus extracts the recommended HTTP status from any error.
func HTTPStatus(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.HTTPStatus
	}
	return http.StatusInternalServerError
}

// --- Constructors, one per taxonomy code ---

// LockTimeout reports that the resident-model lock stayed busy past the deadline.
func LockTimeout() *AppError {
	return &AppError{
		Code: ErrCodeLockTimeout, Message: "The resident model stayed busy past the request deadline.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
	}
}

// CapacityExceeded reports a saturated cold pool.
func CapacityExceeded(inUse, capacity int) *AppError {
	return &AppError{
		Code: ErrCodeCapacityExceeded, Message: "All cold transcription slots are busy. Please try again.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
		Details: map[string]any{"slots_in_use": inUse, "capacity": capacity},
	}
}

// InferenceFailure reports a model decode or inference error on the hot path.
func InferenceFailure(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInferenceFailure, Message: "The resident model failed to transcribe the audio.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// ProcessTimeout reports a cold subprocess killed after exceeding its allotment.
func ProcessTimeout(elapsed string) *AppError {
	return &AppError{
		Code: ErrCodeProcessTimeout, Message: "Transcription did not finish within the allotted time.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: false,
		Details: map[string]any{"elapsed": elapsed},
	}
}

// ProcessCrash reports a cold subprocess that exited nonzero or produced
// malformed output.
func ProcessCrash(exitCode int, stderr string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeProcessCrash, Message: "The transcription worker process failed.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
		Details: map[string]any{"exit_code": exitCode, "stderr": stderr},
	}
}

// InvalidInput reports invalid request parameters.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Cancelled reports a caller cancellation observed before a terminal result.
func Cancelled(cause error) *AppError {
	return &AppError{
		Code: ErrCodeCancelled, Message: "The request was cancelled by the caller.",
		HTTPStatus: 499, Retryable: false, Cause: cause,
	}
}

// ModelNotLoaded reports that the resident model is unavailable.
func ModelNotLoaded() *AppError {
	return &AppError{
		Code: ErrCodeModelNotLoaded, Message: "Model not loaded.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
	}
}

// Internal wraps an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
