package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Contention errors (retryable). These are handled by routing and only
// surface when every execution path is exhausted.
const (
	// ErrCodeLockTimeout indicates the resident-model lock could not be
	// acquired before the caller's deadline.
	ErrCodeLockTimeout ErrorCode = "LOCK_TIMEOUT"
	// ErrCodeCapacityExceeded indicates the cold pool stayed saturated past
	// the caller's deadline.
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
)

// Terminal transcription failures (never retried automatically).
const (
	// ErrCodeInferenceFailure indicates the resident model reported a decode
	// or inference error.
	ErrCodeInferenceFailure ErrorCode = "INFERENCE_FAILURE"
	// ErrCodeProcessTimeout indicates a cold subprocess exceeded its
	// wall-clock allotment and was killed.
	ErrCodeProcessTimeout ErrorCode = "PROCESS_TIMEOUT"
	// ErrCodeProcessCrash indicates a cold subprocess exited nonzero or
	// produced malformed output.
	ErrCodeProcessCrash ErrorCode = "PROCESS_CRASH"
)

// Request/lifecycle errors.
const (
	// ErrCodeInvalidInput indicates the request parameters are invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeCancelled indicates the caller cancelled before a terminal
	// result was produced.
	ErrCodeCancelled ErrorCode = "CANCELLED"
	// ErrCodeModelNotLoaded indicates the resident model failed to load and
	// the hot path is unavailable.
	ErrCodeModelNotLoaded ErrorCode = "MODEL_NOT_LOADED"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeLockTimeout:      true,
	ErrCodeCapacityExceeded: true,
	ErrCodeModelNotLoaded:   true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
