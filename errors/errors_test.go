package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorStatusAndRetryable(t *testing.T) {
	cases := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"lock timeout", LockTimeout(), ErrCodeLockTimeout, http.StatusServiceUnavailable, true},
		{"capacity", CapacityExceeded(2, 2), ErrCodeCapacityExceeded, http.StatusTooManyRequests, true},
		{"inference", InferenceFailure(nil), ErrCodeInferenceFailure, http.StatusInternalServerError, false},
		{"process timeout", ProcessTimeout("120s"), ErrCodeProcessTimeout, http.StatusGatewayTimeout, false},
		{"process crash", ProcessCrash(1, "oom", nil), ErrCodeProcessCrash, http.StatusInternalServerError, false},
		{"invalid input", InvalidInput("file", "missing"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"cancelled", Cancelled(nil), ErrCodeCancelled, 499, false},
		{"model not loaded", ModelNotLoaded(), ErrCodeModelNotLoaded, http.StatusServiceUnavailable, true},
		{"internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("code = %s, want %s", tc.err.Code, tc.code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("status = %d, want %d", tc.err.HTTPStatus, tc.status)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("retryable = %v, want %v", tc.err.Retryable, tc.retryable)
			}
		})
	}
}

func TestCodeExtraction(t *testing.T) {
	if got := Code(ModelNotLoaded()); got != ErrCodeModelNotLoaded {
		t.Errorf("Code = %s, want %s", got, ErrCodeModelNotLoaded)
	}

	wrapped := fmt.Errorf("submit: %w", CapacityExceeded(2, 2))
	if got := Code(wrapped); got != ErrCodeCapacityExceeded {
		t.Errorf("Code through wrapping = %s, want %s", got, ErrCodeCapacityExceeded)
	}

	if got := Code(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("plain error Code = %s, want %s", got, ErrCodeInternal)
	}
	if got := HTTPStatus(stderrors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("plain error status = %d", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("segfault")
	err := ProcessCrash(139, "", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if err.Details["exit_code"] != 139 {
		t.Errorf("expected exit code detail, got %v", err.Details)
	}
}

func TestWithDetailAndCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New(ErrCodeInternal, "scratch write failed", http.StatusInternalServerError).
		WithCause(cause).
		WithDetail("path", "/tmp/job.wav")

	if err.Details["path"] != "/tmp/job.wav" {
		t.Errorf("missing detail: %v", err.Details)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be wrapped")
	}
}

func TestIsRetryableCode(t *testing.T) {
	for _, code := range []ErrorCode{ErrCodeLockTimeout, ErrCodeCapacityExceeded, ErrCodeModelNotLoaded} {
		if !IsRetryableCode(code) {
			t.Errorf("%s should be retryable", code)
		}
	}
	for _, code := range []ErrorCode{ErrCodeInferenceFailure, ErrCodeProcessCrash, ErrCodeInvalidInput} {
		if IsRetryableCode(code) {
			t.Errorf("%s should not be retryable", code)
		}
	}
}
