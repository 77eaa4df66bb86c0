// Package errors provides the unified error type and error-code taxonomy
// for the whisperd scheduling core.
//
// Every job failure is expressed as an *AppError carrying a machine-readable
// code, a recommended HTTP status, and a retryable flag. Contention codes
// (LOCK_TIMEOUT, CAPACITY_EXCEEDED) are retryable; terminal transcription
// failures (INFERENCE_FAILURE, PROCESS_TIMEOUT, PROCESS_CRASH) are not.
package errors
