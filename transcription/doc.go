// Package transcription defines the shared types and backend interfaces for
// speech-to-text execution.
//
// Two backends exist: Model is the in-process resident model serving the hot
// path, and Invoker runs an isolated external worker process serving the
// cold path. The scheduler package decides per job which backend runs.
package transcription
