// Package server exposes the whisperd HTTP surface over Gin: the
// OpenAI-style transcription endpoint plus health and version probes.
//
// The server only normalizes requests and renders results; all routing and
// resource decisions live in the scheduler package.
package server
