// Package coldworker spawns one isolated whisper CLI process per job.
//
// Each invocation gets its own Handle owning the temp audio copy and the
// JSON result file the CLI writes. Every terminal transition (completed,
// timed out, crashed, cancelled) runs the same teardown: the process group
// is reaped by the process package and the handle's files are removed in a
// defer, never best-effort.
package coldworker
