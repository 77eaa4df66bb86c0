// Package scheduler is the admission-control core of whisperd.
//
// The Router decides per job whether the hot path (resident model behind a
// weight-1 lock) or the cold path (isolated worker process behind a bounded
// slot pool) runs it, supervises execution, and normalizes the outcome into
// exactly one terminal Result per admitted job. A short voice command is
// never queued behind a long transcription: a busy lock reroutes to the
// cold path immediately.
package scheduler
