// Package resilience provides the two bounded concurrency primitives the
// scheduler shares between requests: ModelLock, the weight-1 exclusive token
// guarding the resident model, and SlotPool, the counting semaphore bounding
// concurrent cold worker processes.
//
// These are the only shared mutable state in the scheduling core. Everything
// else (jobs, results, subprocess handles) is owned by the request task that
// created it.
package resilience
