package scheduler

import (
	"context"
	"time"

	"github.com/skillsenselab/whisperd/errors"
	"github.com/skillsenselab/whisperd/resilience"
)

// runHot executes the job on the resident model while holding the lock
// token. The token release is unconditional: it happens in a defer
// regardless of success, inference failure, or panic.
func (r *Router) runHot(ctx context.Context, job *Job, start time.Time, token resilience.Token) Result {
	defer r.lock.Release(token)

	// An already-expired deadline is a timeout, not a caller cancellation.
	if err := ctx.Err(); err != nil {
		return r.finish(job, start, PathHot, nil, typed(err))
	}

	// A resident-model call cannot be interrupted mid-inference; it runs to
	// completion even if the caller goes away.
	transcript, err := r.model.Transcribe(context.WithoutCancel(ctx), job.AudioPath, job.Options)
	if err != nil {
		// No hot retry: it would contend for the same busy resource.
		return r.finish(job, start, PathHot, nil, errors.InferenceFailure(err))
	}

	return r.finish(job, start, PathHot, transcript, nil)
}
