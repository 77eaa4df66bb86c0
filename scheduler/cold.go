package scheduler

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/skillsenselab/whisperd/errors"
	"github.com/skillsenselab/whisperd/resilience"
)

// runCold admits the job to the slot pool, then hands it to the launcher.
// The slot wait is bounded by the job's deadline; a pool saturated past it
// rejects the job without spawning anything.
func (r *Router) runCold(ctx context.Context, job *Job, start time.Time) Result {
	if r.invoker == nil {
		return r.finish(job, start, PathNone, nil,
			errors.Internal(stderrors.New("no cold backend configured")))
	}

	slot, err := r.pool.AcquireSlot(ctx)
	if err != nil {
		switch {
		case stderrors.Is(err, resilience.ErrPoolTimeout), stderrors.Is(err, context.DeadlineExceeded):
			return r.finish(job, start, PathNone, nil,
				errors.CapacityExceeded(r.pool.InUse(), r.pool.Capacity()))
		case stderrors.Is(err, context.Canceled):
			return r.finish(job, start, PathNone, nil, errors.Cancelled(err))
		default:
			return r.finish(job, start, PathNone, nil, errors.Internal(err))
		}
	}
	defer r.pool.Release(slot)

	// Jobs without their own deadline still get a wall-clock bound.
	jobCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, r.config.JobTimeout)
		defer cancel()
	}

	transcript, err := r.invoker.Invoke(jobCtx, job.AudioPath, job.Options)
	if err != nil {
		return r.finish(job, start, PathCold, nil, typed(err))
	}

	return r.finish(job, start, PathCold, transcript, nil)
}
