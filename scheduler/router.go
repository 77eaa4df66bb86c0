package scheduler

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/skillsenselab/whisperd/errors"
	"github.com/skillsenselab/whisperd/logger"
	"github.com/skillsenselab/whisperd/resilience"
	"github.com/skillsenselab/whisperd/transcription"
)

// Config configures the Router.
type Config struct {
	// MaxColdWorkers bounds concurrent cold worker processes.
	MaxColdWorkers int `yaml:"max_cold_workers" mapstructure:"max_cold_workers"`
	// JobTimeout is the wall-clock allotment for a job that arrives without
	// its own deadline.
	JobTimeout time.Duration `yaml:"job_timeout" mapstructure:"job_timeout"`
}

// ApplyDefaults fills zero config fields.
func (c *Config) ApplyDefaults() {
	if c.MaxColdWorkers <= 0 {
		c.MaxColdWorkers = 2
	}
	if c.JobTimeout == 0 {
		c.JobTimeout = 120 * time.Second
	}
}

// Hooks receives scheduling events for metrics. All fields are optional.
type Hooks struct {
	// OnDecision fires after admission routing, before execution.
	OnDecision func(Decision)
	// OnResult fires once per job with its terminal Result.
	OnResult func(Result)
	// OnReject fires when a job is turned away without running, with the
	// rejection error code.
	OnReject func(code errors.ErrorCode)
}

// Stats is a point-in-time snapshot of the shared primitives.
type Stats struct {
	LockHeld     bool `json:"lock_held"`
	ColdInUse    int  `json:"cold_in_use"`
	ColdCapacity int  `json:"cold_capacity"`
}

// Router owns the two shared primitives and routes each job to the hot or
// cold path. Workers never touch the lock or the pool directly.
type Router struct {
	model   transcription.Model
	invoker transcription.Invoker
	lock    *resilience.ModelLock
	pool    *resilience.SlotPool
	config  Config
	hooks   Hooks
	log     *logger.Logger
}

// NewRouter creates a Router. model may be nil when the resident model
// failed to load; jobs are then rejected with MODEL_NOT_LOADED, matching a
// server that stays up without its hot path.
func NewRouter(model transcription.Model, invoker transcription.Invoker, cfg Config, hooks Hooks) *Router {
	cfg.ApplyDefaults()
	return &Router{
		model:   model,
		invoker: invoker,
		lock:    resilience.NewModelLock(),
		pool:    resilience.NewSlotPool(resilience.SlotPoolConfig{Name: "cold", Capacity: cfg.MaxColdWorkers}),
		config:  cfg,
		hooks:   hooks,
		log:     logger.WithComponent("router"),
	}
}

// SetHooks replaces the metrics hooks. Call before the router starts
// accepting jobs.
func (r *Router) SetHooks(hooks Hooks) {
	r.hooks = hooks
}

// Stats reports current lock and pool occupancy.
func (r *Router) Stats() Stats {
	return Stats{
		LockHeld:     r.lock.Held(),
		ColdInUse:    r.pool.InUse(),
		ColdCapacity: r.pool.Capacity(),
	}
}

// Submit runs one job to its single terminal Result. Every acquired
// resource (lock token, cold slot, temp files) is released on every return
// path.
func (r *Router) Submit(ctx context.Context, job *Job) Result {
	start := time.Now()

	if !job.Deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, job.Deadline)
		defer cancel()
	}

	// The server stays up without a loaded model, but jobs are rejected, as
	// the original daemon behaves when loading fails at startup.
	if r.model == nil {
		return r.finish(job, start, PathNone, nil, errors.ModelNotLoaded())
	}

	token, acquired := r.lock.TryAcquire()
	decision := Decision{Route: RouteCold, Reason: ReasonLockBusy}
	if acquired {
		decision = Decision{Route: RouteHot, Reason: ReasonLockFree}
	}
	if r.hooks.OnDecision != nil {
		r.hooks.OnDecision(decision)
	}
	r.log.Debug("job routed", logger.Fields(
		logger.FieldJobID, job.ID,
		logger.FieldPath, string(decision.Route),
		"reason", decision.Reason,
	))

	if decision.Route == RouteHot {
		return r.runHot(ctx, job, start, token)
	}
	return r.runCold(ctx, job, start)
}

// finish normalizes and publishes the terminal result for a job.
func (r *Router) finish(job *Job, start time.Time, path Path, transcript *transcription.Result, err error) Result {
	res := Result{
		JobID:      job.ID,
		Transcript: transcript,
		Err:        err,
		Path:       path,
		Elapsed:    time.Since(start),
	}

	if err != nil {
		code := errors.Code(err)
		if path == PathNone && r.hooks.OnReject != nil {
			r.hooks.OnReject(code)
		}
		r.log.Warn("job failed", logger.Fields(
			logger.FieldJobID, job.ID,
			logger.FieldPath, string(path),
			"code", string(code),
			logger.FieldDuration, res.Elapsed.Milliseconds(),
		))
	} else {
		r.log.Info("job completed", logger.Fields(
			logger.FieldJobID, job.ID,
			logger.FieldPath, string(path),
			logger.FieldDuration, res.Elapsed.Milliseconds(),
		))
	}

	if r.hooks.OnResult != nil {
		r.hooks.OnResult(res)
	}
	return res
}

// typed coerces any error into a *errors.AppError, classifying context
// errors on the way.
func typed(err error) error {
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		return ae
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.ProcessTimeout("deadline exceeded")
	case stderrors.Is(err, context.Canceled):
		return errors.Cancelled(err)
	default:
		return errors.Internal(err)
	}
}
