// Package jobs provides a deferred one-shot job runner with tag-based
// cancellation. Jobs are submitted with a delay, fire exactly once, and
// can be bulk-cancelled by tag or replaced by unique name. The runner
// owns execution; callers are not expected to retry failed submissions.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler is invoked when a job's delay elapses.
type Handler func(ctx context.Context, payload map[string]string)

type job struct {
	id    string
	tag   string
	name  string
	timer *time.Timer
}

// Runner executes deferred one-shot jobs.
type Runner struct {
	handler Handler
	logger  *zap.Logger

	mu     sync.Mutex
	jobs   map[string]*job
	byName map[string]string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewRunner creates a runner that dispatches fired jobs to handler.
func NewRunner(handler Handler, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		handler: handler,
		logger:  logger,
		jobs:    make(map[string]*job),
		byName:  make(map[string]string),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Submit schedules a one-shot job to fire after delay and returns its id.
// Jobs sharing a tag can be cancelled together with CancelTag. A non-empty
// name is unique: submitting again under the same name replaces the
// pending job.
func (r *Runner) Submit(tag, name string, payload map[string]string, delay time.Duration) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name != "" {
		if oldID, ok := r.byName[name]; ok {
			r.removeLocked(oldID)
		}
	}

	id := uuid.New().String()
	j := &job{id: id, tag: tag, name: name}
	j.timer = time.AfterFunc(delay, func() { r.fire(id, payload) })

	r.jobs[id] = j
	if name != "" {
		r.byName[name] = id
	}

	r.logger.Debug("job submitted",
		zap.String("id", id),
		zap.String("tag", tag),
		zap.Duration("delay", delay),
	)
	return id
}

// CancelTag stops every pending job carrying the given tag and returns
// the number of jobs cancelled.
func (r *Runner) CancelTag(tag string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancelled := 0
	for id, j := range r.jobs {
		if j.tag == tag {
			r.removeLocked(id)
			cancelled++
		}
	}
	return cancelled
}

// Pending returns the number of jobs waiting to fire.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// Stop cancels all pending jobs and prevents further firing.
func (r *Runner) Stop() {
	r.cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.jobs {
		r.removeLocked(id)
	}
}

func (r *Runner) fire(id string, payload map[string]string) {
	r.mu.Lock()
	j, ok := r.jobs[id]
	if ok {
		delete(r.jobs, id)
		if j.name != "" {
			delete(r.byName, j.name)
		}
	}
	r.mu.Unlock()

	if !ok || r.ctx.Err() != nil {
		return
	}
	r.handler(r.ctx, payload)
}

// removeLocked stops a job's timer and drops it from the indexes.
// Callers must hold r.mu.
func (r *Runner) removeLocked(id string) {
	j, ok := r.jobs[id]
	if !ok {
		return
	}
	j.timer.Stop()
	delete(r.jobs, id)
	if j.name != "" {
		delete(r.byName, j.name)
	}
}
