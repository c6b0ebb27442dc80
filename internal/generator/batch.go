package generator

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Status is the outcome of one job in a batch.
type Status int

const (
	// StatusPending marks a job that has not run.
	StatusPending Status = iota
	// StatusWritten marks a job whose output file was written.
	StatusWritten
	// StatusFailed marks a job that returned an error.
	StatusFailed
	// StatusSkipped marks a job that never started because the batch had
	// already failed or was cancelled.
	StatusSkipped
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// Job renders one template file to one output file.
type Job struct {
	// TemplateFile is the source path.
	TemplateFile string
	// Rel is the template-relative path with forward slashes.
	Rel string
	// OutputFile is the destination path.
	OutputFile string
}

// Outcome pairs a job with its result.
type Outcome struct {
	Job    Job
	Status Status
	Err    error
}

// Batch is the explicit result of a fan-out: one outcome per job, in job
// order.
type Batch struct {
	Outcomes []Outcome
	err      error
}

// Err returns the first failure of the batch, or nil.
func (b *Batch) Err() error {
	return b.err
}

// Failed reports whether any job failed.
func (b *Batch) Failed() bool {
	return b.err != nil
}

// ByStatus returns the outcomes with status s.
func (b *Batch) ByStatus(s Status) []Outcome {
	var out []Outcome
	for _, o := range b.Outcomes {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}

// runBatch runs fn for every job on at most workers goroutines.
//
// The batch is fail-fast: after the first failure no further job starts and
// the remaining ones are reported as skipped. Jobs already running finish
// and keep what they wrote; nothing is rolled back. Each job writes only its
// own outcome slot, so no locking is needed.
func runBatch(ctx context.Context, jobs []Job, workers int, fn func(context.Context, Job) error) *Batch {
	b := &Batch{Outcomes: make([]Outcome, len(jobs))}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var failed atomic.Bool
	for i, job := range jobs {
		b.Outcomes[i] = Outcome{Job: job, Status: StatusPending}

		if failed.Load() || gctx.Err() != nil {
			b.Outcomes[i].Status = StatusSkipped
			continue
		}

		g.Go(func() error {
			if failed.Load() || gctx.Err() != nil {
				b.Outcomes[i].Status = StatusSkipped
				return nil
			}
			if err := fn(gctx, job); err != nil {
				failed.Store(true)
				b.Outcomes[i].Status = StatusFailed
				b.Outcomes[i].Err = err
				return err
			}
			b.Outcomes[i].Status = StatusWritten
			return nil
		})
	}

	b.err = g.Wait()
	if b.err == nil && ctx.Err() != nil && len(b.ByStatus(StatusSkipped)) > 0 {
		b.err = ctx.Err()
	}
	return b
}
