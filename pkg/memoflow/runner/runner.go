// Package runner dispatches many independent agent invocations across
// a bounded worker pool. Each run still executes its graph strictly
// sequentially; only distinct runs proceed in parallel.
package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/skawahara/memoflow/pkg/memoflow/agent"
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// Job is one invocation to dispatch. Jobs sharing a thread id also
// share checkpoints, so batch jobs should use distinct ids.
type Job[S any] struct {
	ThreadID string
	State    S
}

// Result pairs a job's thread id with its outcome.
type Result[S any] struct {
	ThreadID string
	Outcome  agent.Outcome
}

// Pool is a bounded worker pool for agent invocations.
type Pool struct {
	inner *ants.Pool
}

// NewPool creates a pool with the given number of workers.
func NewPool(size int) (*Pool, error) {
	inner, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Pool{inner: inner}, nil
}

// Release shuts the pool down. In-flight runs complete.
func (p *Pool) Release() {
	p.inner.Release()
}

// InvokeAll runs every job on the pool and blocks until all finish.
// Results are returned in job order. A job that cannot be submitted
// gets an error outcome; other jobs are unaffected.
func InvokeAll[S any](ctx context.Context, p *Pool, a *agent.Agent[S], jobs []Job[S]) []Result[S] {
	results := make([]Result[S], len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		results[i].ThreadID = job.ThreadID

		wg.Add(1)
		idx, j := i, job
		err := p.inner.Submit(func() {
			defer wg.Done()

			var opts []agent.InvokeOption
			if j.ThreadID != "" {
				opts = append(opts, agent.WithThread(j.ThreadID))
			}
			results[idx].Outcome = a.Invoke(ctx, j.State, opts...)
		})
		if err != nil {
			wg.Done()
			results[idx].Outcome = agent.Outcome{
				Err: schema.Errorf("submit run: %v", err),
			}
		}
	}
	wg.Wait()

	return results
}
