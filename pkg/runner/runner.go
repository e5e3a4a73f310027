package runner

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/yaklabco/footmark/pkg/lint"
)

// Runner fans files out to a pool of workers that each run the same
// lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files selected by opts and processes them with up to
// opts.Jobs workers. Outcomes are reported in discovery order whatever order
// the workers finish in. When ctx is cancelled, Run returns the outcomes
// completed so far together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return NewResult(), nil
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(files))

	// Each slot is written by exactly one worker.
	slots := make([]*FileOutcome, len(files))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range indexes {
				outcome := r.process(ctx, files[i], opts)
				slots[i] = &outcome
			}
		})
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	result := NewResult()
	result.Files = slices.Grow(result.Files, len(files))
	for _, outcome := range slots {
		if outcome != nil {
			result.add(*outcome)
		}
	}
	result.Stats.FilesDiscovered = len(files)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts Options) FileOutcome {
	processed, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, opts.Pipeline)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return FileOutcome{Path: path, Result: processed}
}
