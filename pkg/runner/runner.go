package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mdfix/pkg/transform"
)

// Runner orchestrates multi-file fixing using a transform.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *transform.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *transform.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats.
//
// A per-file error is recorded in the outcome and never stops the run;
// only discovery failures and context cancellation abort it.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	pipelineOpts := transform.PipelineOptionsFromConfig(opts.Config)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, pipelineOpts)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect into a map and rebuild in
	// discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts transform.PipelineOptions,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		fr, err := r.Pipeline.ProcessFile(ctx, path, opts)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = fr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
