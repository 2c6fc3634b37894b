package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gomlcheck/internal/logging"
)

// Runner checks many files with a shared Checker.
type Runner struct {
	Checker *Checker
}

// New creates a new Runner with the given checker.
func New(checker *Checker) *Runner {
	return &Runner{Checker: checker}
}

// Run discovers files under opts.Paths and checks them concurrently.
// Outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	// Discover files.
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	dirs := make(map[string]*DirStats)
	defer result.finish(dirs)

	if len(files) == 0 {
		return result, nil
	}

	// Determine job count, capped at one worker per file.
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logger.Debug("starting run", logging.FieldFilesDiscovered, len(files), logging.FieldJobs, jobs)

	// Create channels.
	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	// Start workers.
	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	// Feed work until the list is drained or ctx is cancelled.
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

	// Close outCh once every worker has returned.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Collect results. Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	// Accumulate in discovery order so output is deterministic.
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome, dirs)
		}
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDiagnosticsTotal, result.Stats.IssuesTotal,
		logging.FieldDuration, time.Since(started),
	)

	// Check for context error.
	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker checks files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.Checker.CheckFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
