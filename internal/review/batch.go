package review

import (
	"context"
	"sync"
)

// DefaultConcurrency bounds how many analysis calls run at once.
// Model backends sit behind rate-limited services, so the batch stays
// deliberately small.
const DefaultConcurrency = 5

// AnalyzeFunc reviews a single file and returns the comments the
// model proposed for it. Implementations own their timeout policy;
// the batch only bounds how many calls are in flight.
type AnalyzeFunc func(ctx context.Context, task FileTask) ([]Candidate, error)

// RunBatch executes analyze once per task with at most maxConcurrency
// calls running concurrently. Every input task yields exactly one
// result in the same slot as its task, regardless of completion
// order. A failed task records its error message in its own slot and
// does not cancel or fail its siblings.
func RunBatch(ctx context.Context, tasks []FileTask, analyze AnalyzeFunc, maxConcurrency int) []FileResult {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultConcurrency
	}

	results := make([]FileResult, len(tasks))
	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(idx int, t FileTask) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			comments, err := analyze(ctx, t)
			if err != nil {
				results[idx] = FileResult{Task: t, Err: err.Error()}
				return
			}
			results[idx] = FileResult{Task: t, Comments: comments}
		}(i, task)
	}

	wg.Wait()
	return results
}
