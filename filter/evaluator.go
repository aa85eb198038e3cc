package filter

import (
	"context"
	"runtime"
	"sync"

	"github.com/birdwire/birdwire/stream"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.workerCount = workers
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.batchSize = size
	}
}

// ConcurrentEvaluator implements both Evaluator and BatchEvaluator interfaces
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
	pool        WorkerPool
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.pool = NewWorkerPool(e.workerCount)

	return e
}

// Evaluate evaluates a single filter against all messages
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, msgs []stream.Message) ([]stream.Message, error) {
	if len(msgs) == 0 {
		return []stream.Message{}, nil
	}

	// Small slices are not worth the fan-out
	if len(msgs) < e.batchSize {
		return e.evaluateSequential(filter, msgs), nil
	}

	return e.evaluateConcurrent(ctx, filter, msgs)
}

// EvaluateBatch evaluates multiple filters against messages concurrently
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, msgs []stream.Message) (map[string][]stream.Message, error) {
	if len(filters) == 0 || len(msgs) == 0 {
		return make(map[string][]stream.Message), nil
	}

	results := make(map[string][]stream.Message)
	resultChan := make(chan BatchResult, len(filters))

	var wg sync.WaitGroup
	for name, filter := range filters {
		wg.Add(1)

		err := e.pool.Submit(func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				resultChan <- BatchResult{
					FilterName: name,
					Error:      ctx.Err(),
				}
				return
			default:
			}

			// Scan inline: a task on the pool must not wait on more
			// pool work.
			resultChan <- BatchResult{
				FilterName: name,
				Matches:    e.evaluateSequential(filter, msgs),
			}
		})

		if err != nil {
			wg.Done()
			return nil, err
		}
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Filters that error are skipped rather than failing the batch
	for result := range resultChan {
		if result.Error != nil {
			continue
		}
		results[result.FilterName] = result.Matches
	}

	return results, nil
}

// evaluateSequential evaluates a filter against all messages sequentially
func (e *ConcurrentEvaluator) evaluateSequential(filter CompiledFilter, msgs []stream.Message) []stream.Message {
	matches := make([]stream.Message, 0, len(msgs)/10)
	for _, msg := range msgs {
		if filter.Evaluate(msg) {
			matches = append(matches, msg)
		}
	}
	return matches
}

// evaluateConcurrent evaluates a filter against messages using the worker pool
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, msgs []stream.Message) ([]stream.Message, error) {
	chunkSize := max(len(msgs)/e.workerCount, e.batchSize)

	type chunkResult struct {
		matches []stream.Message
		order   int
	}

	resultChan := make(chan chunkResult, (len(msgs)/chunkSize)+1)
	var wg sync.WaitGroup

	chunkIndex := 0
	for i := 0; i < len(msgs); i += chunkSize {
		end := min(i+chunkSize, len(msgs))

		wg.Add(1)
		chunk := msgs[i:end]
		index := chunkIndex
		chunkIndex++

		err := e.pool.Submit(func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			default:
			}

			matches := make([]stream.Message, 0, len(chunk)/10)
			for _, msg := range chunk {
				if filter.Evaluate(msg) {
					matches = append(matches, msg)
				}
			}

			resultChan <- chunkResult{matches: matches, order: index}
		})

		if err != nil {
			wg.Done()
			return nil, err
		}
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results keyed by chunk order
	results := make(map[int][]stream.Message)
	for result := range resultChan {
		results[result.order] = result.matches
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Reassemble in input order
	totalMatches := 0
	for i := 0; i < len(results); i++ {
		totalMatches += len(results[i])
	}

	allMatches := make([]stream.Message, 0, totalMatches)
	for i := 0; i < len(results); i++ {
		allMatches = append(allMatches, results[i]...)
	}

	return allMatches, nil
}

// Stop gracefully stops the evaluator's worker pool
func (e *ConcurrentEvaluator) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}
