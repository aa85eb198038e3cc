package filter

import (
	"context"

	"github.com/birdwire/birdwire/stream"
)

// Filter decides whether a message matches.
type Filter interface {
	// Evaluate checks if a message matches the filter criteria
	Evaluate(msg stream.Message) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string

	// IsThreadSafe indicates if the filter can be evaluated concurrently
	IsThreadSafe() bool
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against message slices
type Evaluator interface {
	// Evaluate evaluates a filter against all messages
	Evaluate(ctx context.Context, filter CompiledFilter, msgs []stream.Message) ([]stream.Message, error)
}

// BatchEvaluator evaluates multiple filters concurrently
type BatchEvaluator interface {
	// EvaluateBatch evaluates multiple filters against messages concurrently
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, msgs []stream.Message) (map[string][]stream.Message, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// BatchResult represents the result of evaluating a filter
type BatchResult struct {
	FilterName string
	Matches    []stream.Message
	Error      error
}

// WorkerPool defines the interface for concurrent work execution
type WorkerPool interface {
	// Submit submits work to the pool
	Submit(work func()) error

	// Stop gracefully stops the worker pool
	Stop(ctx context.Context) error
}

// MessageSource is anything that yields messages on a channel, typically
// a *stream.Subscription.
type MessageSource interface {
	C() <-chan stream.Message
}
