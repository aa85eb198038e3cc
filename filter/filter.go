// Package filter compiles boolean expressions into message predicates and
// evaluates them against live subscriptions or fetched slices.
//
// Expressions use the expr language and see the message kind, its raw JSON
// text, the decoded payload, and gjson-backed path probes:
//
//	kind == "note" and has("user") and not payload.user.bot
//	num("user.followers") > 100 and contains(str("text"), "release")
package filter

import (
	"context"
	"fmt"

	"github.com/birdwire/birdwire/stream"
)

// defaultCompiler backs the package-level helpers.
var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles an expression with the package default compiler.
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// EvaluateFilters compiles the named expressions and evaluates them all
// against msgs concurrently.
func EvaluateFilters(ctx context.Context, filters map[string]string, msgs []stream.Message) (map[string][]stream.Message, error) {
	compiled := make(map[string]CompiledFilter, len(filters))
	for name, expression := range filters {
		filter, err := CompileFilter(expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	evaluator := NewConcurrentEvaluator()
	defer evaluator.Stop(ctx)

	return evaluator.EvaluateBatch(ctx, compiled, msgs)
}

// FilterSubscription forwards the messages from src that match f to the
// returned channel. The channel closes when src's channel closes.
func FilterSubscription(src MessageSource, f Filter) <-chan stream.Message {
	out := make(chan stream.Message)

	go func() {
		defer close(out)
		for msg := range src.C() {
			if f.Evaluate(msg) {
				out <- msg
			}
		}
	}()

	return out
}
