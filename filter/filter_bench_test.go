package filter

import (
	"context"
	"fmt"
	"testing"

	"github.com/birdwire/birdwire/stream"
)

// generateTestMessages creates test message data
func generateTestMessages(count int) []stream.Message {
	kinds := []stream.Kind{stream.KindEvent, stream.KindEvent, stream.KindReply, stream.KindUnknown}
	msgs := make([]stream.Message, count)

	for i := 0; i < count; i++ {
		raw := fmt.Sprintf(
			`{"seq":%d,"event":"note.created","text":"note %d","tags":["a","b"],"user":{"handle":"user%d","followers":%d,"bot":%t}}`,
			i, i, i%10, (i*37)%5000, i%4 == 0,
		)
		msgs[i] = stream.Message{Kind: kinds[i%len(kinds)], Raw: raw}
	}

	return msgs
}

func BenchmarkCompileFilter(b *testing.B) {
	expressions := []struct {
		name string
		expr string
	}{
		{"simple", `has("user")`},
		{"complex", `kind == "event" and num("user.followers") > 2500 and contains(str("text"), "note")`},
	}

	for _, tc := range expressions {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := CompileFilter(tc.expr)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompileFilterWithCache(b *testing.B) {
	compiler := NewExprCompiler(WithCache(100))
	expression := `kind == "event" and num("user.followers") > 2500`

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := compiler.Compile(expression)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateFilter(b *testing.B) {
	msgs := generateTestMessages(1000)
	filter, _ := CompileFilter(`kind == "event" and num("user.followers") > 2500`)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		matches := 0
		for _, msg := range msgs {
			if filter.Evaluate(msg) {
				matches++
			}
		}
		_ = matches
	}
}

func BenchmarkEvaluateConcurrent(b *testing.B) {
	msgs := generateTestMessages(10000)
	filter, _ := CompileFilter(`kind == "event" and num("user.followers") > 2500`)
	ctx := context.Background()

	evaluators := []struct {
		name      string
		evaluator *ConcurrentEvaluator
	}{
		{"workers-1", NewConcurrentEvaluator(WithWorkers(1))},
		{"workers-4", NewConcurrentEvaluator(WithWorkers(4))},
		{"workers-default", NewConcurrentEvaluator()},
	}

	for _, tc := range evaluators {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := tc.evaluator.Evaluate(ctx, filter, msgs)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEvaluateBatch(b *testing.B) {
	msgs := generateTestMessages(5000)
	filters := map[string]string{
		"events":  `kind == "event"`,
		"popular": `num("user.followers") > 4000`,
		"bots":    `payload.user.bot == true`,
		"complex": `kind == "event" and has("tags") and num("user.followers") > 1000`,
	}

	compiled := make(map[string]CompiledFilter)
	for name, expression := range filters {
		filter, _ := CompileFilter(expression)
		compiled[name] = filter
	}

	ctx := context.Background()
	evaluator := NewConcurrentEvaluator()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := evaluator.EvaluateBatch(ctx, compiled, msgs)
		if err != nil {
			b.Fatal(err)
		}
	}
}
