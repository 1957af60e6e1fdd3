package searcher

import (
	"errors"
	"time"

	"frontiers/experiments/metrics"
	"frontiers/game"
)

// ErrSearchTimeoutExceeded marks a search cut short by its deadline, node budget or
// cancellation. It is logged, never returned: the search still answers with its best plan.
var ErrSearchTimeoutExceeded = errors.New("search timeout exceeded")

type Option func(b *BFS)

// WithDuration sets the search deadline. Zero is valid and returns the fallback plan at once.
func WithDuration(duration time.Duration) Option {
	return func(b *BFS) {
		if duration >= 0 {
			b.duration = duration
			b.hasDeadline = true
		}
	}
}

// WithNodeBudget bounds the number of expanded states. Zero removes the bound.
func WithNodeBudget(nodes int) Option {
	return func(b *BFS) {
		if nodes >= 0 {
			b.nodeBudget = nodes
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(b *BFS) {
		if evaluate != nil {
			b.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(b *BFS) {
		b.metrics = metrics.NewCollector()
	}
}

// WithSeed fixes the dice stream the search samples chance outcomes from.
func WithSeed(seed uint64) Option {
	return func(b *BFS) {
		b.seed = seed
		b.seeded = true
	}
}

// Result is the plan a search settled on: the moves to commit in order, ending with the turn's
// end or with a chance move after which the agent plans again.
type Result struct {
	Moves    []game.Move
	Score    float64
	Metric   metrics.SearchMetric
	TimedOut bool
}
