package engine

import (
	"context"

	"frontiers/experiments/metrics"
	"frontiers/game"
)

// MaxMoves bounds the moves of a single match regardless of turns.
const MaxMoves = 10000

type Engine interface {
	// Run plays the match until it is over or the turn limit is reached
	Run(ctx context.Context) (winners []int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Store is where a match and its per-turn snapshots are persisted.
type Store interface {
	CreateMatch(ctx context.Context, id string, players []game.PlayerType) error
	SaveSnapshot(ctx context.Context, matchID string, turn int, data []byte) error
	FinishMatch(ctx context.Context, id string, winners []int, gameLog []string) error
}
