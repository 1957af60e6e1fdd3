package agent

import (
	"context"

	"frontiers/experiments/metrics"
	"frontiers/game"
	"frontiers/meta"

	"golang.org/x/exp/rand"
)

// endTurnWeight keeps random play from ending most turns after the first move.
const endTurnWeight = 0.1

type randomAgent struct {
	rng    *rand.Rand
	player int
	steps  int
}

// NewRandomAgent returns a baseline agent that samples legal moves. It ends its turn after
// meta.MAX_STEPS_PER_TURN moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) StartTurn(_ context.Context, state *game.GameState) error {
	a.player = state.CurrentPlayer
	a.steps = 0
	return nil
}

func (a *randomAgent) IsThinkingDone() bool { return true }

func (a *randomAgent) IsTurnDone(state *game.GameState) bool {
	return turnOver(state, a.player)
}

func (a *randomAgent) Step(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}, nil
	}

	move := a.sample(moves)
	if a.steps >= meta.MAX_STEPS_PER_TURN && state.IsLegal(game.EndTurn{}) {
		move = game.EndTurn{}
	}
	a.steps++
	return move, metrics.SearchMetric{}, state.CommitMove(move)
}

func (a *randomAgent) Cancel() {}

func (a *randomAgent) sample(moves []game.Move) game.Move {
	weights := make([]float64, len(moves))
	total := 0.0
	for i, move := range moves {
		weights[i] = 1
		if _, ok := move.(game.EndTurn); ok {
			weights[i] = endTurnWeight
		}
		total += weights[i]
	}

	sampled := a.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if sampled < cumulative {
			return moves[i]
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
