package agent

import (
	"context"
	"errors"

	"frontiers/experiments/metrics"
	"frontiers/game"
)

// ErrNotReady is returned by Step while the agent is still thinking or has no turn started.
var ErrNotReady = errors.New("agent is not ready to move")

// Agent plays the turns of one seat. The engine calls StartTurn once per turn, then polls
// IsThinkingDone and calls Step on its own goroutine until IsTurnDone reports true. Step is the
// only method that mutates the live state.
type Agent interface {
	StartTurn(ctx context.Context, state *game.GameState) error
	IsThinkingDone() bool
	IsTurnDone(state *game.GameState) bool
	// Step commits the agent's next move and returns it with the metrics of the search that chose it
	Step(state *game.GameState) (game.Move, metrics.SearchMetric, error)
	Cancel()
}

type phase int

const (
	idle phase = iota
	thinking
	done
)

func (p phase) String() string {
	switch p {
	case idle:
		return "idle"
	case thinking:
		return "thinking"
	default:
		return "done"
	}
}

func turnOver(state *game.GameState, player int) bool {
	return state.Over || state.CurrentPlayer != player
}

// commitFallback keeps the match moving after a rejected commit: end the turn when possible,
// otherwise play the first legal move.
func commitFallback(state *game.GameState) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	move := moves[len(moves)-1]
	if _, ok := move.(game.EndTurn); !ok {
		move = moves[0]
	}
	return move, state.CommitMove(move)
}
