package agent

import (
	"context"
	"fmt"
	"sync"

	"frontiers/experiments/metrics"
	"frontiers/game"
	"frontiers/searcher"

	"github.com/rs/zerolog/log"
)

type searchAgent struct {
	mu     sync.Mutex
	bfs    *searcher.BFS
	player int
	phase  phase
	ctx    context.Context
	cancel context.CancelFunc
	result chan searcher.Result
	plan   []game.Move
	metric metrics.SearchMetric
}

// NewSearchAgent returns an agent that plans each turn with a breadth-first search running on
// its own goroutine and replays the plan move by move.
func NewSearchAgent(bfs *searcher.BFS) Agent {
	return &searchAgent{bfs: bfs}
}

func (a *searchAgent) StartTurn(ctx context.Context, state *game.GameState) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase == thinking {
		return fmt.Errorf("player %d: turn started while still thinking", a.player+1)
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.player = state.CurrentPlayer
	a.ctx, a.cancel = context.WithCancel(ctx)
	a.plan = nil
	a.think(state)
	return nil
}

// think starts a search on a private clone. Callers hold the lock.
func (a *searchAgent) think(state *game.GameState) {
	clone := state.Clone()
	result := make(chan searcher.Result, 1)
	a.result = result
	a.phase = thinking

	ctx := a.ctx
	go func() {
		result <- a.bfs.Search(ctx, clone)
	}()
}

func (a *searchAgent) IsThinkingDone() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != thinking {
		return a.phase == done
	}
	select {
	case r := <-a.result:
		a.plan = r.Moves
		a.metric = r.Metric
		a.phase = done
		log.Debug().Msgf("player %d planned %d moves (score %.2f, %d nodes)", a.player+1, len(r.Moves), r.Score, r.Metric.Nodes)
		return true
	default:
		return false
	}
}

func (a *searchAgent) IsTurnDone(state *game.GameState) bool {
	return turnOver(state, a.player)
}

func (a *searchAgent) Step(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != done {
		return nil, metrics.SearchMetric{}, fmt.Errorf("player %d is %s: %w", a.player+1, a.phase, ErrNotReady)
	}
	if turnOver(state, a.player) {
		a.phase = idle
		return nil, metrics.SearchMetric{}, nil
	}

	metric := a.metric
	a.metric = metrics.SearchMetric{}

	var move game.Move
	if len(a.plan) > 0 {
		move, a.plan = a.plan[0], a.plan[1:]
		if err := state.CommitMove(move); err != nil {
			log.Error().Err(err).Msgf("player %d: planned move rejected", a.player+1)
			a.plan = nil
			if move, err = commitFallback(state); err != nil {
				return move, metric, err
			}
		}
	} else {
		var err error
		if move, err = commitFallback(state); err != nil {
			return move, metric, err
		}
	}

	switch {
	case turnOver(state, a.player):
		a.phase = idle
	case len(a.plan) == 0:
		// Plan again from the outcome of the chance move
		a.think(state)
	}
	return move, metric, nil
}

func (a *searchAgent) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.phase == thinking {
		<-a.result
	}
	a.plan = nil
	a.phase = idle
}
