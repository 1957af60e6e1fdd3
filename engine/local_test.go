package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"frontiers/game"
	"frontiers/searcher"
	"frontiers/searcher/agent"
	"frontiers/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

/*
- random agents play a match to the end or to the turn limit; metrics line up with the log
- search agents play against a random agent
- a store receives the match, a snapshot per turn and the result
- cancellation stops the match with the context's error
*/

func newState(t *testing.T, types ...game.PlayerType) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(len(types), types, 17)
	require.NoError(t, err)
	return gs
}

func TestLocalEngine(t *testing.T) {
	t.Run("random agents complete a match", func(t *testing.T) {
		gs := newState(t, game.Cadet, game.Cadet, game.Cadet)
		agents := []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2), agent.NewRandomAgent(3)}

		committed := 0
		e := NewLocalEngine(gs, agents, WithMaxTurns(60), WithListener(func(event game.Event) {
			if event.Name == game.EventMoveCommitted {
				committed++
			}
		}))
		winners, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.NotEmpty(t, winners)
		require.True(t, gs.Over || gameMetric.Turns == 60)
		require.Equal(t, gameMetric.TotalMoves, len(moveMetrics))
		require.Equal(t, committed, len(moveMetrics))
		require.Equal(t, winners, gameMetric.Winners)
		require.Equal(t, e.ID, gameMetric.MatchID)
		require.True(t, gs.CanUndo())
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.NotEmpty(t, mm.Move)
		}
	})

	t.Run("search agents against a random agent", func(t *testing.T) {
		gs := newState(t, game.Spacer, game.Cadet)
		agents := []agent.Agent{
			agent.NewSearchAgent(searcher.NewBFS(2, searcher.WithNodeBudget(80), searcher.WithMetrics(), searcher.WithSeed(1))),
			agent.NewRandomAgent(4),
		}
		e := NewLocalEngine(gs, agents, WithMaxTurns(6))

		_, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.LessOrEqual(t, gameMetric.Turns, 6)
		searched := 0
		for _, mm := range moveMetrics {
			if mm.Player == 0 && mm.Nodes > 0 {
				searched++
			}
		}
		require.Positive(t, searched, "the search agent reports the metrics of its searches")
	})

	t.Run("persists to a store", func(t *testing.T) {
		s, err := store.Open("sqlite", filepath.Join(t.TempDir(), "engine.db"), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })

		gs := newState(t, game.Cadet, game.Pirate)
		e := NewLocalEngine(gs, []agent.Agent{agent.NewRandomAgent(5), agent.NewRandomAgent(6)}, WithStore(s), WithMaxTurns(5))
		_, gameMetric, _, err := e.Run(context.Background())
		require.NoError(t, err)

		turn, data, err := s.LatestSnapshot(context.Background(), e.ID)
		require.NoError(t, err)
		require.False(t, gs.Over)
		require.Equal(t, gameMetric.Turns-1, turn, "one snapshot per turn, taken as it starts")
		restored, err := game.Deserialize(data)
		require.NoError(t, err)
		require.Equal(t, turn, restored.Turn)

		match, err := s.GetMatch(context.Background(), e.ID)
		require.NoError(t, err)
		require.NotNil(t, match.FinishedAt)
	})

	t.Run("cancelled context", func(t *testing.T) {
		gs := newState(t, game.Cadet, game.Cadet)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e := NewLocalEngine(gs, []agent.Agent{agent.NewRandomAgent(7), agent.NewRandomAgent(8)})
		_, gameMetric, _, err := e.Run(ctx)

		require.True(t, errors.Is(err, context.Canceled))
		require.Zero(t, gameMetric.Turns)
	})

	t.Run("one agent per seat", func(t *testing.T) {
		gs := newState(t, game.Cadet, game.Cadet)
		require.Panics(t, func() { NewLocalEngine(gs, []agent.Agent{agent.NewRandomAgent(1)}) })
	})
}
