package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"frontiers/game"
	"frontiers/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

/*
- snapshots round trip through compression and the checksum
- the latest turn wins; saving a turn twice replaces it
- corrupted data is rejected; missing matches and snapshots report ErrNotFound
- finishing a match records winners and the game log
*/

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "frontiers.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newMatch(t *testing.T, s *Store, id string) *game.GameState {
	t.Helper()
	types := []game.PlayerType{game.Cadet, game.Pirate}
	gs, err := game.NewGameState(2, types, 3)
	require.NoError(t, err)
	require.NoError(t, s.CreateMatch(context.Background(), id, types))
	return gs
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := openStore(t)
		gs := newMatch(t, s, "match-1")
		data, err := gs.Serialize()
		require.NoError(t, err)

		require.NoError(t, s.SaveSnapshot(ctx, "match-1", gs.Turn, data))

		turn, loaded, err := s.LatestSnapshot(ctx, "match-1")
		require.NoError(t, err)
		require.Equal(t, gs.Turn, turn)
		require.Equal(t, data, loaded)

		restored, err := s.LoadMatch(ctx, "match-1")
		require.NoError(t, err)
		require.Equal(t, gs.Hash(), restored.Hash())
	})

	t.Run("latest turn wins", func(t *testing.T) {
		s := openStore(t)
		newMatch(t, s, "match-2")

		require.NoError(t, s.SaveSnapshot(ctx, "match-2", 1, []byte("one")))
		require.NoError(t, s.SaveSnapshot(ctx, "match-2", 3, []byte("three")))
		require.NoError(t, s.SaveSnapshot(ctx, "match-2", 2, []byte("two")))
		require.NoError(t, s.SaveSnapshot(ctx, "match-2", 3, []byte("three again")))

		turn, data, err := s.LatestSnapshot(ctx, "match-2")
		require.NoError(t, err)
		require.Equal(t, 3, turn)
		require.Equal(t, []byte("three again"), data)
	})

	t.Run("corrupt data is rejected", func(t *testing.T) {
		s := openStore(t)
		newMatch(t, s, "match-3")
		require.NoError(t, s.SaveSnapshot(ctx, "match-3", 1, []byte("original state")))

		tampered, err := utils.Compress([]byte("tampered state"))
		require.NoError(t, err)
		require.NoError(t, s.db.Model(&Snapshot{}).Where("match_id = ?", "match-3").Update("data", tampered).Error)

		_, _, err = s.LatestSnapshot(ctx, "match-3")
		require.True(t, errors.Is(err, ErrChecksumMismatch), "got %v", err)
	})

	t.Run("missing snapshot", func(t *testing.T) {
		s := openStore(t)
		_, _, err := s.LatestSnapshot(ctx, "nope")
		require.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestMatches(t *testing.T) {
	ctx := context.Background()

	t.Run("finish records the result", func(t *testing.T) {
		s := openStore(t)
		newMatch(t, s, "match-4")

		require.NoError(t, s.FinishMatch(ctx, "match-4", []int{1}, []string{"Player 1: end turn"}))

		match, err := s.GetMatch(ctx, "match-4")
		require.NoError(t, err)
		require.NotNil(t, match.FinishedAt)

		var players []string
		require.NoError(t, json.Unmarshal(match.Players, &players))
		require.Equal(t, []string{"cadet", "pirate"}, players)

		var winners []int
		require.NoError(t, json.Unmarshal(match.Winners, &winners))
		require.Equal(t, []int{1}, winners)

		var log []string
		require.NoError(t, json.Unmarshal(match.Log, &log))
		require.Equal(t, []string{"Player 1: end turn"}, log)
	})

	t.Run("unknown match", func(t *testing.T) {
		s := openStore(t)
		require.True(t, errors.Is(s.FinishMatch(ctx, "nope", nil, nil), ErrNotFound))
		_, err := s.GetMatch(ctx, "nope")
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open("mongo", "", zerolog.Nop())
		require.Error(t, err)
	})
}
