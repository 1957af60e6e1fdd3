package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"frontiers/meta"
)

func calm(t PlayerType) Personality {
	p := DefaultPersonality(t)
	p.Random = 0
	return p
}

func TestEvaluator(t *testing.T) {
	t.Run("more resources score higher", func(t *testing.T) {
		evaluate := NewEvaluator(calm(Spacer), 1)
		gs := newTestState(t, 2)
		base := evaluate(gs, 0)

		gs.Players[0].Ore += 2
		require.Greater(t, evaluate(gs, 0), base)
	})

	t.Run("opponent gains count against the player at a discount", func(t *testing.T) {
		p := calm(Spacer)
		evaluate := NewEvaluator(p, 1)
		gs := newTestState(t, 2)
		own := evaluate(gs, 0)

		gs.Players[1].Ore += 10
		lower := evaluate(gs, 0)
		require.Less(t, lower, own)
		require.InDelta(t, p.Aggression*10*p.Ore, own-lower, 1e-9)
	})

	t.Run("colonies outweigh resources", func(t *testing.T) {
		evaluate := NewEvaluator(calm(Admiral), 1)
		a := newTestState(t, 2)
		b := a.Clone()

		a.Players[0].Fuel += 5
		a.Players[0].Ore += 5
		b.Regions[HeinleinPlains].Colonies[0] = 1
		b.Players[0].ColoniesLeft--
		require.Greater(t, evaluate(b, 0), evaluate(a, 0))
	})

	t.Run("a controlled region adds its bonus", func(t *testing.T) {
		with := calm(Spacer)
		without := with
		without.RegionBonus[LemBadlands] = 0
		gs := newTestState(t, 2)
		gs.Regions[LemBadlands].Colonies[0] = 1
		gs.Players[0].ColoniesLeft--

		diff := NewEvaluator(with, 1)(gs, 0) - NewEvaluator(without, 1)(gs, 0)
		require.InDelta(t, with.RegionBonus[LemBadlands], diff, 1e-9)

		gs.Regions[LemBadlands].Colonies[1] = 1
		gs.Players[1].ColoniesLeft--
		require.Equal(t, Unassigned, gs.Regions[LemBadlands].Controller())
		require.InDelta(t, 0, NewEvaluator(with, 1)(gs, 0)-NewEvaluator(without, 1)(gs, 0), 1e-9)
	})

	t.Run("human opponents weigh by prejudice", func(t *testing.T) {
		p := calm(Admiral)
		p.HumanPrejudice = 2
		evaluate := NewEvaluator(p, 1)
		gs := newTestState(t, 2)
		gs.Players[1].Ore += 4
		opponent := gs.calculatePlayerScore(1, &p)

		human := evaluate(gs, 0)
		gs.Players[1].Type = Admiral
		ai := evaluate(gs, 0)
		require.InDelta(t, p.Aggression*(p.HumanPrejudice-1)*opponent, ai-human, 1e-9)
	})

	t.Run("thinking time derives from the default deadline", func(t *testing.T) {
		require.Equal(t, meta.THINKING_TIME, DefaultPersonality(Spacer).ThinkingTime)
		require.Less(t, DefaultPersonality(Cadet).ThinkingTime, meta.THINKING_TIME)
		require.Greater(t, DefaultPersonality(Admiral).ThinkingTime, meta.THINKING_TIME)
	})

	t.Run("finished games carry the win bonus", func(t *testing.T) {
		p := calm(Cadet)
		evaluate := NewEvaluator(p, 1)
		gs := newTestState(t, 2)
		gs.Regions[AsimovCrater].Colonies[0] = 1
		gs.Over = true

		require.Greater(t, evaluate(gs, 0), p.Win/2)
		require.Less(t, evaluate(gs, 1), -p.Win/2)
	})

	t.Run("noise stays within the random weight", func(t *testing.T) {
		quiet := NewEvaluator(calm(Cadet), 5)
		p := DefaultPersonality(Cadet)
		noisy := NewEvaluator(p, 5)
		gs := newTestState(t, 2)

		base := quiet(gs, 0)
		for i := 0; i < 50; i++ {
			v := noisy(gs, 0)
			require.GreaterOrEqual(t, v, base)
			require.Less(t, v, base+p.Random)
		}
	})

	t.Run("same seed gives the same noise", func(t *testing.T) {
		gs := newTestState(t, 2)
		a := NewEvaluator(DefaultPersonality(Pirate), 9)
		b := NewEvaluator(DefaultPersonality(Pirate), 9)
		require.Equal(t, a(gs, 1), b(gs, 1))
	})
}

func TestEstimatedTurnsLeft(t *testing.T) {
	gs := newTestState(t, 2)
	require.Equal(t, 12.0, gs.EstimatedTurnsLeft())
	gs.Players[1].ColoniesLeft = 0
	require.Equal(t, 1.0, gs.EstimatedTurnsLeft())
}
