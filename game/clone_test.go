package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// playedState returns a mid-game state reached by random legal moves.
func playedState(t *testing.T, moves int) *GameState {
	t.Helper()
	gs := newTestState(t, 3)
	r := rand.New(rand.NewSource(11))
	for i := 0; i < moves && !gs.Over; i++ {
		legal := gs.LegalMoves()
		require.NoError(t, gs.CommitMove(legal[r.Intn(len(legal))]))
	}
	return gs
}

func TestClone(t *testing.T) {
	t.Run("clone is structurally equal", func(t *testing.T) {
		gs := playedState(t, 60)
		clone := gs.Clone()

		require.Equal(t, serialized(t, gs), serialized(t, clone))
		require.Equal(t, gs.Hash(), clone.Hash())
		require.Equal(t, gs.LegalMoves(), clone.LegalMoves())
	})

	t.Run("dock occupancy points into the clone", func(t *testing.T) {
		gs := playedState(t, 40)
		clone := gs.Clone()

		for k, o := range clone.Orbitals {
			for g, group := range o.Groups {
				for b, bay := range group.Bays {
					if !bay.Occupied() {
						continue
					}
					require.Equal(t, DockRef{Orbital: OrbitalKind(k), Group: g, Bay: b}, clone.Ships[bay.Ship].Dock)
				}
			}
		}
		for p := range clone.Players {
			for _, id := range clone.Players[p].Ships {
				require.Equal(t, p, clone.Ships[id].Owner)
			}
		}
	})

	t.Run("mutating the clone leaves the original alone", func(t *testing.T) {
		gs := newTestState(t, 2)
		setValues(gs, 0, 2, 2, 5)
		before := serialized(t, gs)

		clone := gs.Clone()
		for _, m := range clone.LegalMoves() {
			if _, ok := m.(DockMove); ok {
				require.NoError(t, clone.CommitMove(m))
				break
			}
		}
		clone.Regions[AsimovCrater].Colonies[0] = 3
		clone.Players[0].Cards = append(clone.Players[0].Cards, 0)
		clone.Orbitals[ColonistHub].Tracks[0] = 6
		clone.Display[0] = NoCard
		require.NoError(t, clone.CommitMove(EndTurn{}))

		require.Equal(t, before, serialized(t, gs))
	})

	t.Run("clones do not post events", func(t *testing.T) {
		gs := newTestState(t, 2)
		events := 0
		gs.Subscribe(func(Event) { events++ })

		clone := gs.Clone()
		require.NoError(t, clone.CommitMove(EndTurn{}))
		require.Zero(t, events)
		require.Empty(t, clone.DrainSounds())

		require.NoError(t, gs.CommitMove(EndTurn{}))
		require.NotZero(t, events)
		require.Contains(t, gs.DrainSounds(), SoundRoll)
		require.Empty(t, gs.DrainSounds(), "draining empties the queue")
	})

	t.Run("clones roll the same dice as the original", func(t *testing.T) {
		gs := newTestState(t, 2)
		clone := gs.Clone()
		require.NoError(t, gs.CommitMove(EndTurn{}))
		require.NoError(t, clone.CommitMove(EndTurn{}))
		require.Equal(t, serialized(t, gs), serialized(t, clone))
	})
}

func TestSerialize(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		gs := playedState(t, 80)
		data := serialized(t, gs)

		restored, err := Deserialize(data)
		require.NoError(t, err)
		require.Equal(t, data, serialized(t, restored))
		require.Equal(t, gs.Hash(), restored.Hash())

		require.False(t, gs.Over)
		legal := gs.LegalMoves()
		last := legal[len(legal)-1]
		require.NoError(t, gs.CommitMove(last))
		require.NoError(t, restored.CommitMove(last))
		require.Equal(t, serialized(t, gs), serialized(t, restored), "the dice stream is restored too")
	})

	t.Run("other versions are rejected", func(t *testing.T) {
		gs := newTestState(t, 2)
		var snap snapshot
		require.NoError(t, json.Unmarshal(serialized(t, gs), &snap))

		for _, version := range []int{0, SaveStateVersion + 1} {
			snap.Version = version
			data, err := json.Marshal(snap)
			require.NoError(t, err)

			_, err = Deserialize(data)
			var versionErr *IncompatibleVersionError
			require.ErrorAs(t, err, &versionErr)
			require.Equal(t, version, versionErr.Found)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := Deserialize([]byte("{"))
		require.Error(t, err)
	})

	t.Run("inconsistent docks are rejected", func(t *testing.T) {
		gs := newTestState(t, 2)
		ships := setValues(gs, 0, 3, 3)
		gs.Ships[ships[0]].Dock = DockRef{Orbital: SolarConverter, Group: 0, Bay: 0}
		gs.Ships[ships[1]].Dock = DockRef{Orbital: SolarConverter, Group: 0, Bay: 0}

		_, err := Deserialize(serialized(t, gs))
		require.ErrorContains(t, err, "share a bay")
	})

	t.Run("malformed shapes are rejected", func(t *testing.T) {
		cases := map[string]func(gs *GameState){
			"short colony array":    func(gs *GameState) { gs.Regions[LemBadlands].Colonies = []int{1} },
			"long colony array":     func(gs *GameState) { gs.Regions[AsimovCrater].Colonies = []int{0, 0, 0} },
			"short colonist tracks": func(gs *GameState) { gs.Orbitals[ColonistHub].Tracks = []int{0} },
			"track past the end":    func(gs *GameState) { gs.Orbitals[ColonistHub].Tracks[0] = MaxColonyPosition + 1 },
			"current player":        func(gs *GameState) { gs.CurrentPlayer = 2 },
			"negative player":       func(gs *GameState) { gs.CurrentPlayer = -1 },
			"missing bays":          func(gs *GameState) { gs.Orbitals[Shipyard].Groups = gs.Orbitals[Shipyard].Groups[:1] },
			"missing ship":          func(gs *GameState) { gs.Ships = gs.Ships[:len(gs.Ships)-1] },
		}
		for name, corrupt := range cases {
			gs := newTestState(t, 2)
			corrupt(gs)
			_, err := Deserialize(serialized(t, gs))
			require.ErrorContains(t, err, "malformed snapshot", name)
		}
	})
}

func TestUndoRedo(t *testing.T) {
	t.Run("undo and redo walk the whole history", func(t *testing.T) {
		gs := newTestState(t, 2)
		r := rand.New(rand.NewSource(3))
		initial := serialized(t, gs)

		const n = 12
		for i := 0; i < n; i++ {
			require.NoError(t, gs.CreateUndoPoint())
			legal := gs.LegalMoves()
			require.NoError(t, gs.CommitMove(legal[r.Intn(len(legal))]))
		}
		final := serialized(t, gs)

		for i := 0; i < n; i++ {
			require.True(t, gs.CanUndo())
			require.NoError(t, gs.Undo())
		}
		require.False(t, gs.CanUndo())
		require.Equal(t, initial, serialized(t, gs))

		for i := 0; i < n; i++ {
			require.True(t, gs.CanRedo())
			require.NoError(t, gs.Redo())
		}
		require.False(t, gs.CanRedo())
		require.Equal(t, final, serialized(t, gs))
	})

	t.Run("a new commit clears redo", func(t *testing.T) {
		gs := newTestState(t, 2)
		require.NoError(t, gs.CreateUndoPoint())
		require.NoError(t, gs.CommitMove(EndTurn{}))
		require.NoError(t, gs.Undo())
		require.True(t, gs.CanRedo())

		require.NoError(t, gs.CommitMove(EndTurn{}))
		require.False(t, gs.CanRedo())
	})

	t.Run("undo without history does nothing", func(t *testing.T) {
		gs := newTestState(t, 2)
		before := serialized(t, gs)
		require.NoError(t, gs.Undo())
		require.NoError(t, gs.Redo())
		require.Equal(t, before, serialized(t, gs))
	})

	t.Run("history is capped", func(t *testing.T) {
		gs := newTestState(t, 2)
		for i := 0; i < MaxUndoDepth+5; i++ {
			require.NoError(t, gs.CreateUndoPoint())
		}
		require.Len(t, gs.undo, MaxUndoDepth)
		gs.ClearUndoRedo()
		require.False(t, gs.CanUndo())
	})

	t.Run("undo keeps the listener", func(t *testing.T) {
		gs := newTestState(t, 2)
		events := 0
		gs.Subscribe(func(Event) { events++ })
		require.NoError(t, gs.CreateUndoPoint())
		require.NoError(t, gs.Undo())

		require.NoError(t, gs.CommitMove(EndTurn{}))
		require.NotZero(t, events)
	})
}

func TestHash(t *testing.T) {
	t.Run("dock order does not matter", func(t *testing.T) {
		a := newTestState(t, 2)
		ships := setValues(a, 0, 2, 5)
		b := a.Clone()

		require.NoError(t, a.CommitMove(DockMove{Orbital: SolarConverter, Ships: ShipGroup{ships[0]}}))
		require.NoError(t, a.CommitMove(DockMove{Orbital: SolarConverter, Ships: ShipGroup{ships[1]}}))
		require.NoError(t, b.CommitMove(DockMove{Orbital: SolarConverter, Ships: ShipGroup{ships[1]}}))
		require.NoError(t, b.CommitMove(DockMove{Orbital: SolarConverter, Ships: ShipGroup{ships[0]}}))

		require.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("different positions differ", func(t *testing.T) {
		a := newTestState(t, 2)
		ships := setValues(a, 0, 2)
		b := a.Clone()
		require.NoError(t, b.CommitMove(DockMove{Orbital: LunarMine, Ships: ships}))
		require.NotEqual(t, a.Hash(), b.Hash())
	})

	t.Run("the artifact ship is told apart from a native ship", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Regions[BurroughsDesert].Colonies[1] = 1
		require.NoError(t, gs.CommitMove(EndTurn{}))
		artifact := gs.artifactShip().ID
		native := gs.Players[1].Ships[0]
		gs.Ships[artifact].Value = 6
		gs.Ships[native].Value = 6

		a, b := gs.Clone(), gs.Clone()
		require.NoError(t, a.CommitMove(DockMove{Orbital: SolarConverter, Ships: ShipGroup{native}}))
		require.NoError(t, b.CommitMove(DockMove{Orbital: SolarConverter, Ships: ShipGroup{artifact}}))

		require.NotEqual(t, a.Hash(), b.Hash())
	})
}
