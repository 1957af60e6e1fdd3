package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// dealCard hands the player an unowned card of the kind.
func dealCard(t *testing.T, gs *GameState, player int, kind CardKind) CardID {
	t.Helper()
	for _, c := range gs.Cards {
		if c.Kind == kind && c.Owner == Unassigned {
			gs.giveCard(c.ID, player)
			return c.ID
		}
	}
	t.Fatalf("no free %s", kind)
	return NoCard
}

func powerMove(id CardID, kind CardKind) TechMove {
	return newTechMove(id, kind, false)
}

func discardMove(id CardID, kind CardKind) TechMove {
	return newTechMove(id, kind, true)
}

func TestTechPowers(t *testing.T) {
	t.Run("booster pod raises a ship once per turn", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Players[0].Fuel = 3
		ships := setValues(gs, 0, 3)
		id := dealCard(t, gs, 0, BoosterPod)

		m := powerMove(id, BoosterPod)
		m.Ship = ships[0]
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, 4, gs.Ships[ships[0]].Value)
		require.Equal(t, 2, gs.Players[0].Fuel)
		require.True(t, gs.Cards[id].Tapped)
		require.Error(t, gs.CommitMove(m), "a tapped card cannot be used again")
	})

	t.Run("booster pod cannot pass six", func(t *testing.T) {
		gs := newTestState(t, 2)
		ships := setValues(gs, 0, 6)
		id := dealCard(t, gs, 0, BoosterPod)

		m := powerMove(id, BoosterPod)
		m.Ship = ships[0]
		require.Error(t, gs.CommitMove(m))
	})

	t.Run("Pohl Foothills makes powers free", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Players[0].Fuel = 0
		gs.Regions[PohlFoothills].Colonies[0] = 1
		ships := setValues(gs, 0, 2)
		id := dealCard(t, gs, 0, StasisBeam)

		m := powerMove(id, StasisBeam)
		m.Ship = ships[0]
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, 1, gs.Ships[ships[0]].Value)
		require.Equal(t, 0, gs.Players[0].Fuel)
	})

	t.Run("polarity device flips a ship", func(t *testing.T) {
		gs := newTestState(t, 2)
		ships := setValues(gs, 0, 2)
		id := dealCard(t, gs, 0, PolarityDevice)

		m := powerMove(id, PolarityDevice)
		m.Ship = ships[0]
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, 5, gs.Ships[ships[0]].Value)
	})

	t.Run("gravity manipulator moves a pip between ships", func(t *testing.T) {
		gs := newTestState(t, 2)
		ships := setValues(gs, 0, 3, 5)
		id := dealCard(t, gs, 0, GravityManipulator)

		m := powerMove(id, GravityManipulator)
		m.Ship, m.OtherShip = ships[0], ships[1]
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, []int{4, 4}, ships.Values(gs))
	})

	t.Run("orbital teleporter recalls a docked ship", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Players[0].Fuel = 2
		ships := setValues(gs, 0, 5)
		require.NoError(t, gs.CommitMove(DockMove{Orbital: LunarMine, Ships: ships}))
		id := dealCard(t, gs, 0, OrbitalTeleporter)

		m := powerMove(id, OrbitalTeleporter)
		m.Ship = ships[0]
		require.NoError(t, gs.CommitMove(m))
		require.False(t, gs.Ships[ships[0]].Docked())
		require.Empty(t, gs.Orbitals[LunarMine].DockedShips())
		require.Error(t, gs.CommitMove(DockMove{Orbital: LunarMine, Ships: ships}), "the ship cannot return to the same orbital")
		require.NoError(t, gs.CommitMove(DockMove{Orbital: SolarConverter, Ships: ships}))
	})

	t.Run("plasma cannon sends an opponent's ship to maintenance", func(t *testing.T) {
		gs := newTestState(t, 2)
		theirs := gs.Players[1].Ships[0]
		gs.Ships[theirs].Value = 4
		gs.dockShip(LunarMine, 0, theirs)
		id := dealCard(t, gs, 0, PlasmaCannon)

		m := powerMove(id, PlasmaCannon)
		m.Ship = theirs
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, MaintenanceBay, gs.Ships[theirs].Dock.Orbital)
	})

	t.Run("plasma cannon discard destroys only above three ships", func(t *testing.T) {
		gs := newTestState(t, 2)
		theirs := gs.Players[1].Ships[0]
		gs.Ships[theirs].Value = 4
		gs.dockShip(SolarConverter, 0, theirs)
		id := dealCard(t, gs, 0, PlasmaCannon)

		m := discardMove(id, PlasmaCannon)
		m.Ship = theirs
		require.Error(t, gs.CommitMove(m))

		gs.Ships[gs.Players[1].Ships[4]].Active = true
		require.NoError(t, gs.CommitMove(m))
		require.False(t, gs.Ships[theirs].Active)
		require.False(t, gs.Ships[theirs].Docked())
		require.True(t, gs.DiscardPile.Contains(id))
		require.Empty(t, gs.Players[0].Cards)
	})

	t.Run("data crystal borrows a bonus", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Regions[LemBadlands].Colonies[1] = 2
		ships := setValues(gs, 0, 1)
		id := dealCard(t, gs, 0, DataCrystal)

		m := powerMove(id, DataCrystal)
		m.Region = LemBadlands
		require.NoError(t, gs.CommitMove(m))
		require.NoError(t, gs.CommitMove(DockMove{Orbital: SolarConverter, Ships: ships}))
		require.Equal(t, 1+1+1, gs.Players[0].Fuel, "Lem Badlands adds a fuel per ship")
	})
}

func TestTechDiscards(t *testing.T) {
	t.Run("holographic decoy moves the repulsor field", func(t *testing.T) {
		gs := newTestState(t, 2)
		id := dealCard(t, gs, 0, HolographicDecoy)

		require.Error(t, gs.CommitMove(powerMove(id, HolographicDecoy)), "the decoy has no power")
		m := discardMove(id, HolographicDecoy)
		m.Region = VanVogtMountains
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, VanVogtMountains, gs.FieldRegion(RepulsorField))

		gs.Players[0].ColoniesToLaunch = 1
		require.False(t, gs.IsLegal(PlaceColony{Region: VanVogtMountains}))
	})

	t.Run("stasis beam moves the isolation field", func(t *testing.T) {
		gs := newTestState(t, 2)
		id := dealCard(t, gs, 0, StasisBeam)

		m := discardMove(id, StasisBeam)
		m.Region = AsimovCrater
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, AsimovCrater, gs.FieldRegion(IsolationField))
	})

	t.Run("polarity device swaps colonies", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Regions[AsimovCrater].Colonies[0] = 1
		gs.Regions[HerbertValley].Colonies[1] = 1
		id := dealCard(t, gs, 0, PolarityDevice)

		m := discardMove(id, PolarityDevice)
		m.Player, m.Region = 0, AsimovCrater
		m.OtherPlayer, m.OtherRegion = 1, HerbertValley
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, []int{0, 1}, gs.Regions[AsimovCrater].Colonies)
		require.Equal(t, []int{1, 0}, gs.Regions[HerbertValley].Colonies)
	})

	t.Run("orbital teleporter moves a colony", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Regions[AsimovCrater].Colonies[0] = 1
		id := dealCard(t, gs, 0, OrbitalTeleporter)

		m := discardMove(id, OrbitalTeleporter)
		m.Region, m.OtherRegion = AsimovCrater, LemBadlands
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, 0, gs.Regions[AsimovCrater].Colonies[0])
		require.Equal(t, 1, gs.Regions[LemBadlands].Colonies[0])
	})

	t.Run("temporal warper retrieves a discarded card", func(t *testing.T) {
		gs := newTestState(t, 2)
		warper := dealCard(t, gs, 0, TemporalWarper)
		cannon := dealCard(t, gs, 1, PlasmaCannon)
		gs.discardCard(cannon)

		m := discardMove(warper, TemporalWarper)
		m.Target = cannon
		require.NoError(t, gs.CommitMove(m))
		require.Equal(t, CardGroup{cannon}, gs.Players[0].Cards)
		require.True(t, gs.DiscardPile.Contains(warper))
	})

	t.Run("a player never holds two cards of a kind", func(t *testing.T) {
		gs := newTestState(t, 2)
		dealCard(t, gs, 0, BoosterPod)
		gs.Players[0].ArtifactCredit = 1
		other := dealCard(t, gs, 1, BoosterPod)
		gs.discardCard(other)
		gs.Display = append(gs.Display, other)
		gs.DiscardPile.Remove(other)

		require.Error(t, gs.CommitMove(ClaimTech{Card: other}))
	})
}

func TestCardGroup(t *testing.T) {
	g := CardGroup{4, 7, 2}

	require.Equal(t, 1, g.Index(7))
	require.Equal(t, -1, g.Index(9))
	require.True(t, g.Contains(2))

	require.True(t, g.Remove(7))
	require.False(t, g.Remove(7))
	require.Equal(t, CardGroup{4, 2}, g)

	g.Push(5)
	require.Equal(t, CardID(5), g.Pop())
	require.Equal(t, CardID(2), g.Pop())
	require.Equal(t, CardID(4), g.Pop())
	require.Equal(t, NoCard, g.Pop())
}
