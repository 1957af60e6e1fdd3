package game

import (
	"fmt"
	"slices"
)

// Clone returns an independent copy for speculative play. The copy never posts events and does
// not carry the undo and redo stacks.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		Players:       make([]Player, len(gs.Players)),
		Ships:         slices.Clone(gs.Ships),
		Orbitals:      make([]Orbital, len(gs.Orbitals)),
		Regions:       make([]Region, len(gs.Regions)),
		Cards:         slices.Clone(gs.Cards),
		DrawPile:      slices.Clone(gs.DrawPile),
		DiscardPile:   slices.Clone(gs.DiscardPile),
		Display:       slices.Clone(gs.Display),
		CurrentPlayer: gs.CurrentPlayer,
		Turn:          gs.Turn,
		Over:          gs.Over,
		GameLog:       slices.Clip(gs.GameLog),
		LastMove:      gs.LastMove,

		rng:            gs.rng,
		suppressEvents: true,
	}

	for i, p := range gs.Players {
		p.Ships = nil
		p.Cards = slices.Clone(p.Cards)
		c.Players[i] = p
	}
	for i, o := range gs.Orbitals {
		c.Orbitals[i] = newOrbital(o.Kind, len(gs.Players), len(gs.Ships))
		copy(c.Orbitals[i].Tracks, o.Tracks)
	}
	for i, r := range gs.Regions {
		r.Colonies = slices.Clone(r.Colonies)
		c.Regions[i] = r
	}

	if err := c.relink(); err != nil {
		panic(fmt.Sprintf("clone of a consistent state: %v", err))
	}
	return c
}

// relink rebuilds the links derived from entity data: dock occupancy from each ship's DockRef and
// each player's ship list from ship owners. It rejects states where the links disagree.
func (gs *GameState) relink() error {
	for k := range gs.Orbitals {
		for g := range gs.Orbitals[k].Groups {
			for b := range gs.Orbitals[k].Groups[g].Bays {
				gs.Orbitals[k].Groups[g].Bays[b].Ship = NoShip
			}
		}
	}
	for p := range gs.Players {
		gs.Players[p].Ships = make(ShipGroup, 0, MaxShips)
	}

	for i := range gs.Ships {
		s := &gs.Ships[i]
		if s.ID != ShipID(i) {
			return fmt.Errorf("ship at %d carries id %d", i, s.ID)
		}
		if !s.Artifact {
			if !gs.validPlayer(s.Owner) {
				return fmt.Errorf("ship %d has no owner", i)
			}
			gs.Players[s.Owner].Ships = append(gs.Players[s.Owner].Ships, s.ID)
		}
		if !s.Docked() {
			continue
		}
		d := s.Dock
		if d.Orbital < 0 || int(d.Orbital) >= len(gs.Orbitals) ||
			d.Group < 0 || d.Group >= len(gs.Orbitals[d.Orbital].Groups) ||
			d.Bay < 0 || d.Bay >= len(gs.Orbitals[d.Orbital].Groups[d.Group].Bays) {
			return fmt.Errorf("ship %d docked outside %s", i, d.Orbital)
		}
		bay := &gs.Orbitals[d.Orbital].Groups[d.Group].Bays[d.Bay]
		if bay.Occupied() {
			return fmt.Errorf("ships %d and %d share a bay at %s", bay.Ship, i, d.Orbital)
		}
		bay.Ship = s.ID
	}

	for p := range gs.Players {
		for _, id := range gs.Players[p].Cards {
			if id < 0 || int(id) >= len(gs.Cards) || gs.Cards[id].Owner != p {
				return fmt.Errorf("card %d in hand of player %d has another owner", id, p+1)
			}
		}
	}
	return nil
}
