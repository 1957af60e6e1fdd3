package game

import "fmt"

// LegalMoves lists every move the current player can commit. Dock moves that place the same
// face values at the same orbital are listed once. EndTurn is last when it is legal.
func (gs *GameState) LegalMoves() []Move {
	if gs.Over {
		return nil
	}
	player := gs.CurrentPlayer
	p := &gs.Players[player]

	candidates := []Move{}
	if p.ColoniesToLaunch > 0 {
		for k := RegionKind(0); k < NumRegions; k++ {
			candidates = append(candidates, PlaceColony{Region: k})
		}
	}
	candidates = append(candidates, LaunchColony{})
	for k := OrbitalKind(0); k < NumOrbitals; k++ {
		candidates = append(candidates, gs.dockMoves(player, k)...)
	}
	candidates = append(candidates, MarketTrade{})
	if p.RaidPending {
		candidates = append(candidates, gs.raidMoves(player)...)
	}
	if p.ArtifactCredit > 0 {
		for _, id := range gs.Display {
			candidates = append(candidates, ClaimTech{Card: id})
		}
	}
	candidates = append(candidates, CycleTech{})
	candidates = append(candidates, gs.techMoves(player)...)
	candidates = append(candidates, EndTurn{})

	moves := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if gs.validate(m) == nil {
			moves = append(moves, m)
		}
	}
	return moves
}

// dockMoves enumerates the distinct value combinations the orbital accepts from the player's
// undocked ships.
func (gs *GameState) dockMoves(player int, kind OrbitalKind) []Move {
	r := kind.Resolver()
	hand := gs.UndockedShips(player).
		Filter(gs, func(s Ship) bool { return s.TeleportRestriction != kind }).
		SortedByValue(gs)
	if len(hand) < r.MinShips() {
		return nil
	}

	moves := []Move{}
	seen := make(map[string]bool)
	var extend func(selected ShipGroup, from int)
	extend = func(selected ShipGroup, from int) {
		if len(selected) >= r.MinShips() && r.IsValidMove(gs, player, selected) {
			key := fmt.Sprint(selected.Values(gs))
			if !seen[key] {
				seen[key] = true
				moves = append(moves, DockMove{Orbital: kind, Ships: selected})
			}
		}
		usable := r.UsableShips(gs, player, hand, selected)
		if len(usable) == 0 {
			return
		}
		tried := make(map[int]bool)
		for i := from; i < len(hand); i++ {
			id := hand[i]
			v := gs.Ships[id].Value
			if tried[v] || !usable.Contains(id) {
				continue
			}
			tried[v] = true
			extend(append(selected[:len(selected):len(selected)], id), i+1)
		}
	}
	extend(ShipGroup{}, 0)
	return moves
}

// raidMoves offers each opponent's cards and two resource splits per opponent: as much ore as
// possible first, or as much fuel as possible first.
func (gs *GameState) raidMoves(player int) []Move {
	moves := []Move{}
	for v := range gs.Players {
		if v == player {
			continue
		}
		victim := &gs.Players[v]
		for _, id := range victim.Cards {
			moves = append(moves, NewCardRaid(v, id))
		}
		ore := min(victim.Ore, MaxRaidResources)
		oreFirst := NewResourceRaid(v, min(victim.Fuel, MaxRaidResources-ore), ore)
		fuel := min(victim.Fuel, MaxRaidResources)
		fuelFirst := NewResourceRaid(v, fuel, min(victim.Ore, MaxRaidResources-fuel))
		moves = append(moves, oreFirst)
		if fuelFirst != oreFirst {
			moves = append(moves, fuelFirst)
		}
	}
	return moves
}

func newTechMove(id CardID, kind CardKind, discard bool) TechMove {
	return TechMove{
		Card:        id,
		Kind:        kind,
		Discard:     discard,
		Ship:        NoShip,
		OtherShip:   NoShip,
		Region:      NoRegion,
		OtherRegion: NoRegion,
		Player:      Unassigned,
		OtherPlayer: Unassigned,
		Target:      NoCard,
	}
}

// techMoves proposes targets for every card in hand. Ships with equal values are interchangeable
// for value-changing powers, so only one of them is offered.
func (gs *GameState) techMoves(player int) []Move {
	undockedByValue := ShipGroup{}
	seenValue := make(map[int]bool)
	for _, id := range gs.UndockedShips(player).SortedByValue(gs) {
		if v := gs.Ships[id].Value; !seenValue[v] {
			seenValue[v] = true
			undockedByValue = append(undockedByValue, id)
		}
	}
	undocked := gs.UndockedShips(player)
	docked := ShipGroup{}
	for i := range gs.Ships {
		if gs.dockedTarget(ShipID(i)) {
			docked = append(docked, ShipID(i))
		}
	}

	moves := []Move{}
	for _, id := range gs.Players[player].Cards {
		kind := gs.Cards[id].Kind
		power := newTechMove(id, kind, false)
		discard := newTechMove(id, kind, true)

		switch kind {
		case BoosterPod, StasisBeam, PolarityDevice, TemporalWarper:
			for _, s := range undockedByValue {
				m := power
				m.Ship = s
				moves = append(moves, m)
			}
		case GravityManipulator:
			pairs := make(map[[2]int]bool)
			for _, up := range undocked {
				for _, down := range undocked {
					key := [2]int{gs.Ships[up].Value, gs.Ships[down].Value}
					if up == down || pairs[key] {
						continue
					}
					pairs[key] = true
					m := power
					m.Ship, m.OtherShip = up, down
					moves = append(moves, m)
				}
			}
		case OrbitalTeleporter, PlasmaCannon:
			for _, s := range docked {
				m := power
				m.Ship = s
				moves = append(moves, m)
				if kind == PlasmaCannon {
					d := discard
					d.Ship = s
					moves = append(moves, d)
				}
			}
		case DataCrystal:
			for r := RegionKind(0); r < NumRegions; r++ {
				m := power
				m.Region = r
				moves = append(moves, m)
			}
		}

		switch kind {
		case StasisBeam, DataCrystal, HolographicDecoy:
			for r := RegionKind(0); r < NumRegions; r++ {
				d := discard
				d.Region = r
				moves = append(moves, d)
			}
		case OrbitalTeleporter:
			for from := RegionKind(0); from < NumRegions; from++ {
				for to := RegionKind(0); to < NumRegions; to++ {
					d := discard
					d.Region, d.OtherRegion = from, to
					moves = append(moves, d)
				}
			}
		case PolarityDevice:
			for other := range gs.Players {
				for from := RegionKind(0); from < NumRegions; from++ {
					for to := RegionKind(0); to < NumRegions; to++ {
						d := discard
						d.Player, d.Region = player, from
						d.OtherPlayer, d.OtherRegion = other, to
						moves = append(moves, d)
					}
				}
			}
		case TemporalWarper:
			for _, target := range gs.DiscardPile {
				d := discard
				d.Target = target
				moves = append(moves, d)
			}
		}
	}
	return moves
}
