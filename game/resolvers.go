package game

type solarConverter struct{}

func (solarConverter) MinShips() int { return 1 }

func (solarConverter) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	return len(ships) > 0 && gs.Orbitals[SolarConverter].NumEmptyGroups() >= len(ships)
}

func (solarConverter) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if gs.Orbitals[SolarConverter].NumEmptyGroups() <= len(selected) {
		return ShipGroup{}
	}
	return inHand.Without(selected)
}

func (solarConverter) Commit(gs *GameState, player int, ships ShipGroup) {
	gs.dockEach(SolarConverter, ships)
	fuel := 0
	for _, v := range ships.Values(gs) {
		fuel += (v + 1) / 2
	}
	if gs.HasBonus(player, LemBadlands) {
		fuel += len(ships)
	}
	gs.Players[player].Fuel += fuel
}

type lunarMine struct{}

func (lunarMine) MinShips() int { return 1 }

// floor is the lowest value the player may dock at the mine.
func (lunarMine) floor(gs *GameState, player int) int {
	if gs.HasBonus(player, VanVogtMountains) {
		return 0
	}
	floor := 0
	for _, id := range gs.Orbitals[LunarMine].DockedShips() {
		floor = max(floor, gs.Ships[id].Value)
	}
	return floor
}

func (l lunarMine) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	if len(ships) == 0 || gs.Orbitals[LunarMine].NumEmptyGroups() < len(ships) {
		return false
	}
	return ships.Values(gs)[0] >= l.floor(gs, player)
}

func (l lunarMine) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if gs.Orbitals[LunarMine].NumEmptyGroups() <= len(selected) {
		return ShipGroup{}
	}
	floor := l.floor(gs, player)
	return inHand.Without(selected).Filter(gs, func(s Ship) bool { return s.Value >= floor })
}

func (lunarMine) Commit(gs *GameState, player int, ships ShipGroup) {
	gs.dockEach(LunarMine, ships.SortedByValue(gs))
	gs.Players[player].Ore += len(ships)
}

type shipyard struct{}

func (shipyard) MinShips() int { return 2 }

func (shipyard) canBuild(gs *GameState, player int) bool {
	if gs.Orbitals[Shipyard].FirstEmptyGroup() < 0 || gs.NativeShipCount(player) >= MaxShips {
		return false
	}
	fuel, ore := gs.ShipCost(player)
	return gs.canAfford(player, fuel, ore)
}

func (s shipyard) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	return len(ships) == 2 && sameValues(ships.Values(gs)) && s.canBuild(gs, player)
}

func (s shipyard) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if !s.canBuild(gs, player) {
		return ShipGroup{}
	}
	return matchingCandidates(gs, inHand, selected, 2)
}

func (shipyard) Commit(gs *GameState, player int, ships ShipGroup) {
	fuel, ore := gs.ShipCost(player)
	gs.dockTogether(Shipyard, ships)
	gs.pay(player, fuel, ore)

	// A terraformed ship keeps its station until the turn ends, so stock ships go first.
	stock := gs.InactiveShips(player)
	built := stock[0]
	if free := stock.Filter(gs, func(s Ship) bool { return !s.Docked() }); len(free) > 0 {
		built = free[0]
	}
	s := &gs.Ships[built]
	s.Active = true
	s.Value = 0
	s.TeleportRestriction = NoOrbital
	gs.moveToMaintenanceBay(built)
	gs.postEvent(EventShipBuilt, built)
	gs.queueSound(SoundShipBuilt)
}

type maintenanceBay struct{}

func (maintenanceBay) MinShips() int { return 1 }

func (maintenanceBay) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	return len(ships) > 0 && gs.Orbitals[MaintenanceBay].Groups[0].NumOpen() >= len(ships)
}

func (maintenanceBay) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if gs.Orbitals[MaintenanceBay].Groups[0].NumOpen() <= len(selected) {
		return ShipGroup{}
	}
	return inHand.Without(selected)
}

func (maintenanceBay) Commit(gs *GameState, player int, ships ShipGroup) {
	for _, id := range ships {
		gs.dockShip(MaintenanceBay, 0, id)
	}
}

type colonistHub struct{}

func (colonistHub) MinShips() int { return 1 }

func (colonistHub) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	return len(ships) > 0 &&
		gs.Orbitals[ColonistHub].Groups[player].NumOpen() >= len(ships) &&
		gs.ColonyPosition(player)+len(ships) <= MaxColonyPosition
}

func (colonistHub) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if gs.Orbitals[ColonistHub].Groups[player].NumOpen() <= len(selected) ||
		gs.ColonyPosition(player)+len(selected) >= MaxColonyPosition {
		return ShipGroup{}
	}
	return inHand.Without(selected)
}

func (colonistHub) Commit(gs *GameState, player int, ships ShipGroup) {
	for _, id := range ships {
		gs.dockShip(ColonistHub, player, id)
	}
	advance := len(ships)
	p := &gs.Players[player]
	if gs.HasBonus(player, AsimovCrater) && !p.HubBonusUsed {
		advance++
		p.HubBonusUsed = true
	}
	gs.SetColonyPosition(player, gs.ColonyPosition(player)+advance)
}

type colonyConstructor struct{}

func (colonyConstructor) MinShips() int { return 3 }

func (colonyConstructor) cost(gs *GameState, player int) int {
	if gs.HasBonus(player, BradburyPlateau) {
		return 2
	}
	return 3
}

func (c colonyConstructor) canBuild(gs *GameState, player int) bool {
	return gs.Orbitals[ColonyConstructor].FirstEmptyGroup() >= 0 &&
		gs.canAfford(player, 0, c.cost(gs, player)) &&
		gs.Players[player].coloniesAvailable() > 0
}

func (c colonyConstructor) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	return len(ships) == 3 && sameValues(ships.Values(gs)) && c.canBuild(gs, player)
}

func (c colonyConstructor) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if !c.canBuild(gs, player) {
		return ShipGroup{}
	}
	return matchingCandidates(gs, inHand, selected, 3)
}

func (c colonyConstructor) Commit(gs *GameState, player int, ships ShipGroup) {
	gs.pay(player, 0, c.cost(gs, player))
	gs.dockTogether(ColonyConstructor, ships)
	gs.Players[player].ColoniesToLaunch++
	gs.postEvent(EventColonyLaunched, player)
	gs.queueSound(SoundLaunch)
}

type terraformingStation struct{}

func (terraformingStation) MinShips() int { return 1 }

func (terraformingStation) open(gs *GameState, player int) bool {
	return gs.Orbitals[TerraformingStation].FirstEmptyGroup() >= 0 &&
		gs.canAfford(player, 1, 1) &&
		gs.Players[player].coloniesAvailable() > 0
}

func (t terraformingStation) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	if len(ships) != 1 || !t.open(gs, player) {
		return false
	}
	s := gs.Ships[ships[0]]
	return s.Value == 6 && !s.Artifact
}

func (t terraformingStation) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if len(selected) > 0 || !t.open(gs, player) {
		return ShipGroup{}
	}
	return inHand.Filter(gs, func(s Ship) bool { return s.Value == 6 && !s.Artifact })
}

// Commit spends the ship: it stays on the station until its owner's next turn, then returns
// to stock.
func (terraformingStation) Commit(gs *GameState, player int, ships ShipGroup) {
	gs.pay(player, 1, 1)
	gs.dockTogether(TerraformingStation, ships)
	s := &gs.Ships[ships[0]]
	s.Active = false
	gs.Players[player].ColoniesToLaunch++
	gs.postEvent(EventColonyLaunched, player)
	gs.queueSound(SoundLaunch)
}

type orbitalMarket struct{}

func (orbitalMarket) MinShips() int { return 2 }

func (orbitalMarket) open(gs *GameState, player int) bool {
	return gs.Players[player].MarketPrice == 0 && gs.Orbitals[OrbitalMarket].FirstEmptyGroup() >= 0
}

func (m orbitalMarket) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	return len(ships) == 2 && sameValues(ships.Values(gs)) && m.open(gs, player)
}

func (m orbitalMarket) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if !m.open(gs, player) {
		return ShipGroup{}
	}
	return matchingCandidates(gs, inHand, selected, 2)
}

func (orbitalMarket) Commit(gs *GameState, player int, ships ShipGroup) {
	gs.dockTogether(OrbitalMarket, ships)
	price := gs.Ships[ships[0]].Value
	if gs.HasBonus(player, HeinleinPlains) {
		price = 1
	}
	gs.Players[player].MarketPrice = price
}

type raidersOutpost struct{}

func (raidersOutpost) MinShips() int { return 3 }

// lowestStart is the smallest run start that may dock, given the run currently docked.
func (raidersOutpost) lowestStart(gs *GameState) int {
	occupant := gs.Orbitals[RaidersOutpost].Groups[0].DockedShips()
	if len(occupant) == 0 {
		return 1
	}
	return occupant.Values(gs)[0] + 1
}

func (r raidersOutpost) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	if len(ships) != 3 || gs.Players[player].RaidPending {
		return false
	}
	values := ships.Values(gs)
	return sequential(values) && values[0] >= r.lowestStart(gs)
}

func (r raidersOutpost) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if len(selected) >= 3 || gs.Players[player].RaidPending {
		return ShipGroup{}
	}
	chosen := selected.Values(gs)
	rest := inHand.Without(selected)
	usable := ShipGroup{}
	for _, id := range rest {
		for start := r.lowestStart(gs); start <= 4; start++ {
			if runCompletable(gs, start, chosen, id, rest) {
				usable = append(usable, id)
				break
			}
		}
	}
	return usable
}

// runCompletable reports whether chosen plus candidate can grow into the run start..start+2
// using the remaining ships.
func runCompletable(gs *GameState, start int, chosen []int, candidate ShipID, rest ShipGroup) bool {
	need := map[int]bool{start: true, start + 1: true, start + 2: true}
	for _, v := range chosen {
		if !need[v] {
			return false
		}
		delete(need, v)
	}
	v := gs.Ships[candidate].Value
	if !need[v] {
		return false
	}
	delete(need, v)
	for _, id := range rest {
		if id != candidate {
			delete(need, gs.Ships[id].Value)
		}
	}
	return len(need) == 0
}

func (raidersOutpost) Commit(gs *GameState, player int, ships ShipGroup) {
	for _, id := range gs.Orbitals[RaidersOutpost].Groups[0].DockedShips() {
		gs.moveToMaintenanceBay(id)
	}
	gs.dockTogether(RaidersOutpost, ships)
	gs.Players[player].RaidPending = true
	gs.queueSound(SoundRaid)
}

type alienArtifact struct{}

func (alienArtifact) MinShips() int { return 1 }

// ArtifactThreshold is the docked total that earns a tech card.
const ArtifactThreshold = 8

func (alienArtifact) IsValidMove(gs *GameState, player int, ships ShipGroup) bool {
	return len(ships) > 0 && gs.Orbitals[AlienArtifact].NumEmptyGroups() >= len(ships)
}

func (alienArtifact) UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup {
	if gs.Orbitals[AlienArtifact].NumEmptyGroups() <= len(selected) {
		return ShipGroup{}
	}
	return inHand.Without(selected)
}

func (alienArtifact) Commit(gs *GameState, player int, ships ShipGroup) {
	gs.dockEach(AlienArtifact, ships)
	own := gs.Orbitals[AlienArtifact].DockedShips().Filter(gs, func(s Ship) bool { return s.Owner == player })
	p := &gs.Players[player]
	if own.Sum(gs) >= ArtifactThreshold && !p.ArtifactUsed {
		p.ArtifactCredit = 1
	}
	p.ArtifactShuffles++
}

// matchingCandidates narrows inHand to ships that can complete a group of size equal values.
func matchingCandidates(gs *GameState, inHand, selected ShipGroup, size int) ShipGroup {
	if len(selected) >= size {
		return ShipGroup{}
	}
	rest := inHand.Without(selected)
	if len(selected) > 0 {
		v := gs.Ships[selected[0]].Value
		same := rest.Filter(gs, func(s Ship) bool { return s.Value == v })
		if len(same) < size-len(selected) {
			return ShipGroup{}
		}
		return same
	}
	counts := make(map[int]int)
	for _, id := range rest {
		counts[gs.Ships[id].Value]++
	}
	return rest.Filter(gs, func(s Ship) bool { return counts[s.Value] >= size })
}
