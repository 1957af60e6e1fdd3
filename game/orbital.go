package game

import "fmt"

type OrbitalKind int

const (
	SolarConverter OrbitalKind = iota
	Shipyard
	MaintenanceBay
	ColonistHub
	ColonyConstructor
	LunarMine
	RaidersOutpost
	AlienArtifact
	OrbitalMarket
	TerraformingStation
	NumOrbitals
)

const NoOrbital OrbitalKind = -1

var orbitalNames = [NumOrbitals]string{
	"Solar Converter",
	"Shipyard",
	"Maintenance Bay",
	"Colonist Hub",
	"Colony Constructor",
	"Lunar Mine",
	"Raiders' Outpost",
	"Alien Artifact",
	"Orbital Market",
	"Terraforming Station",
}

func (k OrbitalKind) String() string {
	if k < 0 || k >= NumOrbitals {
		return fmt.Sprintf("OrbitalKind(%d)", int(k))
	}
	return orbitalNames[k]
}

// Resolver validates and commits ship placements for one orbital variant.
type Resolver interface {
	// IsValidMove reports whether the player may dock exactly these ships. It never mutates.
	IsValidMove(gs *GameState, player int, ships ShipGroup) bool
	// UsableShips narrows inHand to the ships that could still extend selected towards a valid move.
	UsableShips(gs *GameState, player int, inHand, selected ShipGroup) ShipGroup
	// Commit applies a validated move.
	Commit(gs *GameState, player int, ships ShipGroup)
	// MinShips is the smallest number of ships a single move places.
	MinShips() int
}

// Resolver returns the rules for the orbital kind.
func (k OrbitalKind) Resolver() Resolver {
	switch k {
	case SolarConverter:
		return solarConverter{}
	case Shipyard:
		return shipyard{}
	case MaintenanceBay:
		return maintenanceBay{}
	case ColonistHub:
		return colonistHub{}
	case ColonyConstructor:
		return colonyConstructor{}
	case LunarMine:
		return lunarMine{}
	case RaidersOutpost:
		return raidersOutpost{}
	case AlienArtifact:
		return alienArtifact{}
	case OrbitalMarket:
		return orbitalMarket{}
	case TerraformingStation:
		return terraformingStation{}
	}
	panic(fmt.Sprintf("unknown orbital kind %d", int(k)))
}

// DockingBay holds at most one ship.
type DockingBay struct {
	Ship ShipID
}

func (b DockingBay) Occupied() bool {
	return b.Ship != NoShip
}

// DockGroup is a set of bays filled together by a single move.
type DockGroup struct {
	Bays []DockingBay
}

func newDockGroup(size int) DockGroup {
	g := DockGroup{Bays: make([]DockingBay, size)}
	for i := range g.Bays {
		g.Bays[i].Ship = NoShip
	}
	return g
}

func (g DockGroup) NumOccupied() int {
	n := 0
	for _, b := range g.Bays {
		if b.Occupied() {
			n++
		}
	}
	return n
}

func (g DockGroup) NumOpen() int {
	return len(g.Bays) - g.NumOccupied()
}

func (g DockGroup) Empty() bool {
	return g.NumOccupied() == 0
}

func (g DockGroup) DockedShips() ShipGroup {
	ships := ShipGroup{}
	for _, b := range g.Bays {
		if b.Occupied() {
			ships = append(ships, b.Ship)
		}
	}
	return ships
}

// Orbital is a facility's dock layout. Tracks carries the colonist hub's per-seat colony
// positions and is empty for every other kind.
type Orbital struct {
	Kind   OrbitalKind
	Groups []DockGroup
	Tracks []int `json:",omitempty"`
}

func newOrbital(kind OrbitalKind, players, totalShips int) Orbital {
	groups, size := dockLayout(kind, totalShips)
	o := Orbital{Kind: kind, Groups: make([]DockGroup, groups)}
	for i := range o.Groups {
		o.Groups[i] = newDockGroup(size)
	}
	if kind == ColonistHub {
		o.Tracks = make([]int, players)
	}
	return o
}

// dockLayout returns the number of dock groups and bays per group.
func dockLayout(kind OrbitalKind, totalShips int) (groups, size int) {
	switch kind {
	case SolarConverter, LunarMine:
		return 5, 1
	case Shipyard:
		return 3, 2
	case MaintenanceBay:
		return 1, totalShips
	case ColonistHub:
		return MaxPlayers, MaxColonyPosition
	case ColonyConstructor:
		return 2, 3
	case RaidersOutpost:
		return 1, 3
	case AlienArtifact:
		return 4, 1
	case OrbitalMarket:
		return 2, 2
	case TerraformingStation:
		return 1, 1
	}
	panic(fmt.Sprintf("unknown orbital kind %d", int(kind)))
}

func (o *Orbital) DockedShips() ShipGroup {
	ships := ShipGroup{}
	for _, g := range o.Groups {
		ships = append(ships, g.DockedShips()...)
	}
	return ships
}

func (o *Orbital) NumEmptyGroups() int {
	n := 0
	for _, g := range o.Groups {
		if g.Empty() {
			n++
		}
	}
	return n
}

// FirstEmptyGroup returns the index of the first group with no ships, or -1.
func (o *Orbital) FirstEmptyGroup() int {
	for i, g := range o.Groups {
		if g.Empty() {
			return i
		}
	}
	return -1
}

// dockShip puts a ship into the first open bay of a group.
func (gs *GameState) dockShip(kind OrbitalKind, group int, id ShipID) {
	g := &gs.Orbitals[kind].Groups[group]
	for bay := range g.Bays {
		if !g.Bays[bay].Occupied() {
			g.Bays[bay].Ship = id
			gs.Ships[id].Dock = DockRef{Orbital: kind, Group: group, Bay: bay}
			return
		}
	}
	panic(fmt.Sprintf("no open bay in %s group %d", kind, group))
}

// dockEach puts every ship into its own empty single-bay group.
func (gs *GameState) dockEach(kind OrbitalKind, ships ShipGroup) {
	for _, id := range ships {
		gs.dockShip(kind, gs.Orbitals[kind].FirstEmptyGroup(), id)
	}
}

// dockTogether fills the first empty group with the ships.
func (gs *GameState) dockTogether(kind OrbitalKind, ships ShipGroup) {
	group := gs.Orbitals[kind].FirstEmptyGroup()
	for _, id := range ships {
		gs.dockShip(kind, group, id)
	}
}

// undock clears the ship's bay, if any.
func (gs *GameState) undock(id ShipID) {
	s := &gs.Ships[id]
	if !s.Docked() {
		return
	}
	gs.Orbitals[s.Dock.Orbital].Groups[s.Dock.Group].Bays[s.Dock.Bay].Ship = NoShip
	s.Dock = undocked
}

// moveToMaintenanceBay re-docks a ship at the maintenance bay.
func (gs *GameState) moveToMaintenanceBay(id ShipID) {
	gs.undock(id)
	gs.dockShip(MaintenanceBay, 0, id)
}

// ColonyPosition returns the colonist hub track position of a seat.
func (gs *GameState) ColonyPosition(player int) int {
	return gs.Orbitals[ColonistHub].Tracks[player]
}

func (gs *GameState) SetColonyPosition(player, position int) {
	gs.Orbitals[ColonistHub].Tracks[player] = min(max(position, 0), MaxColonyPosition)
}

// AbleToLaunch reports whether the player's colony is at the end of the track and affordable.
func (gs *GameState) AbleToLaunch(player int) bool {
	return gs.ColonyPosition(player) >= MaxColonyPosition &&
		gs.canAfford(player, 1, 1) &&
		gs.Players[player].coloniesAvailable() > 0
}

// LaunchColony pays for the player's finished colony, resets the track and queues the colony
// for placement on a region.
func (gs *GameState) LaunchColony(player int) {
	gs.pay(player, 1, 1)
	gs.SetColonyPosition(player, 0)
	gs.Players[player].ColoniesToLaunch++
	gs.postEvent(EventColonyLaunched, player)
	gs.queueSound(SoundLaunch)
}
