package game

import (
	"sort"
	"strconv"
	"strings"
)

type ShipID int

const NoShip ShipID = -1

// DockRef locates the bay a ship occupies. Orbital is NoOrbital while the ship is undocked.
type DockRef struct {
	Orbital OrbitalKind
	Group   int
	Bay     int
}

var undocked = DockRef{Orbital: NoOrbital, Group: -1, Bay: -1}

// Ship is a die. Value is 0 until the ship has been rolled.
type Ship struct {
	ID       ShipID
	Owner    int
	Value    int
	Active   bool
	Artifact bool
	Dock     DockRef

	// TeleportRestriction bars re-docking at the orbital the ship was teleported away from.
	TeleportRestriction OrbitalKind
}

func (s Ship) Docked() bool {
	return s.Dock.Orbital != NoOrbital
}

// Rolled reports whether the ship is in play with a face value.
func (s Ship) Rolled() bool {
	return s.Active && s.Value >= 1 && s.Value <= 6
}

// ShipGroup is an ordered set of ships referenced by arena index.
type ShipGroup []ShipID

func (g ShipGroup) Contains(id ShipID) bool {
	for _, s := range g {
		if s == id {
			return true
		}
	}
	return false
}

func (g ShipGroup) Without(ids ShipGroup) ShipGroup {
	out := make(ShipGroup, 0, len(g))
	for _, s := range g {
		if !ids.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

// Values returns the ships' face values in ascending order.
func (g ShipGroup) Values(gs *GameState) []int {
	values := make([]int, len(g))
	for i, id := range g {
		values[i] = gs.Ships[id].Value
	}
	sort.Ints(values)
	return values
}

func (g ShipGroup) Sum(gs *GameState) int {
	sum := 0
	for _, id := range g {
		sum += gs.Ships[id].Value
	}
	return sum
}

func (g ShipGroup) Filter(gs *GameState, keep func(Ship) bool) ShipGroup {
	out := ShipGroup{}
	for _, id := range g {
		if keep(gs.Ships[id]) {
			out = append(out, id)
		}
	}
	return out
}

// Distinct reports whether no ship appears twice.
func (g ShipGroup) Distinct() bool {
	seen := make(map[ShipID]bool, len(g))
	for _, id := range g {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// SortedByValue returns a copy ordered by value, then by ID.
func (g ShipGroup) SortedByValue(gs *GameState) ShipGroup {
	out := append(ShipGroup{}, g...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := gs.Ships[out[i]], gs.Ships[out[j]]
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.ID < b.ID
	})
	return out
}

func (g ShipGroup) describe(gs *GameState) string {
	parts := make([]string, len(g))
	for i, v := range g.Values(gs) {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func sameValues(values []int) bool {
	for _, v := range values {
		if v != values[0] {
			return false
		}
	}
	return true
}

// sequential reports whether ascending values form a run such as 3,4,5.
func sequential(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return false
		}
	}
	return true
}
