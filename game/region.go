package game

import "fmt"

type RegionKind int

const (
	AsimovCrater RegionKind = iota
	BradburyPlateau
	BurroughsDesert
	HeinleinPlains
	HerbertValley
	LemBadlands
	PohlFoothills
	VanVogtMountains
	NumRegions
)

const NoRegion RegionKind = -1

var regionNames = [NumRegions]string{
	"Asimov Crater",
	"Bradbury Plateau",
	"Burroughs Desert",
	"Heinlein Plains",
	"Herbert Valley",
	"Lem Badlands",
	"Pohl Foothills",
	"Van Vogt Mountains",
}

func (k RegionKind) String() string {
	if k < 0 || k >= NumRegions {
		return fmt.Sprintf("RegionKind(%d)", int(k))
	}
	return regionNames[k]
}

type FieldKind int

const (
	PositronField FieldKind = iota
	IsolationField
	RepulsorField
)

func (f FieldKind) String() string {
	switch f {
	case PositronField:
		return "positron field"
	case IsolationField:
		return "isolation field"
	case RepulsorField:
		return "repulsor field"
	}
	return fmt.Sprintf("FieldKind(%d)", int(f))
}

// Region is a planetary territory. Colonies holds one count per seat.
type Region struct {
	Kind      RegionKind
	Colonies  []int
	Positron  bool
	Isolation bool
	Repulsor  bool
}

func newRegion(kind RegionKind, players int) Region {
	return Region{Kind: kind, Colonies: make([]int, players)}
}

func (r *Region) NumColonies() int {
	n := 0
	for _, c := range r.Colonies {
		n += c
	}
	return n
}

// Controller returns the seat holding a strict majority of colonies, or Unassigned.
func (r *Region) Controller() int {
	best, owner := 0, Unassigned
	for p, c := range r.Colonies {
		switch {
		case c > best:
			best, owner = c, p
		case c == best && c > 0:
			owner = Unassigned
		}
	}
	return owner
}

// ColoniesForMajority returns how many more colonies the player needs to control the region.
func (r *Region) ColoniesForMajority(player int) int {
	most := 0
	for p, c := range r.Colonies {
		if p != player {
			most = max(most, c)
		}
	}
	return max(most+1-r.Colonies[player], 0)
}

func (r *Region) HasField(f FieldKind) bool {
	switch f {
	case PositronField:
		return r.Positron
	case IsolationField:
		return r.Isolation
	case RepulsorField:
		return r.Repulsor
	}
	return false
}

func (r *Region) setField(f FieldKind, on bool) {
	switch f {
	case PositronField:
		r.Positron = on
	case IsolationField:
		r.Isolation = on
	case RepulsorField:
		r.Repulsor = on
	}
}

// CanPlaceColony reports whether the player may place a launched colony here.
func (r *Region) CanPlaceColony(gs *GameState, player int) bool {
	p := &gs.Players[player]
	return p.ColoniesToLaunch > 0 && p.ColoniesLeft > 0 && !r.Repulsor
}

// PlaceColony lands one launched colony on the region.
func (r *Region) PlaceColony(gs *GameState, player int) {
	p := &gs.Players[player]
	r.Colonies[player]++
	p.ColoniesLeft--
	p.ColoniesToLaunch--
	gs.postEvent(EventColonyPlaced, r.Kind)
	gs.queueSound(SoundColony)
}

// HasBonus reports whether the player benefits from the region's bonus, either by controlling
// it or by borrowing it with a data crystal. An isolation field cancels the bonus.
func (gs *GameState) HasBonus(player int, kind RegionKind) bool {
	r := &gs.Regions[kind]
	if r.Isolation {
		return false
	}
	return r.Controller() == player || gs.Players[player].BorrowedRegion == kind
}

// FieldRegion returns the region carrying the field, or NoRegion.
func (gs *GameState) FieldRegion(f FieldKind) RegionKind {
	for i := range gs.Regions {
		if gs.Regions[i].HasField(f) {
			return gs.Regions[i].Kind
		}
	}
	return NoRegion
}

// moveField lifts the field from wherever it is and sets it on the target region.
func (gs *GameState) moveField(f FieldKind, target RegionKind) {
	for i := range gs.Regions {
		gs.Regions[i].setField(f, false)
	}
	gs.Regions[target].setField(f, true)
	gs.postEvent(EventFieldMoved, f)
}

func (gs *GameState) anyPlacementPossible(player int) bool {
	for i := range gs.Regions {
		if gs.Regions[i].CanPlaceColony(gs, player) {
			return true
		}
	}
	return false
}
