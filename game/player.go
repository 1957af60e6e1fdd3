package game

import "fmt"

type PlayerType int

const (
	Human PlayerType = iota
	Cadet
	Spacer
	Pirate
	Admiral
)

var playerTypeNames = map[PlayerType]string{
	Human:   "human",
	Cadet:   "cadet",
	Spacer:  "spacer",
	Pirate:  "pirate",
	Admiral: "admiral",
}

func (t PlayerType) String() string {
	if name, ok := playerTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PlayerType(%d)", int(t))
}

func (t PlayerType) IsAI() bool {
	return t != Human
}

// ParsePlayerType maps a profile name back to its type.
func ParsePlayerType(name string) (PlayerType, error) {
	for t, n := range playerTypeNames {
		if n == name {
			return t, nil
		}
	}
	return Human, fmt.Errorf("unknown player type %q", name)
}

// Player holds one seat's resources and per-turn flags. Ships and cards are arena indices into
// the owning GameState.
type Player struct {
	Index int
	Type  PlayerType
	Fuel  int
	Ore   int

	Ships ShipGroup
	Cards CardGroup

	ColoniesLeft     int // colonies not yet placed on a region
	ColoniesToLaunch int // launched colonies waiting for a region

	// Per-turn state
	MarketPrice      int
	RaidPending      bool
	ArtifactCredit   int
	ArtifactShuffles int
	ArtifactUsed     bool
	BorrowedRegion   RegionKind
	HubBonusUsed     bool
}

func (p *Player) Name() string {
	return fmt.Sprintf("Player %d", p.Index+1)
}

func (p *Player) resetTurn() {
	p.MarketPrice = 0
	p.RaidPending = false
	p.ArtifactCredit = 0
	p.ArtifactShuffles = 0
	p.ArtifactUsed = false
	p.BorrowedRegion = NoRegion
	p.HubBonusUsed = false
}

// coloniesAvailable is the number of colonies that can still be launched this turn.
func (p *Player) coloniesAvailable() int {
	return p.ColoniesLeft - p.ColoniesToLaunch
}

// AllShips returns the player's native ships plus the artifact ship while they hold it.
func (gs *GameState) AllShips(player int) ShipGroup {
	ships := append(ShipGroup{}, gs.Players[player].Ships...)
	if a := gs.artifactShip(); a != nil && a.Owner == player {
		ships = append(ships, a.ID)
	}
	return ships
}

func (gs *GameState) ActiveShips(player int) ShipGroup {
	return gs.AllShips(player).Filter(gs, func(s Ship) bool { return s.Active })
}

func (gs *GameState) InactiveShips(player int) ShipGroup {
	return gs.Players[player].Ships.Filter(gs, func(s Ship) bool { return !s.Active })
}

// UndockedShips returns the rolled ships still available to place this turn.
func (gs *GameState) UndockedShips(player int) ShipGroup {
	return gs.AllShips(player).Filter(gs, func(s Ship) bool { return s.Rolled() && !s.Docked() })
}

// NativeShipCount counts active ships excluding the artifact ship.
func (gs *GameState) NativeShipCount(player int) int {
	return len(gs.Players[player].Ships.Filter(gs, func(s Ship) bool { return s.Active }))
}

// ShipCost returns the fuel and ore needed to build the player's next ship.
func (gs *GameState) ShipCost(player int) (fuel, ore int) {
	next := gs.NativeShipCount(player) + 1
	cost := max(next-StartingShips, 0)
	if gs.HasBonus(player, HerbertValley) {
		cost = max(cost-1, 0)
	}
	return cost, cost
}

func (gs *GameState) canAfford(player, fuel, ore int) bool {
	p := &gs.Players[player]
	return p.Fuel >= fuel && p.Ore >= ore
}

func (gs *GameState) pay(player, fuel, ore int) {
	p := &gs.Players[player]
	p.Fuel -= fuel
	p.Ore -= ore
}

// VictoryPoints counts placed colonies, controlled regions, the positron field and VP cards.
func (gs *GameState) VictoryPoints(player int) int {
	p := &gs.Players[player]
	vp := 0
	for _, r := range gs.Regions {
		vp += r.Colonies[player]
		if r.Controller() == player {
			vp++
			if r.Positron {
				vp++
			}
		}
	}
	for _, id := range p.Cards {
		if gs.Cards[id].Kind.IsVictoryPoint() {
			vp++
		}
	}
	return vp
}

// Score orders players with equal victory points: more cards, then ore, then fuel.
func (gs *GameState) Score(player int) float64 {
	p := &gs.Players[player]
	return float64(gs.VictoryPoints(player)) +
		float64(len(p.Cards))/100 +
		float64(min(p.Ore, 99))/10_000 +
		float64(min(p.Fuel, 99))/1_000_000
}
