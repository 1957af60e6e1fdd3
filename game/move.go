package game

import (
	"fmt"
	"strings"
)

// DockMove places ships at an orbital.
type DockMove struct {
	Orbital OrbitalKind
	Ships   ShipGroup
}

func (m DockMove) IsStochastic() bool { return false }

func (m DockMove) String() string {
	ids := make([]string, len(m.Ships))
	for i, id := range m.Ships {
		ids[i] = fmt.Sprint(int(id))
	}
	return fmt.Sprintf("dock ships [%s] at %s", strings.Join(ids, " "), m.Orbital)
}

// LaunchColony launches the colony at the end of the player's colonist hub track.
type LaunchColony struct{}

func (LaunchColony) IsStochastic() bool { return false }
func (LaunchColony) String() string     { return "launch colony from Colonist Hub" }

// PlaceColony lands a launched colony on a region.
type PlaceColony struct {
	Region RegionKind
}

func (PlaceColony) IsStochastic() bool { return false }
func (m PlaceColony) String() string   { return fmt.Sprintf("place colony on %s", m.Region) }

// MarketTrade buys one ore at the open market price.
type MarketTrade struct{}

func (MarketTrade) IsStochastic() bool { return false }
func (MarketTrade) String() string     { return "trade fuel for ore" }

// Raid takes fuel and ore, or a single card, from one opponent. Card only counts when the raid
// takes no resources.
type Raid struct {
	Victim int
	Fuel   int
	Ore    int
	Card   CardID
}

func NewResourceRaid(victim, fuel, ore int) Raid {
	return Raid{Victim: victim, Fuel: fuel, Ore: ore, Card: NoCard}
}

func NewCardRaid(victim int, card CardID) Raid {
	return Raid{Victim: victim, Card: card}
}

// TakesCard reports whether the raid takes a card rather than resources.
func (m Raid) TakesCard() bool {
	return m.Fuel == 0 && m.Ore == 0 && m.Card != NoCard
}

// MaxRaidResources is the most fuel and ore a raid may take.
const MaxRaidResources = 4

func (Raid) IsStochastic() bool { return false }

func (m Raid) String() string {
	if m.TakesCard() {
		return fmt.Sprintf("raid card %d from player %d", m.Card, m.Victim+1)
	}
	return fmt.Sprintf("raid %d fuel and %d ore from player %d", m.Fuel, m.Ore, m.Victim+1)
}

// ClaimTech takes a face-up card from the alien artifact.
type ClaimTech struct {
	Card CardID
}

func (ClaimTech) IsStochastic() bool { return false }
func (m ClaimTech) String() string   { return fmt.Sprintf("claim tech card %d", m.Card) }

// CycleTech replaces the face-up cards at the alien artifact.
type CycleTech struct{}

func (CycleTech) IsStochastic() bool { return true }
func (CycleTech) String() string     { return "cycle alien tech display" }

// TechMove uses a card's power, or discards it for its discard effect. Only the target fields
// the card kind needs are read.
type TechMove struct {
	Card    CardID
	Kind    CardKind
	Discard bool

	Ship      ShipID
	OtherShip ShipID

	Region      RegionKind
	OtherRegion RegionKind

	Player      int
	OtherPlayer int

	Target CardID
}

func (m TechMove) IsStochastic() bool {
	return m.Kind == TemporalWarper && !m.Discard
}

func (m TechMove) String() string {
	verb := "use"
	if m.Discard {
		verb = "discard"
	}
	return fmt.Sprintf("%s %s (card %d)", verb, m.Kind, m.Card)
}

// EndTurn passes play to the next seat.
type EndTurn struct{}

func (EndTurn) IsStochastic() bool { return true }
func (EndTurn) String() string     { return "end turn" }
