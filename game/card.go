package game

import (
	"fmt"

	"golang.org/x/exp/rand"

	"frontiers/utils"
)

type CardKind int

const (
	AlienCity CardKind = iota
	AlienMonument
	BoosterPod
	DataCrystal
	GravityManipulator
	HolographicDecoy
	OrbitalTeleporter
	PlasmaCannon
	PolarityDevice
	ResourceCache
	StasisBeam
	TemporalWarper
	NumCardKinds
)

var cardNames = [NumCardKinds]string{
	"Alien City",
	"Alien Monument",
	"Booster Pod",
	"Data Crystal",
	"Gravity Manipulator",
	"Holographic Decoy",
	"Orbital Teleporter",
	"Plasma Cannon",
	"Polarity Device",
	"Resource Cache",
	"Stasis Beam",
	"Temporal Warper",
}

// cardCounts is the composition of the tech deck.
var cardCounts = [NumCardKinds]int{
	AlienCity:          1,
	AlienMonument:      1,
	BoosterPod:         2,
	DataCrystal:        2,
	GravityManipulator: 2,
	HolographicDecoy:   2,
	OrbitalTeleporter:  2,
	PlasmaCannon:       2,
	PolarityDevice:     2,
	ResourceCache:      2,
	StasisBeam:         2,
	TemporalWarper:     2,
}

// DisplaySize is the number of face-up cards at the alien artifact.
const DisplaySize = 3

func (k CardKind) String() string {
	if k < 0 || k >= NumCardKinds {
		return fmt.Sprintf("CardKind(%d)", int(k))
	}
	return cardNames[k]
}

func (k CardKind) IsVictoryPoint() bool {
	return k == AlienCity || k == AlienMonument
}

type CardID int

const NoCard CardID = -1

type TechCard struct {
	ID     CardID
	Kind   CardKind
	Owner  int
	Tapped bool
}

// CardGroup is an ordered pile of cards referenced by arena index. The last element is the top.
type CardGroup []CardID

func (g CardGroup) Contains(id CardID) bool {
	return g.Index(id) >= 0
}

func (g CardGroup) Index(id CardID) int {
	return utils.FindIndex(g, id)
}

func (g *CardGroup) Push(id CardID) {
	*g = append(*g, id)
}

// Pop removes and returns the top card, or NoCard when the pile is empty.
func (g *CardGroup) Pop() CardID {
	if len(*g) == 0 {
		return NoCard
	}
	top := (*g)[len(*g)-1]
	*g = (*g)[:len(*g)-1]
	return top
}

func (g *CardGroup) Remove(id CardID) bool {
	i := g.Index(id)
	if i < 0 {
		return false
	}
	*g = append((*g)[:i], (*g)[i+1:]...)
	return true
}

func (g CardGroup) Shuffle(r *rand.Rand) {
	r.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
}

// FindKind returns the first card of the kind in the group, or NoCard.
func (g CardGroup) FindKind(gs *GameState, kind CardKind) CardID {
	for _, id := range g {
		if gs.Cards[id].Kind == kind {
			return id
		}
	}
	return NoCard
}

// drawCard takes the top of the draw pile, reshuffling the discard pile when the draw pile runs out.
func (gs *GameState) drawCard() CardID {
	if len(gs.DrawPile) == 0 && len(gs.DiscardPile) > 0 {
		gs.DrawPile, gs.DiscardPile = gs.DiscardPile, CardGroup{}
		gs.DrawPile.Shuffle(gs.random())
	}
	return gs.DrawPile.Pop()
}

// fillDisplay tops the face-up display back up to DisplaySize.
func (gs *GameState) fillDisplay() {
	for len(gs.Display) < DisplaySize {
		id := gs.drawCard()
		if id == NoCard {
			return
		}
		gs.Display.Push(id)
	}
}

// cycleDisplay discards the face-up cards and deals new ones.
func (gs *GameState) cycleDisplay() {
	for _, id := range gs.Display {
		gs.DiscardPile.Push(id)
	}
	gs.Display = CardGroup{}
	gs.fillDisplay()
}

// giveCard moves a card from wherever it is into the player's hand.
func (gs *GameState) giveCard(id CardID, player int) {
	gs.takeCard(id)
	c := &gs.Cards[id]
	c.Owner = player
	gs.Players[player].Cards.Push(id)
}

// discardCard moves a card into the discard pile.
func (gs *GameState) discardCard(id CardID) {
	gs.takeCard(id)
	c := &gs.Cards[id]
	c.Owner = Unassigned
	c.Tapped = false
	gs.DiscardPile.Push(id)
}

func (gs *GameState) takeCard(id CardID) {
	if owner := gs.Cards[id].Owner; owner != Unassigned {
		gs.Players[owner].Cards.Remove(id)
		return
	}
	if !gs.Display.Remove(id) && !gs.DiscardPile.Remove(id) {
		gs.DrawPile.Remove(id)
	}
}

// OwnsKind reports whether the player already holds a card of the kind.
func (gs *GameState) OwnsKind(player int, kind CardKind) bool {
	return gs.Players[player].Cards.FindKind(gs, kind) != NoCard
}
