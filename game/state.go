package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// GameState is the aggregate root of a match. Every entity lives in an indexed slice and refers
// to others by index, so a state can be copied without chasing pointers.
type GameState struct {
	Players  []Player
	Ships    []Ship
	Orbitals []Orbital
	Regions  []Region
	Cards    []TechCard

	DrawPile    CardGroup
	DiscardPile CardGroup
	Display     CardGroup

	CurrentPlayer int
	Turn          int
	Over          bool

	GameLog  []string
	LastMove string

	rng            rand.PCGSource
	undo           [][]byte
	redo           [][]byte
	listener       func(Event)
	sounds         []string
	suppressEvents bool
}

// NewGameState sets up a match: decks shuffled, starting ships and resources dealt, and the
// first seat's ships rolled.
func NewGameState(players int, types []PlayerType, seed uint64) (*GameState, error) {
	if players < MinPlayers || players > MaxPlayers {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%d players, want %d to %d", players, MinPlayers, MaxPlayers)}
	}
	if len(types) != players {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%d player types for %d players", len(types), players)}
	}

	gs := &GameState{}
	gs.rng.Seed(seed)

	gs.Players = make([]Player, players)
	gs.Ships = make([]Ship, 0, players*MaxShips+1)
	for p := range gs.Players {
		gs.Players[p] = Player{
			Index:          p,
			Type:           types[p],
			Fuel:           1 + p,
			Ore:            1,
			ColoniesLeft:   ColoniesPerPlayer(players),
			BorrowedRegion: NoRegion,
		}
		for i := 0; i < MaxShips; i++ {
			id := ShipID(len(gs.Ships))
			gs.Ships = append(gs.Ships, Ship{
				ID:                  id,
				Owner:               p,
				Active:              i < StartingShips,
				Dock:                undocked,
				TeleportRestriction: NoOrbital,
			})
			gs.Players[p].Ships = append(gs.Players[p].Ships, id)
		}
	}
	gs.Ships = append(gs.Ships, Ship{
		ID:                  ShipID(len(gs.Ships)),
		Owner:               Unassigned,
		Artifact:            true,
		Dock:                undocked,
		TeleportRestriction: NoOrbital,
	})

	gs.Orbitals = make([]Orbital, NumOrbitals)
	for k := range gs.Orbitals {
		gs.Orbitals[k] = newOrbital(OrbitalKind(k), players, len(gs.Ships))
	}
	gs.Regions = make([]Region, NumRegions)
	for k := range gs.Regions {
		gs.Regions[k] = newRegion(RegionKind(k), players)
	}

	for kind, count := range cardCounts {
		for i := 0; i < count; i++ {
			id := CardID(len(gs.Cards))
			gs.Cards = append(gs.Cards, TechCard{ID: id, Kind: CardKind(kind), Owner: Unassigned})
			gs.DrawPile.Push(id)
		}
	}
	gs.DrawPile.Shuffle(gs.random())
	gs.fillDisplay()

	gs.logMove(Unassigned, fmt.Sprintf("new game with %d players", players))
	gs.beginTurn()
	return gs, nil
}

func (gs *GameState) NumPlayers() int {
	return len(gs.Players)
}

func (gs *GameState) random() *rand.Rand {
	return rand.New(&gs.rng)
}

// Reseed restarts the dice stream. Searches reseed their private clone so they sample outcomes
// instead of reading the live game's future rolls.
func (gs *GameState) Reseed(seed uint64) {
	gs.rng.Seed(seed)
}

func (gs *GameState) rollDie() int {
	return gs.random().Intn(6) + 1
}

func (gs *GameState) artifactShip() *Ship {
	if len(gs.Ships) == 0 {
		return nil
	}
	return &gs.Ships[len(gs.Ships)-1]
}

// beginTurn recalls the current seat's ships, hands over the artifact ship, rolls and resets
// per-turn state.
func (gs *GameState) beginTurn() {
	player := gs.CurrentPlayer
	p := &gs.Players[player]
	p.resetTurn()

	for i := range gs.Ships {
		s := &gs.Ships[i]
		if s.Owner != player {
			continue
		}
		gs.undock(s.ID)
		s.TeleportRestriction = NoOrbital
		if !s.Active {
			s.Value = 0
		}
	}
	gs.refreshArtifactShip(player)

	active := gs.ActiveShips(player)
	for _, id := range active {
		gs.Ships[id].Value = gs.rollDie()
	}
	for _, id := range p.Cards {
		gs.Cards[id].Tapped = false
	}
	if p.Cards.FindKind(gs, ResourceCache) != NoCard {
		if active.Sum(gs)%2 == 0 {
			p.Ore++
		} else {
			p.Fuel++
		}
	}

	gs.postEvent(EventTurnStarted, player)
	gs.queueSound(SoundRoll)
}

// refreshArtifactShip gives the artifact ship to the player while they hold the Burroughs
// Desert bonus and takes it back otherwise.
func (gs *GameState) refreshArtifactShip(player int) {
	a := gs.artifactShip()
	switch {
	case gs.HasBonus(player, BurroughsDesert):
		if a.Owner != player {
			gs.undock(a.ID)
			a.Owner = player
			a.TeleportRestriction = NoOrbital
		}
		a.Active = true
	case a.Owner == player:
		gs.undock(a.ID)
		a.Owner = Unassigned
		a.Active = false
		a.Value = 0
	}
}

// CommitMove validates the move for the current player and applies it. A rejected move returns
// an *IllegalMoveError and leaves the state untouched.
func (gs *GameState) CommitMove(m Move) error {
	if err := gs.validate(m); err != nil {
		return err
	}
	player := gs.CurrentPlayer
	line := gs.describe(m)
	gs.apply(m)
	gs.redo = nil
	gs.logMove(player, line)
	gs.postEvent(EventMoveCommitted, m)
	return nil
}

// IsLegal reports whether the move could be committed now. It never mutates.
func (gs *GameState) IsLegal(m Move) bool {
	return gs.validate(m) == nil
}

func (gs *GameState) validate(m Move) error {
	player := gs.CurrentPlayer
	if gs.Over {
		return illegal(m, player, "game is over")
	}
	p := &gs.Players[player]

	switch m := m.(type) {
	case DockMove:
		return gs.validateDock(player, m)
	case LaunchColony:
		if !gs.AbleToLaunch(player) {
			return illegal(m, player, "colony at position %d cannot launch", gs.ColonyPosition(player))
		}
	case PlaceColony:
		if !validRegion(m.Region) || !gs.Regions[m.Region].CanPlaceColony(gs, player) {
			return illegal(m, player, "no colony can land on %s", m.Region)
		}
	case MarketTrade:
		if p.MarketPrice == 0 || p.Fuel < p.MarketPrice {
			return illegal(m, player, "market closed or %d fuel short of price %d", p.Fuel, p.MarketPrice)
		}
	case Raid:
		return gs.validateRaid(player, m)
	case ClaimTech:
		if p.ArtifactCredit == 0 || !gs.Display.Contains(m.Card) {
			return illegal(m, player, "card %d not available to claim", m.Card)
		}
		if gs.OwnsKind(player, gs.Cards[m.Card].Kind) {
			return illegal(m, player, "already holds a %s", gs.Cards[m.Card].Kind)
		}
	case CycleTech:
		if p.ArtifactShuffles == 0 || len(gs.Display) == 0 {
			return illegal(m, player, "no display cycle available")
		}
	case TechMove:
		return gs.validateTech(player, m)
	case EndTurn:
		if p.ColoniesToLaunch > 0 && gs.anyPlacementPossible(player) {
			return illegal(m, player, "%d launched colonies must land first", p.ColoniesToLaunch)
		}
	default:
		return illegal(m, player, "unknown move type %T", m)
	}
	return nil
}

func (gs *GameState) validateDock(player int, m DockMove) error {
	if m.Orbital < 0 || m.Orbital >= NumOrbitals {
		return illegal(m, player, "unknown orbital %d", int(m.Orbital))
	}
	if len(m.Ships) == 0 || !m.Ships.Distinct() {
		return illegal(m, player, "ships must be distinct and non-empty")
	}
	for _, id := range m.Ships {
		if !gs.validShip(id) {
			return illegal(m, player, "unknown ship %d", id)
		}
		s := gs.Ships[id]
		switch {
		case s.Owner != player:
			return illegal(m, player, "ship %d belongs to another player", id)
		case !s.Rolled():
			return illegal(m, player, "ship %d is not in play", id)
		case s.Docked():
			return illegal(m, player, "ship %d is already docked at %s", id, s.Dock.Orbital)
		case s.TeleportRestriction == m.Orbital:
			return illegal(m, player, "ship %d was teleported away from %s", id, m.Orbital)
		}
	}
	if !m.Orbital.Resolver().IsValidMove(gs, player, m.Ships) {
		return illegal(m, player, "%s rejects ships %s", m.Orbital, m.Ships.describe(gs))
	}
	return nil
}

func (gs *GameState) validateRaid(player int, m Raid) error {
	if !gs.Players[player].RaidPending {
		return illegal(m, player, "no raid pending")
	}
	if !gs.validPlayer(m.Victim) || m.Victim == player {
		return illegal(m, player, "invalid raid victim %d", m.Victim)
	}
	victim := &gs.Players[m.Victim]
	if m.TakesCard() {
		if m.Card < 0 || int(m.Card) >= len(gs.Cards) || gs.Cards[m.Card].Owner != m.Victim {
			return illegal(m, player, "player %d does not hold card %d", m.Victim+1, m.Card)
		}
		if gs.OwnsKind(player, gs.Cards[m.Card].Kind) {
			return illegal(m, player, "already holds a %s", gs.Cards[m.Card].Kind)
		}
		return nil
	}
	total := m.Fuel + m.Ore
	if m.Fuel < 0 || m.Ore < 0 || total == 0 || total > MaxRaidResources {
		return illegal(m, player, "a raid takes 1 to %d resources", MaxRaidResources)
	}
	if victim.Fuel < m.Fuel || victim.Ore < m.Ore {
		return illegal(m, player, "player %d has only %d fuel and %d ore", m.Victim+1, victim.Fuel, victim.Ore)
	}
	return nil
}

func (gs *GameState) validateTech(player int, m TechMove) error {
	if m.Card < 0 || int(m.Card) >= len(gs.Cards) {
		return illegal(m, player, "unknown card %d", m.Card)
	}
	card := gs.Cards[m.Card]
	if card.Owner != player {
		return illegal(m, player, "card %d is not in hand", m.Card)
	}
	if card.Kind != m.Kind {
		return illegal(m, player, "card %d is a %s", m.Card, card.Kind)
	}
	power := card.Kind.Power()
	if m.Discard {
		if !power.CanUseDiscard(gs, player, m) {
			return illegal(m, player, "%s discard effect unavailable", card.Kind)
		}
		return nil
	}
	if card.Tapped {
		return illegal(m, player, "%s already used this turn", card.Kind)
	}
	if !power.CanUsePower(gs, player, m) {
		return illegal(m, player, "%s power unavailable", card.Kind)
	}
	return nil
}

// apply mutates the state for a validated move.
func (gs *GameState) apply(m Move) {
	player := gs.CurrentPlayer
	p := &gs.Players[player]

	switch m := m.(type) {
	case DockMove:
		m.Orbital.Resolver().Commit(gs, player, m.Ships)
		gs.queueSound(SoundDock)
	case LaunchColony:
		gs.LaunchColony(player)
	case PlaceColony:
		gs.Regions[m.Region].PlaceColony(gs, player)
	case MarketTrade:
		p.Fuel -= p.MarketPrice
		p.Ore++
	case Raid:
		victim := &gs.Players[m.Victim]
		if m.TakesCard() {
			gs.giveCard(m.Card, player)
		} else {
			victim.Fuel -= m.Fuel
			victim.Ore -= m.Ore
			p.Fuel += m.Fuel
			p.Ore += m.Ore
		}
		p.RaidPending = false
		gs.postEvent(EventRaid, m)
	case ClaimTech:
		gs.giveCard(m.Card, player)
		p.ArtifactCredit = 0
		p.ArtifactUsed = true
		gs.fillDisplay()
		gs.postEvent(EventTechClaimed, m.Card)
		gs.queueSound(SoundTech)
	case CycleTech:
		p.ArtifactShuffles--
		gs.cycleDisplay()
	case TechMove:
		power := m.Kind.Power()
		if m.Discard {
			power.UseDiscard(gs, player, m)
			gs.discardCard(m.Card)
		} else {
			power.UsePower(gs, player, m)
			gs.Cards[m.Card].Tapped = true
		}
		gs.queueSound(SoundTech)
	case EndTurn:
		gs.endTurn()
	}
}

func (gs *GameState) endTurn() {
	player := gs.CurrentPlayer
	p := &gs.Players[player]
	p.ColoniesToLaunch = 0
	p.resetTurn()
	gs.postEvent(EventTurnEnded, player)

	if gs.CheckGameOver() {
		gs.Over = true
		gs.postEvent(EventGameOver, gs.WinningPlayers())
		gs.queueSound(SoundGameOver)
		return
	}
	gs.CurrentPlayer = (player + 1) % len(gs.Players)
	gs.Turn++
	gs.beginTurn()
}

// CheckGameOver reports whether a player has placed every colony.
func (gs *GameState) CheckGameOver() bool {
	if gs.Over {
		return true
	}
	for i := range gs.Players {
		if gs.Players[i].ColoniesLeft == 0 {
			return true
		}
	}
	return false
}

// WinningPlayers returns the seats with the most victory points, narrowed by score. Several
// seats are returned only on an exact tie.
func (gs *GameState) WinningPlayers() []int {
	bestVP := -1
	leaders := []int{}
	for p := range gs.Players {
		vp := gs.VictoryPoints(p)
		switch {
		case vp > bestVP:
			bestVP = vp
			leaders = []int{p}
		case vp == bestVP:
			leaders = append(leaders, p)
		}
	}

	bestScore := -1.0
	winners := []int{}
	for _, p := range leaders {
		score := gs.Score(p)
		switch {
		case score > bestScore:
			bestScore = score
			winners = []int{p}
		case score == bestScore:
			winners = append(winners, p)
		}
	}
	return winners
}

// Log returns the human-readable move history.
func (gs *GameState) Log() []string {
	return gs.GameLog
}

func (gs *GameState) logMove(player int, line string) {
	if player != Unassigned {
		line = fmt.Sprintf("%s: %s", gs.Players[player].Name(), line)
	}
	gs.GameLog = append(gs.GameLog, line)
	gs.LastMove = line
}

// describe renders a move with the face values it uses, before it is applied.
func (gs *GameState) describe(m Move) string {
	switch m := m.(type) {
	case DockMove:
		return fmt.Sprintf("docked %s at %s", m.Ships.describe(gs), m.Orbital)
	case TechMove:
		if m.Discard {
			return fmt.Sprintf("discarded %s", m.Kind)
		}
		return fmt.Sprintf("used %s", m.Kind)
	case ClaimTech:
		return fmt.Sprintf("claimed %s", gs.Cards[m.Card].Kind)
	case Raid:
		if m.TakesCard() {
			return fmt.Sprintf("raided %s from %s", gs.Cards[m.Card].Kind, gs.Players[m.Victim].Name())
		}
		return fmt.Sprintf("raided %d fuel and %d ore from %s", m.Fuel, m.Ore, gs.Players[m.Victim].Name())
	}
	return m.String()
}
