package game

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"frontiers/meta"
)

// Personality is a named set of heuristic weights. Several AI difficulty profiles share one
// evaluator and differ only in these numbers.
type Personality struct {
	Name         string
	ThinkingTime time.Duration

	Ship          float64 // per active ship
	ShipPerTurn   float64 // per active ship per estimated turn left
	Fuel          float64
	Ore           float64
	Colony        float64 // per placed colony
	ColonyPending float64 // per launched colony waiting for a region
	HubNotch      float64 // per colonist hub track step
	VP            float64
	Tech          float64 // per non-VP card
	TechPerTurn   float64 // per non-VP card per estimated turn left
	TechVP        float64 // per VP card, on top of its victory point
	TechBonus     [NumCardKinds]float64
	RegionBonus   [NumRegions]float64 // per controlled region
	UnusedPip     float64             // per pip on ships still undocked
	Win           float64

	// Aggression scales the opponents' mean total subtracted from the player's own.
	Aggression float64
	// HumanPrejudice multiplies a human opponent's total inside that mean.
	HumanPrejudice float64
	// Random adds U[0, Random) noise to every evaluation.
	Random float64
}

// DefaultPersonality returns the built-in profile for an AI type. Humans get the Spacer profile.
func DefaultPersonality(t PlayerType) Personality {
	p := Personality{
		Name:           t.String(),
		ThinkingTime:   meta.THINKING_TIME,
		Ship:           11,
		ShipPerTurn:    0.25,
		Fuel:           0.3,
		Ore:            0.9,
		Colony:         12,
		ColonyPending:  10,
		HubNotch:       1.2,
		VP:             1,
		Tech:           0.25,
		TechPerTurn:    0.1,
		TechVP:         0.5,
		UnusedPip:      0.05,
		Win:            1000,
		Aggression:     0.5,
		HumanPrejudice: 1,
	}
	p.TechBonus[PlasmaCannon] = 1
	p.TechBonus[DataCrystal] = 0.5
	p.TechBonus[OrbitalTeleporter] = 0.5
	p.RegionBonus[AsimovCrater] = 1
	p.RegionBonus[BradburyPlateau] = 1.5
	p.RegionBonus[BurroughsDesert] = 2
	p.RegionBonus[HeinleinPlains] = 1
	p.RegionBonus[HerbertValley] = 1.5
	p.RegionBonus[LemBadlands] = 1.5
	p.RegionBonus[PohlFoothills] = 1
	p.RegionBonus[VanVogtMountains] = 1

	switch t {
	case Cadet:
		p.ThinkingTime = meta.THINKING_TIME / 4
		p.Aggression = 0.2
		p.Random = 4
	case Pirate:
		p.Aggression = 0.9
		p.TechBonus[PlasmaCannon] = 2.5
		p.Random = 0.5
	case Admiral:
		p.ThinkingTime = meta.THINKING_TIME * 5 / 2
		p.Aggression = 0.6
		p.HumanPrejudice = 1.25
	default:
		p.Random = 1
	}
	return p
}

// EstimatedTurnsLeft guesses how many more turns each player gets from the colonies still to
// place.
func (gs *GameState) EstimatedTurnsLeft() float64 {
	fewest := ColoniesPerPlayer(len(gs.Players))
	for i := range gs.Players {
		fewest = min(fewest, gs.Players[i].ColoniesLeft)
	}
	return max(1, float64(fewest)*1.5)
}

type evaluator struct {
	personality Personality

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEvaluator builds an Evaluate from a personality. The noise stream is seeded so a run can
// be reproduced; the returned function is safe for concurrent use.
func NewEvaluator(p Personality, seed uint64) Evaluate {
	e := &evaluator{personality: p, rng: rand.New(rand.NewSource(seed))}
	return e.evaluate
}

func (e *evaluator) evaluate(gs *GameState, player int) float64 {
	score := gs.calculatePlayerScore(player, &e.personality)

	if len(gs.Players) > 1 {
		opponents := 0.0
		for p := range gs.Players {
			if p == player {
				continue
			}
			total := gs.calculatePlayerScore(p, &e.personality)
			if gs.Players[p].Type == Human {
				total *= e.personality.HumanPrejudice
			}
			opponents += total
		}
		score -= e.personality.Aggression * opponents / float64(len(gs.Players)-1)
	}

	if e.personality.Random > 0 {
		e.mu.Lock()
		score += e.personality.Random * e.rng.Float64()
		e.mu.Unlock()
	}
	return score
}

// calculatePlayerScore is the weighted total of one player's position, before opponents are
// taken into account.
func (gs *GameState) calculatePlayerScore(player int, w *Personality) float64 {
	p := &gs.Players[player]
	turnsLeft := gs.EstimatedTurnsLeft()

	ships := float64(len(gs.ActiveShips(player)))
	score := ships * (w.Ship + w.ShipPerTurn*turnsLeft)
	score += float64(p.Fuel)*w.Fuel + float64(p.Ore)*w.Ore

	placed := ColoniesPerPlayer(len(gs.Players)) - p.ColoniesLeft
	score += float64(placed)*w.Colony + float64(p.ColoniesToLaunch)*w.ColonyPending
	score += float64(gs.ColonyPosition(player)) * w.HubNotch
	score += float64(gs.VictoryPoints(player)) * w.VP

	for _, id := range p.Cards {
		kind := gs.Cards[id].Kind
		if kind.IsVictoryPoint() {
			score += w.TechVP
			continue
		}
		score += w.Tech + w.TechPerTurn*turnsLeft + w.TechBonus[kind]
	}

	for k := range gs.Regions {
		if gs.Regions[k].Controller() == player {
			score += w.RegionBonus[k]
		}
	}

	if player == gs.CurrentPlayer {
		score += float64(gs.UndockedShips(player).Sum(gs)) * w.UnusedPip
	}

	if gs.Over {
		won := false
		for _, winner := range gs.WinningPlayers() {
			won = won || winner == player
		}
		if won {
			score += w.Win
		} else {
			score -= w.Win
		}
	}
	return score
}
