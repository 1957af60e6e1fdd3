package game

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"slices"
)

// Hash fingerprints the position. Ship identities and bay positions are left out, so two move
// orders that dock the same values at the same orbitals produce the same hash.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(values ...int) {
		for _, v := range values {
			writeInt(hasher, v)
		}
	}

	write(gs.CurrentPlayer, boolInt(gs.Over))
	for p := range gs.Players {
		player := &gs.Players[p]
		write(player.Fuel, player.Ore, player.ColoniesLeft, player.ColoniesToLaunch,
			player.MarketPrice, boolInt(player.RaidPending), player.ArtifactCredit,
			player.ArtifactShuffles, boolInt(player.ArtifactUsed), int(player.BorrowedRegion),
			boolInt(player.HubBonusUsed), gs.ColonyPosition(p))

		ships := make([][5]int, 0, MaxShips+1)
		for _, id := range gs.AllShips(p) {
			s := gs.Ships[id]
			ships = append(ships, [5]int{s.Value, boolInt(s.Active), boolInt(s.Artifact), int(s.Dock.Orbital), int(s.TeleportRestriction)})
		}
		slices.SortFunc(ships, func(a, b [5]int) int {
			for i := range a {
				if a[i] != b[i] {
					return a[i] - b[i]
				}
			}
			return 0
		})
		write(len(ships))
		for _, s := range ships {
			write(s[:]...)
		}

		cards := make([]int, 0, len(player.Cards))
		for _, id := range player.Cards {
			c := gs.Cards[id]
			cards = append(cards, int(c.Kind)*2+boolInt(c.Tapped))
		}
		slices.Sort(cards)
		write(len(cards))
		write(cards...)
	}

	for _, r := range gs.Regions {
		write(r.Colonies...)
		write(boolInt(r.Positron), boolInt(r.Isolation), boolInt(r.Repulsor))
	}
	for _, pile := range []CardGroup{gs.Display, gs.DiscardPile, gs.DrawPile} {
		write(len(pile))
		for _, id := range pile {
			write(int(id))
		}
	}

	if rng, err := gs.rng.MarshalBinary(); err == nil {
		hasher.Write(rng)
	}
	return StateHash(hasher.Sum64())
}

func writeInt(h hash.Hash64, v int) {
	binary.Write(h, binary.LittleEndian, int64(v))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
