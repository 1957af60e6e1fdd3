package game

const (
	MinPlayers    = 2
	MaxPlayers    = 4
	StartingShips = 3
	MaxShips      = 6

	// MaxColonyPosition is the colonist hub track step at which a colony can be launched.
	MaxColonyPosition = 7

	SaveStateVersion = 1

	// MaxUndoDepth bounds the undo stack; the oldest snapshot is dropped first.
	MaxUndoDepth = 32

	// Unassigned marks an entity with no owning player.
	Unassigned = -1
)

type StateHash uint64

// Move is one atomic action of the current player. Moves are plain values: the GameState
// validates and applies them.
type Move interface {
	IsStochastic() bool
	String() string
}

// Evaluate scores a state from the given player's perspective. Higher is better.
type Evaluate func(gs *GameState, player int) float64

// ColoniesPerPlayer returns how many colonies each player starts with.
func ColoniesPerPlayer(players int) int {
	return 10 - players
}
