// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of goroutines a search expands levels with.
const GO_ROUTINES = 8

// NODE_BUDGET bounds the states a single search expands.
const NODE_BUDGET = 2000

// THINKING_TIME is the search deadline when a personality does not set one.
const THINKING_TIME = 2 * time.Second

// MAX_TURNS ends a match that has not finished by then.
const MAX_TURNS = 400

// POLL_INTERVAL is how often the engine checks whether an agent has finished thinking.
const POLL_INTERVAL = 5 * time.Millisecond

// MAX_STEPS_PER_TURN stops a random agent from trading forever.
const MAX_STEPS_PER_TURN = 40
