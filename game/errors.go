package game

import "fmt"

// ConfigurationError reports an invalid match setup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// IllegalMoveError reports a move rejected by the rules. The state it was committed against is
// left unchanged.
type IllegalMoveError struct {
	Move   Move
	Player int
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %q by player %d: %s", e.Move, e.Player+1, e.Reason)
}

// IncompatibleVersionError reports a snapshot written with a different format version.
type IncompatibleVersionError struct {
	Found    int
	Expected int
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("incompatible snapshot version %d, expected %d", e.Found, e.Expected)
}

func illegal(m Move, player int, format string, args ...any) error {
	return &IllegalMoveError{Move: m, Player: player, Reason: fmt.Sprintf(format, args...)}
}
