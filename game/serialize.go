package game

import (
	"encoding/json"
	"fmt"

	"frontiers/utils"
)

// snapshot is the persisted envelope. The version is read before the state so an incompatible
// payload is never decoded.
type snapshot struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
	RNG     []byte          `json:"rng"`
}

// Serialize encodes the full entity graph and the dice stream position.
func (gs *GameState) Serialize() ([]byte, error) {
	state, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	rng, err := gs.rng.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode rng: %w", err)
	}
	return json.Marshal(snapshot{Version: SaveStateVersion, State: state, RNG: rng})
}

// Deserialize rebuilds a state written by Serialize.
func Deserialize(data []byte) (*GameState, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SaveStateVersion {
		return nil, &IncompatibleVersionError{Found: snap.Version, Expected: SaveStateVersion}
	}

	gs := &GameState{}
	if err := json.Unmarshal(snap.State, gs); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if err := gs.rng.UnmarshalBinary(snap.RNG); err != nil {
		return nil, fmt.Errorf("decode rng: %w", err)
	}
	if err := gs.checkShape(); err != nil {
		return nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	if err := gs.relink(); err != nil {
		return nil, fmt.Errorf("relink snapshot: %w", err)
	}
	return gs, nil
}

// checkShape rejects states whose arenas do not fit their player count.
func (gs *GameState) checkShape() error {
	players := len(gs.Players)
	if players < MinPlayers || players > MaxPlayers {
		return fmt.Errorf("%d players", players)
	}
	if !gs.validPlayer(gs.CurrentPlayer) {
		return fmt.Errorf("current player %d of %d", gs.CurrentPlayer, players)
	}
	if len(gs.Ships) != players*MaxShips+1 {
		return fmt.Errorf("%d ships for %d players", len(gs.Ships), players)
	}
	if len(gs.Orbitals) != int(NumOrbitals) || len(gs.Regions) != int(NumRegions) {
		return fmt.Errorf("%d orbitals and %d regions", len(gs.Orbitals), len(gs.Regions))
	}

	for k, o := range gs.Orbitals {
		want := newOrbital(OrbitalKind(k), players, len(gs.Ships))
		if o.Kind != want.Kind || len(o.Groups) != len(want.Groups) || len(o.Tracks) != len(want.Tracks) {
			return fmt.Errorf("%s does not fit %d players", want.Kind, players)
		}
		for g := range o.Groups {
			if len(o.Groups[g].Bays) != len(want.Groups[g].Bays) {
				return fmt.Errorf("%s group %d has %d bays", want.Kind, g, len(o.Groups[g].Bays))
			}
		}
		for p, position := range o.Tracks {
			if position < 0 || position > MaxColonyPosition {
				return fmt.Errorf("player %d colony track at %d", p+1, position)
			}
		}
	}
	for k, r := range gs.Regions {
		if r.Kind != RegionKind(k) || len(r.Colonies) != players {
			return fmt.Errorf("%s holds colonies for %d players", RegionKind(k), len(r.Colonies))
		}
	}
	return nil
}

// CreateUndoPoint records the current state. Any redo history is discarded.
func (gs *GameState) CreateUndoPoint() error {
	data, err := gs.compressed()
	if err != nil {
		return err
	}
	gs.undo = append(gs.undo, data)
	if len(gs.undo) > MaxUndoDepth {
		gs.undo = gs.undo[len(gs.undo)-MaxUndoDepth:]
	}
	gs.redo = nil
	return nil
}

func (gs *GameState) CanUndo() bool { return len(gs.undo) > 0 }
func (gs *GameState) CanRedo() bool { return len(gs.redo) > 0 }

func (gs *GameState) ClearUndoRedo() {
	gs.undo = nil
	gs.redo = nil
}

// Undo restores the last undo point and keeps the current state for Redo. It does nothing when
// there is no undo point.
func (gs *GameState) Undo() error {
	if !gs.CanUndo() {
		return nil
	}
	current, err := gs.compressed()
	if err != nil {
		return err
	}
	top := gs.undo[len(gs.undo)-1]
	if err := gs.restore(top); err != nil {
		return err
	}
	gs.undo = gs.undo[:len(gs.undo)-1]
	gs.redo = append(gs.redo, current)
	return nil
}

// Redo reapplies the last undone state. It does nothing when there is nothing to redo.
func (gs *GameState) Redo() error {
	if !gs.CanRedo() {
		return nil
	}
	current, err := gs.compressed()
	if err != nil {
		return err
	}
	top := gs.redo[len(gs.redo)-1]
	if err := gs.restore(top); err != nil {
		return err
	}
	gs.redo = gs.redo[:len(gs.redo)-1]
	gs.undo = append(gs.undo, current)
	return nil
}

func (gs *GameState) compressed() ([]byte, error) {
	data, err := gs.Serialize()
	if err != nil {
		return nil, err
	}
	return utils.Compress(data)
}

// restore replaces the entity graph in place, keeping history, listener and sound queue.
func (gs *GameState) restore(compressed []byte) error {
	data, err := utils.Decompress(compressed)
	if err != nil {
		return err
	}
	restored, err := Deserialize(data)
	if err != nil {
		return err
	}
	restored.undo, restored.redo = gs.undo, gs.redo
	restored.listener, restored.sounds = gs.listener, gs.sounds
	restored.suppressEvents = gs.suppressEvents
	*gs = *restored
	return nil
}
