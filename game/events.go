package game

// Event is a named state change with its payload, posted to the listener of a live state.
type Event struct {
	Name    string
	Payload any
}

const (
	EventTurnStarted    = "turn_started"
	EventTurnEnded      = "turn_ended"
	EventShipBuilt      = "ship_built"
	EventShipDestroyed  = "ship_destroyed"
	EventColonyLaunched = "colony_launched"
	EventColonyPlaced   = "colony_placed"
	EventFieldMoved     = "field_moved"
	EventTechClaimed    = "tech_claimed"
	EventRaid           = "raid"
	EventMoveCommitted  = "move_committed"
	EventGameOver       = "game_over"
)

const (
	SoundRoll      = "dice_roll"
	SoundDock      = "dock"
	SoundShipBuilt = "ship_built"
	SoundLaunch    = "colony_launch"
	SoundColony    = "colony_land"
	SoundRaid      = "raid"
	SoundBlast     = "plasma_blast"
	SoundTech      = "tech"
	SoundGameOver  = "game_over"
)

// Subscribe sets the listener that receives this state's events. Clones never post events.
func (gs *GameState) Subscribe(listener func(Event)) {
	gs.listener = listener
}

func (gs *GameState) postEvent(name string, payload any) {
	if gs.suppressEvents || gs.listener == nil {
		return
	}
	gs.listener(Event{Name: name, Payload: payload})
}

func (gs *GameState) queueSound(sound string) {
	if gs.suppressEvents {
		return
	}
	gs.sounds = append(gs.sounds, sound)
}

// DrainSounds returns the pending sound identifiers and empties the queue.
func (gs *GameState) DrainSounds() []string {
	sounds := gs.sounds
	gs.sounds = nil
	return sounds
}
