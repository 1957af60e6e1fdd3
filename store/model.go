package store

import (
	"time"

	"gorm.io/datatypes"
)

// Match is one played or running match. Players, Winners and Log are JSON arrays.
type Match struct {
	ID         string `gorm:"primaryKey;size:36"`
	Players    datatypes.JSON
	CreatedAt  time.Time
	FinishedAt *time.Time
	Winners    datatypes.JSON
	Log        datatypes.JSON
}

// Snapshot is a serialized game state taken at the start of a turn. Data is lz4-compressed and
// Checksum is the hex blake3 digest of the uncompressed bytes.
type Snapshot struct {
	ID        uint   `gorm:"primaryKey"`
	MatchID   string `gorm:"size:36;index:idx_match_turn,unique"`
	Turn      int    `gorm:"index:idx_match_turn,unique"`
	Version   int
	Checksum  string `gorm:"size:64"`
	Data      []byte
	CreatedAt time.Time
}

var models = []any{&Match{}, &Snapshot{}}
