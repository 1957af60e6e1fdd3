package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frontiers/game"
	"frontiers/utils"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"lukechampine.com/blake3"
)

var (
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	ErrNotFound         = errors.New("not found")
)

// Store persists matches and their per-turn snapshots.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open connects to the database and migrates the schema. driver is "sqlite" (dsn is a file
// path, empty for in-memory) or "postgres" (dsn is a connection string).
func Open(driver, dsn string, log zerolog.Logger) (*Store, error) {
	config := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var db *gorm.DB
	var err error
	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		db, err = gorm.Open(sqlite.Open(dsn), config)
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), config)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info().Str("driver", driver).Msg("match store ready")

	return &Store{db: db, logger: log}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

func (s *Store) CreateMatch(ctx context.Context, id string, players []game.PlayerType) error {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.String()
	}
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}

	match := Match{
		ID:      id,
		Players: datatypes.JSON(data),
		Winners: datatypes.JSON("[]"),
		Log:     datatypes.JSON("[]"),
	}
	if err := s.db.WithContext(ctx).Create(&match).Error; err != nil {
		return fmt.Errorf("failed to create match %s: %w", id, err)
	}
	s.logger.Debug().Str("match", id).Msg("match created")
	return nil
}

// SaveSnapshot stores a serialized state for the turn, replacing an earlier one for the same turn.
func (s *Store) SaveSnapshot(ctx context.Context, matchID string, turn int, data []byte) error {
	compressed, err := utils.Compress(data)
	if err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}
	sum := blake3.Sum256(data)

	snapshot := Snapshot{
		MatchID:  matchID,
		Turn:     turn,
		Version:  game.SaveStateVersion,
		Checksum: hex.EncodeToString(sum[:]),
		Data:     compressed,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ? AND turn = ?", matchID, turn).Delete(&Snapshot{}).Error; err != nil {
			return err
		}
		return tx.Create(&snapshot).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot of match %s turn %d: %w", matchID, turn, err)
	}
	s.logger.Debug().Str("match", matchID).Int("turn", turn).Int("bytes", len(compressed)).Msg("snapshot saved")
	return nil
}

// LatestSnapshot returns the serialized state of the most recent turn stored for the match after
// verifying its checksum.
func (s *Store) LatestSnapshot(ctx context.Context, matchID string) (turn int, data []byte, err error) {
	var snapshot Snapshot
	err = s.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("turn desc").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, fmt.Errorf("snapshot of match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return 0, nil, err
	}

	data, err = utils.Decompress(snapshot.Data)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}
	sum := blake3.Sum256(data)
	if hex.EncodeToString(sum[:]) != snapshot.Checksum {
		s.logger.Error().Str("match", matchID).Int("turn", snapshot.Turn).Msg("corrupt snapshot")
		return 0, nil, fmt.Errorf("match %s turn %d: %w", matchID, snapshot.Turn, ErrChecksumMismatch)
	}
	return snapshot.Turn, data, nil
}

// LoadMatch restores the latest stored state of a match.
func (s *Store) LoadMatch(ctx context.Context, matchID string) (*game.GameState, error) {
	_, data, err := s.LatestSnapshot(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return game.Deserialize(data)
}

func (s *Store) FinishMatch(ctx context.Context, id string, winners []int, gameLog []string) error {
	winnerData, err := json.Marshal(winners)
	if err != nil {
		return err
	}
	logData, err := json.Marshal(gameLog)
	if err != nil {
		return err
	}

	now := time.Now()
	result := s.db.WithContext(ctx).Model(&Match{}).Where("id = ?", id).Updates(Match{
		FinishedAt: &now,
		Winners:    datatypes.JSON(winnerData),
		Log:        datatypes.JSON(logData),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to finish match %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) GetMatch(ctx context.Context, id string) (Match, error) {
	var match Match
	err := s.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return match, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return match, err
}
