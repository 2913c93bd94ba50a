// Package repositories is the persistence gateway: one typed repository per
// entity, all backed by the same *gorm.DB (or by the same transaction).
package repositories

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"

	"versusfut/models"
)

// ErrNotFound is returned by every Get/Find method when no row matches
var ErrNotFound = errors.New("record not found")

// Store groups the repositories that share one connection or transaction
type Store struct {
	db *gorm.DB

	Matches    MatchRepository
	Attendance AttendanceRepository
	Squads     SquadRepository
	Games      GameRepository
	Stats      StatRepository
	Players    PlayerRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Matches:    &gormMatchRepository{db: db},
		Attendance: &gormAttendanceRepository{db: db},
		Squads:     &gormSquadRepository{db: db},
		Games:      &gormGameRepository{db: db},
		Stats:      &gormStatRepository{db: db},
		Players:    &gormPlayerRepository{db: db},
	}
}

// Transaction runs fn with a Store bound to a single database transaction.
// Any error returned by fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate creates or updates every table owned by the service
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(
		&models.InternalMatch{},
		&models.AttendanceEntry{},
		&models.MatchTeam{},
		&models.MatchTeamMember{},
		&models.Game{},
		&models.StatLine{},
		&models.Player{},
	); err != nil {
		return eris.Wrap(err, "auto migrate")
	}
	return nil
}

// Ping checks that the underlying connection is alive
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return eris.Wrap(err, "get sql db")
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
