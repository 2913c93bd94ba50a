package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"versusfut/models"
	"versusfut/repositories"
)

// ReportArchiver is notified after a match completes
type ReportArchiver interface {
	Archive(ctx context.Context, matchID string) (string, error)
}

type MatchService struct {
	store    *repositories.Store
	archiver ReportArchiver
	now      func() time.Time
}

// NewMatchService builds the lifecycle controller. archiver may be nil.
func NewMatchService(store *repositories.Store, archiver ReportArchiver) *MatchService {
	return &MatchService{store: store, archiver: archiver, now: time.Now}
}

type ScheduleInput struct {
	TeamID      string  `json:"team_id"`
	Date        string  `json:"match_date"`
	Time        *string `json:"match_time,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Schedule creates a new match in the scheduled state
func (s *MatchService) Schedule(ctx context.Context, in ScheduleInput) (*models.InternalMatch, error) {
	teamID := strings.TrimSpace(in.TeamID)
	date := strings.TrimSpace(in.Date)
	if teamID == "" {
		return nil, validationf("team_id is required")
	}
	if date == "" {
		return nil, validationf("match_date is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, validationf("match_date %q must be YYYY-MM-DD", date)
	}
	matchTime := trimmedOrNil(in.Time)
	if matchTime != nil {
		if _, err := time.Parse("15:04", *matchTime); err != nil {
			return nil, validationf("match_time %q must be HH:MM", *matchTime)
		}
	}

	m := &models.InternalMatch{
		ID:          uuid.NewString(),
		TeamID:      teamID,
		MatchDate:   date,
		MatchTime:   matchTime,
		Location:    trimmedOrNil(in.Location),
		Description: trimmedOrNil(in.Description),
		Status:      models.MatchStatusScheduled,
	}
	if err := s.store.Matches.Create(ctx, m); err != nil {
		return nil, gatewayErr(err, "create match")
	}
	log.Info().Str("match_id", m.ID).Str("team_id", teamID).Str("date", date).Msg("internal match scheduled")
	return m, nil
}

func (s *MatchService) Get(ctx context.Context, id string) (*models.InternalMatch, error) {
	m, err := s.store.Matches.Get(ctx, id)
	if err != nil {
		return nil, gatewayErr(err, "get match "+id)
	}
	return m, nil
}

func (s *MatchService) ListByTeam(ctx context.Context, teamID string) ([]models.InternalMatch, error) {
	matches, err := s.store.Matches.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, gatewayErr(err, "list matches")
	}
	return matches, nil
}

// Start moves a scheduled match to in_progress
func (s *MatchService) Start(ctx context.Context, id string) (*models.InternalMatch, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != models.MatchStatusScheduled {
		return nil, transitionf("cannot start match in status %s", m.Status)
	}
	now := s.now()
	if err := s.store.Matches.Update(ctx, id, map[string]interface{}{
		"status":     models.MatchStatusInProgress,
		"started_at": now,
	}); err != nil {
		return nil, gatewayErr(err, "start match")
	}
	m.Status = models.MatchStatusInProgress
	m.StartedAt = &now
	log.Info().Str("match_id", id).Msg("internal match started")
	return m, nil
}

// Complete ends the match and force-completes its open games, leaving their
// scores as last recorded. It returns how many games were forced.
func (s *MatchService) Complete(ctx context.Context, id string) (*models.InternalMatch, int64, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if m.Status != models.MatchStatusInProgress && m.Status != models.MatchStatusScheduled {
		return nil, 0, transitionf("cannot complete match in status %s", m.Status)
	}

	now := s.now()
	var forced int64
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Matches.Update(ctx, id, map[string]interface{}{
			"status":   models.MatchStatusCompleted,
			"ended_at": now,
		}); err != nil {
			return err
		}
		n, err := tx.Games.CompleteOpen(ctx, id, now)
		forced = n
		return err
	})
	if err != nil {
		return nil, 0, gatewayErr(err, "complete match")
	}
	m.Status = models.MatchStatusCompleted
	m.EndedAt = &now

	evt := log.Info()
	if forced > 0 {
		evt = log.Warn()
	}
	evt.Str("match_id", id).Int64("forced_games", forced).Msg("internal match completed")

	if s.archiver != nil {
		if url, err := s.archiver.Archive(ctx, id); err != nil {
			log.Error().Err(err).Str("match_id", id).Msg("report archive failed, sweeper will retry")
		} else if url != "" {
			m.ReportURL = &url
			m.ReportArchivedAt = &now
		}
	}
	return m, forced, nil
}

// Cancel is allowed only before the match starts and does not touch games
func (s *MatchService) Cancel(ctx context.Context, id string) (*models.InternalMatch, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != models.MatchStatusScheduled {
		return nil, transitionf("cannot cancel match in status %s", m.Status)
	}
	if err := s.store.Matches.Update(ctx, id, map[string]interface{}{
		"status": models.MatchStatusCancelled,
	}); err != nil {
		return nil, gatewayErr(err, "cancel match")
	}
	m.Status = models.MatchStatusCancelled
	log.Info().Str("match_id", id).Msg("internal match cancelled")
	return m, nil
}

// Delete removes the match and everything beneath it, whatever its status
func (s *MatchService) Delete(ctx context.Context, id string) error {
	if err := s.store.Matches.Delete(ctx, id); err != nil {
		return gatewayErr(err, "delete match "+id)
	}
	log.Info().Str("match_id", id).Msg("internal match deleted")
	return nil
}

// requireOpenMatch loads the match and fails when it is completed or cancelled
func requireOpenMatch(ctx context.Context, store *repositories.Store, id string) (*models.InternalMatch, error) {
	m, err := store.Matches.Get(ctx, id)
	if err != nil {
		return nil, gatewayErr(err, "get match "+id)
	}
	if m.Status == models.MatchStatusCompleted || m.Status == models.MatchStatusCancelled {
		return nil, transitionf("match is %s", m.Status)
	}
	return m, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
