package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"versusfut/models"
	"versusfut/repositories"
)

// ObjectStore is where archived reports are written; utils.R2Store implements it
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// MatchReport is the archived snapshot of a finished match
type MatchReport struct {
	Match       models.InternalMatch     `json:"match"`
	Attendance  []models.AttendanceEntry `json:"attendance"`
	Squads      []models.MatchTeam       `json:"squads"`
	Games       []models.Game            `json:"games"`
	Summary     *Summary                 `json:"summary"`
	GeneratedAt time.Time                `json:"generated_at"`
}

type ReportService struct {
	store      *repositories.Store
	objects    ObjectStore
	attendance *AttendanceService
	squads     *SquadService
	ledger     *LedgerService
	now        func() time.Time
}

// NewReportService builds reports from the other services. objects may be nil,
// in which case Archive is a no-op.
func NewReportService(store *repositories.Store, objects ObjectStore, attendance *AttendanceService, squads *SquadService, ledger *LedgerService) *ReportService {
	return &ReportService{
		store:      store,
		objects:    objects,
		attendance: attendance,
		squads:     squads,
		ledger:     ledger,
		now:        time.Now,
	}
}

func (s *ReportService) Enabled() bool { return s.objects != nil }

func (s *ReportService) Build(ctx context.Context, matchID string) (*MatchReport, error) {
	m, err := s.store.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "get match "+matchID)
	}
	attendance, err := s.attendance.List(ctx, matchID)
	if err != nil {
		return nil, err
	}
	squads, err := s.squads.List(ctx, matchID)
	if err != nil {
		return nil, err
	}
	games, err := s.ledger.ListGames(ctx, matchID)
	if err != nil {
		return nil, err
	}
	summary, err := s.ledger.Summary(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return &MatchReport{
		Match:       *m,
		Attendance:  attendance,
		Squads:      squads,
		Games:       games,
		Summary:     summary,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// Archive uploads the report of a completed match and records where it went
func (s *ReportService) Archive(ctx context.Context, matchID string) (string, error) {
	if s.objects == nil {
		return "", nil
	}
	report, err := s.Build(ctx, matchID)
	if err != nil {
		return "", err
	}
	if report.Match.Status != models.MatchStatusCompleted {
		return "", transitionf("only completed matches are archived, match is %s", report.Match.Status)
	}

	body, err := json.Marshal(report)
	if err != nil {
		return "", eris.Wrap(err, "encode report")
	}
	key := ReportKey(report.Match)
	url, err := s.objects.Put(ctx, key, body, "application/json")
	if err != nil {
		return "", eris.Wrapf(err, "upload report for match %s", matchID)
	}

	if err := s.store.Matches.Update(ctx, matchID, map[string]interface{}{
		"report_url":         url,
		"report_archived_at": s.now(),
	}); err != nil {
		return "", gatewayErr(err, "mark report archived")
	}
	log.Info().Str("match_id", matchID).Str("key", key).Msg("match report archived")
	return url, nil
}

// ArchivePending archives up to limit completed matches that have no report yet
// and returns how many succeeded.
func (s *ReportService) ArchivePending(ctx context.Context, limit int) (int, error) {
	if s.objects == nil {
		return 0, nil
	}
	pending, err := s.store.Matches.ListUnarchived(ctx, limit)
	if err != nil {
		return 0, gatewayErr(err, "list unarchived matches")
	}
	done := 0
	for _, m := range pending {
		if _, err := s.Archive(ctx, m.ID); err != nil {
			log.Error().Err(err).Str("match_id", m.ID).Msg("report archive failed")
			// pushes the match behind the others on the next sweep
			if err := s.store.Matches.Update(ctx, m.ID, map[string]interface{}{"report_attempted_at": s.now()}); err != nil {
				log.Warn().Err(err).Str("match_id", m.ID).Msg("recording report attempt failed")
			}
			continue
		}
		done++
	}
	return done, nil
}

// ReportKey is reports/<team-slug>/<match-date>-<match-id>.json
func ReportKey(m models.InternalMatch) string {
	return fmt.Sprintf("reports/%s/%s-%s.json", slug.Make(m.TeamID), m.MatchDate, m.ID)
}
