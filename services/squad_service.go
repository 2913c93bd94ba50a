package services

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"versusfut/config"
	"versusfut/models"
	"versusfut/repositories"
)

// lockedRand serialises access to a *rand.Rand shared by request goroutines
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(rng *rand.Rand) *lockedRand {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &lockedRand{rng: rng}
}

func (l *lockedRand) with(fn func(*rand.Rand)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.rng)
}

type SquadService struct {
	store    *repositories.Store
	settings config.Settings
	rand     *lockedRand
}

// NewSquadService wires the balancer to the roster. A nil rng is seeded from the clock.
func NewSquadService(store *repositories.Store, settings config.Settings, rng *rand.Rand) *SquadService {
	return &SquadService{store: store, settings: settings, rand: newLockedRand(rng)}
}

// Preview draws squads from the confirmed roster without persisting anything.
// playersPerTeam <= 0 falls back to the configured default.
func (s *SquadService) Preview(ctx context.Context, matchID string, playersPerTeam int) ([]SquadDraft, error) {
	if playersPerTeam <= 0 {
		playersPerTeam = s.settings.DefaultPlayersPerTeam
	}
	if _, err := s.store.Matches.Get(ctx, matchID); err != nil {
		return nil, gatewayErr(err, "get match "+matchID)
	}
	entries, err := s.store.Attendance.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list attendance")
	}

	roster := make([]models.AttendanceEntry, 0, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Confirmed {
			continue
		}
		roster = append(roster, e)
		if e.PlayerID != nil {
			ids = append(ids, *e.PlayerID)
		}
	}
	names := playerNames(ctx, s.store, ids)
	for i := range roster {
		if roster[i].PlayerID != nil {
			roster[i].PlayerName = names[*roster[i].PlayerID]
		}
	}

	var drafts []SquadDraft
	s.rand.with(func(r *rand.Rand) {
		drafts, err = Balance(roster, playersPerTeam, r, s.settings.Palette)
	})
	return drafts, err
}

// Confirm replaces every persisted squad of the match with drafts in one transaction
func (s *SquadService) Confirm(ctx context.Context, matchID string, drafts []SquadDraft) ([]models.MatchTeam, error) {
	if _, err := requireOpenMatch(ctx, s.store, matchID); err != nil {
		return nil, err
	}
	// games reference squad ids, so squads are frozen once the first game exists
	games, err := s.store.Games.CountByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "count games")
	}
	if games > 0 {
		return nil, transitionf("match %s already has %d games, squads can no longer change", matchID, games)
	}
	entries, err := s.store.Attendance.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list attendance")
	}
	roster := make(map[string]models.AttendanceEntry, len(entries))
	for _, e := range entries {
		roster[e.ID] = e
	}

	teams, err := s.buildTeams(matchID, drafts, roster)
	if err != nil {
		return nil, err
	}
	if err := s.store.Squads.Replace(ctx, matchID, teams); err != nil {
		return nil, gatewayErr(err, "replace squads")
	}
	log.Info().Str("match_id", matchID).Int("squads", len(teams)).Msg("squads confirmed")
	return s.List(ctx, matchID)
}

func (s *SquadService) buildTeams(matchID string, drafts []SquadDraft, roster map[string]models.AttendanceEntry) ([]models.MatchTeam, error) {
	if len(drafts) < 2 {
		return nil, validationf("at least two squads are required, got %d", len(drafts))
	}
	palette := s.settings.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	seen := make(map[string]bool)
	teams := make([]models.MatchTeam, 0, len(drafts))
	for i, d := range drafts {
		if len(d.Members) == 0 {
			return nil, validationf("squad %d has no members", i+1)
		}
		team := models.MatchTeam{
			ID:              uuid.NewString(),
			InternalMatchID: matchID,
			TeamName:        strings.TrimSpace(d.TeamName),
			TeamColor:       strings.TrimSpace(d.TeamColor),
			SortOrder:       i,
			Members:         make([]models.MatchTeamMember, 0, len(d.Members)),
		}
		if team.TeamName == "" {
			team.TeamName = SquadName(i)
		}
		if team.TeamColor == "" {
			team.TeamColor = palette[i%len(palette)]
		}
		for j, m := range d.Members {
			entry, ok := roster[m.AttendanceID]
			if !ok {
				return nil, validationf("attendance %q is not on this match's roster", m.AttendanceID)
			}
			if seen[entry.ID] {
				return nil, validationf("attendance %q is in more than one squad", entry.ID)
			}
			seen[entry.ID] = true
			// identity always comes from the roster row, never from the draft
			team.Members = append(team.Members, models.MatchTeamMember{
				ID:                  uuid.NewString(),
				InternalMatchTeamID: team.ID,
				PlayerID:            entry.PlayerID,
				GuestName:           entry.GuestName,
				AttendanceID:        entry.ID,
				SortOrder:           j,
			})
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// List returns the persisted squads with member names resolved
func (s *SquadService) List(ctx context.Context, matchID string) ([]models.MatchTeam, error) {
	teams, err := s.store.Squads.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list squads")
	}
	var ids []string
	for _, t := range teams {
		for _, m := range t.Members {
			if m.PlayerID != nil {
				ids = append(ids, *m.PlayerID)
			}
		}
	}
	names := playerNames(ctx, s.store, ids)
	for i := range teams {
		for j := range teams[i].Members {
			m := &teams[i].Members[j]
			switch {
			case m.GuestName != nil:
				m.PlayerName = *m.GuestName
			case m.PlayerID != nil:
				m.PlayerName = names[*m.PlayerID]
			}
		}
	}
	return teams, nil
}
