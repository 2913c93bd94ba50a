package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"versusfut/models"
	"versusfut/repositories"
	"versusfut/utils"
)

type AttendanceService struct {
	store *repositories.Store
}

func NewAttendanceService(store *repositories.Store) *AttendanceService {
	return &AttendanceService{store: store}
}

// AddPlayer confirms a registered player for the match. When the player is
// already on the roster the existing entry is returned with created=false.
func (s *AttendanceService) AddPlayer(ctx context.Context, matchID, playerID string) (*models.AttendanceEntry, bool, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, false, validationf("player_id is required")
	}
	if _, err := s.store.Matches.Get(ctx, matchID); err != nil {
		return nil, false, gatewayErr(err, "get match "+matchID)
	}

	existing, err := s.store.Attendance.FindByPlayer(ctx, matchID, playerID)
	if err == nil {
		return existing, false, nil
	}
	if !eris.Is(err, repositories.ErrNotFound) {
		return nil, false, gatewayErr(err, "find attendance")
	}

	entry := &models.AttendanceEntry{
		ID:              uuid.NewString(),
		InternalMatchID: matchID,
		PlayerID:        &playerID,
		Confirmed:       true,
	}
	if err := s.store.Attendance.Create(ctx, entry); err != nil {
		return nil, false, gatewayErr(err, "add player")
	}
	s.resolve(ctx, []*models.AttendanceEntry{entry})
	log.Info().Str("match_id", matchID).Str("player_id", playerID).Msg("player added to roster")
	return entry, true, nil
}

// AddGuests inserts one confirmed entry per non-blank name in a single batch
func (s *AttendanceService) AddGuests(ctx context.Context, matchID string, names []string) ([]models.AttendanceEntry, error) {
	entries := make([]models.AttendanceEntry, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		entries = append(entries, models.AttendanceEntry{
			ID:              uuid.NewString(),
			InternalMatchID: matchID,
			GuestName:       &name,
			Confirmed:       true,
		})
	}
	if len(entries) == 0 {
		return nil, validationf("at least one non-blank guest name is required")
	}
	if _, err := s.store.Matches.Get(ctx, matchID); err != nil {
		return nil, gatewayErr(err, "get match "+matchID)
	}
	if err := s.store.Attendance.CreateBatch(ctx, entries); err != nil {
		return nil, gatewayErr(err, "add guests")
	}
	log.Info().Str("match_id", matchID).Int("guests", len(entries)).Msg("guests added to roster")
	return entries, nil
}

// Remove deletes the entry only. Squad members pointing at it are left as is.
func (s *AttendanceService) Remove(ctx context.Context, entryID string) error {
	if err := s.store.Attendance.Delete(ctx, entryID); err != nil {
		return gatewayErr(err, "remove attendance "+entryID)
	}
	return nil
}

// List returns the roster in insertion order with player names resolved
func (s *AttendanceService) List(ctx context.Context, matchID string) ([]models.AttendanceEntry, error) {
	if _, err := s.store.Matches.Get(ctx, matchID); err != nil {
		return nil, gatewayErr(err, "get match "+matchID)
	}
	entries, err := s.store.Attendance.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list attendance")
	}
	ptrs := make([]*models.AttendanceEntry, len(entries))
	for i := range entries {
		ptrs[i] = &entries[i]
	}
	s.resolve(ctx, ptrs)
	return entries, nil
}

// AvailablePlayers lists active players of the match's club team that are not
// on the roster yet. query filters by name or nickname, ignoring case and accents.
func (s *AttendanceService) AvailablePlayers(ctx context.Context, matchID, query string) ([]models.Player, error) {
	m, err := s.store.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "get match "+matchID)
	}
	players, err := s.store.Players.ListByTeam(ctx, m.TeamID)
	if err != nil {
		return nil, gatewayErr(err, "list players")
	}
	roster, err := s.store.Attendance.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list attendance")
	}

	present := make(map[string]bool, len(roster))
	for _, e := range roster {
		if e.PlayerID != nil {
			present[*e.PlayerID] = true
		}
	}
	needle := utils.FoldName(query)

	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if !p.Active || present[p.ID] {
			continue
		}
		if needle != "" && !matchesName(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func matchesName(p models.Player, needle string) bool {
	if strings.Contains(utils.FoldName(p.Name), needle) {
		return true
	}
	return p.Nickname != nil && strings.Contains(utils.FoldName(*p.Nickname), needle)
}

// resolve fills PlayerName from the player mirror; lookup failures only cost the name
func (s *AttendanceService) resolve(ctx context.Context, entries []*models.AttendanceEntry) {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.PlayerID != nil {
			ids = append(ids, *e.PlayerID)
		}
	}
	names := playerNames(ctx, s.store, ids)
	for _, e := range entries {
		if e.PlayerID != nil {
			e.PlayerName = names[*e.PlayerID]
		}
	}
}

// playerNames maps player id to display name for whatever ids the mirror knows
func playerNames(ctx context.Context, store *repositories.Store, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	players, err := store.Players.GetMany(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Msg("player name lookup failed")
		return names
	}
	for _, p := range players {
		names[p.ID] = p.DisplayName()
	}
	return names
}
