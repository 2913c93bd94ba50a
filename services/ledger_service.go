package services

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"versusfut/models"
	"versusfut/repositories"
)

type LedgerService struct {
	store *repositories.Store
	rand  *lockedRand
	now   func() time.Time
}

// NewLedgerService builds the game ledger. A nil rng is seeded from the clock.
func NewLedgerService(store *repositories.Store, rng *rand.Rand) *LedgerService {
	return &LedgerService{store: store, rand: newLockedRand(rng), now: time.Now}
}

// StatEntry is one attendee's tally submitted with a game result.
// Exactly one of PlayerID and GuestName must be set.
type StatEntry struct {
	PlayerID  *string `json:"player_id,omitempty"`
	GuestName *string `json:"guest_name,omitempty"`
	Goals     int     `json:"goals"`
	Assists   int     `json:"assists"`
}

type ResultInput struct {
	ScoreA int         `json:"score_a"`
	ScoreB int         `json:"score_b"`
	Stats  []StatEntry `json:"stats"`
}

type Summary struct {
	TotalGames     int                `json:"total_games"`
	CompletedGames int                `json:"completed_games"`
	TotalGoals     int                `json:"total_goals"`
	TopScorers     []LeaderboardEntry `json:"top_scorers"`
	TopAssisters   []LeaderboardEntry `json:"top_assisters"`
}

// AddGame appends a pending 0-0 game between two distinct squads of the match
func (s *LedgerService) AddGame(ctx context.Context, matchID, teamA, teamB string) (*models.Game, error) {
	teamA, teamB = strings.TrimSpace(teamA), strings.TrimSpace(teamB)
	if teamA == "" || teamB == "" {
		return nil, validationf("team_a_id and team_b_id are required")
	}
	if teamA == teamB {
		return nil, validationf("a squad cannot play against itself")
	}
	if _, err := requireOpenMatch(ctx, s.store, matchID); err != nil {
		return nil, err
	}
	squads, err := s.store.Squads.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list squads")
	}
	known := make(map[string]bool, len(squads))
	for _, sq := range squads {
		known[sq.ID] = true
	}
	if !known[teamA] || !known[teamB] {
		return nil, validationf("both squads must belong to match %s", matchID)
	}
	return s.createGame(ctx, matchID, teamA, teamB)
}

// AddRandomGame pairs two distinct squads drawn uniformly at random
func (s *LedgerService) AddRandomGame(ctx context.Context, matchID string) (*models.Game, error) {
	if _, err := requireOpenMatch(ctx, s.store, matchID); err != nil {
		return nil, err
	}
	squads, err := s.store.Squads.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list squads")
	}
	if len(squads) < 2 {
		return nil, validationf("need at least two squads to pair, match has %d", len(squads))
	}

	var a, b int
	s.rand.with(func(r *rand.Rand) {
		a = r.Intn(len(squads))
		b = r.Intn(len(squads) - 1)
		if b >= a {
			b++
		}
	})
	return s.createGame(ctx, matchID, squads[a].ID, squads[b].ID)
}

func (s *LedgerService) createGame(ctx context.Context, matchID, teamA, teamB string) (*models.Game, error) {
	order, err := s.store.Games.NextOrder(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "next game order")
	}
	g := &models.Game{
		ID:              uuid.NewString(),
		InternalMatchID: matchID,
		TeamAID:         teamA,
		TeamBID:         teamB,
		GameOrder:       order,
		Status:          models.GameStatusPending,
	}
	if err := s.store.Games.Create(ctx, g); err != nil {
		return nil, gatewayErr(err, "create game")
	}
	log.Info().Str("match_id", matchID).Str("game_id", g.ID).Int("order", order).Msg("game added")
	return g, nil
}

// StartGame moves a pending game to in_progress
func (s *LedgerService) StartGame(ctx context.Context, gameID string) (*models.Game, error) {
	g, err := s.store.Games.Get(ctx, gameID)
	if err != nil {
		return nil, gatewayErr(err, "get game "+gameID)
	}
	if g.Status != models.GameStatusPending {
		return nil, transitionf("cannot start game in status %s", g.Status)
	}
	if _, err := requireOpenMatch(ctx, s.store, g.InternalMatchID); err != nil {
		return nil, err
	}
	now := s.now()
	ok, err := s.store.Games.UpdateIfStatus(ctx, gameID, models.GameStatusPending, map[string]interface{}{
		"status":     models.GameStatusInProgress,
		"started_at": now,
	})
	if err != nil {
		return nil, gatewayErr(err, "start game")
	}
	if !ok {
		return nil, transitionf("game %s is no longer pending", gameID)
	}
	g.Status = models.GameStatusInProgress
	g.StartedAt = &now
	log.Info().Str("game_id", gameID).Msg("game started")
	return g, nil
}

// RecordResult closes an in-progress game with its final score and the
// non-zero stat lines, all in one transaction.
func (s *LedgerService) RecordResult(ctx context.Context, gameID string, in ResultInput) (*models.Game, []models.StatLine, error) {
	if in.ScoreA < 0 || in.ScoreB < 0 {
		return nil, nil, validationf("scores cannot be negative")
	}
	entries, err := normalizeStats(in.Stats)
	if err != nil {
		return nil, nil, err
	}

	g, err := s.store.Games.Get(ctx, gameID)
	if err != nil {
		return nil, nil, gatewayErr(err, "get game "+gameID)
	}
	if g.Status != models.GameStatusInProgress {
		return nil, nil, transitionf("cannot record result for game in status %s", g.Status)
	}
	if _, err := requireOpenMatch(ctx, s.store, g.InternalMatchID); err != nil {
		return nil, nil, err
	}

	now := s.now()
	lines := make([]models.StatLine, 0, len(entries))
	for _, e := range entries {
		if e.Goals == 0 && e.Assists == 0 {
			continue
		}
		// one microsecond apart so created_at ordering replays entry order
		createdAt := now.Add(time.Duration(len(lines)) * time.Microsecond)
		lines = append(lines, models.StatLine{
			ID:              uuid.NewString(),
			InternalMatchID: g.InternalMatchID,
			GameID:          &g.ID,
			PlayerID:        e.PlayerID,
			GuestName:       e.GuestName,
			Goals:           e.Goals,
			Assists:         e.Assists,
			CreatedAt:       createdAt,
		})
	}

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		// a concurrent submit that already closed the game matches no row here
		ok, err := tx.Games.UpdateIfStatus(ctx, gameID, models.GameStatusInProgress, map[string]interface{}{
			"score_a":  in.ScoreA,
			"score_b":  in.ScoreB,
			"status":   models.GameStatusCompleted,
			"ended_at": now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return transitionf("game %s is no longer in progress", gameID)
		}
		return tx.Stats.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, nil, gatewayErr(err, "record result")
	}

	g.ScoreA, g.ScoreB = in.ScoreA, in.ScoreB
	g.Status = models.GameStatusCompleted
	g.EndedAt = &now
	log.Info().
		Str("match_id", g.InternalMatchID).
		Str("game_id", gameID).
		Int("score_a", in.ScoreA).
		Int("score_b", in.ScoreB).
		Int("stat_lines", len(lines)).
		Msg("game result recorded")
	return g, lines, nil
}

// normalizeStats trims guest names and rejects malformed or duplicate entries
func normalizeStats(stats []StatEntry) ([]StatEntry, error) {
	out := make([]StatEntry, 0, len(stats))
	seen := make(map[string]bool, len(stats))
	for i, e := range stats {
		e.PlayerID = trimmedOrNil(e.PlayerID)
		e.GuestName = trimmedOrNil(e.GuestName)
		if (e.PlayerID == nil) == (e.GuestName == nil) {
			return nil, validationf("stat %d must name exactly one of player_id or guest_name", i+1)
		}
		if e.Goals < 0 || e.Assists < 0 {
			return nil, validationf("stat %d has negative goals or assists", i+1)
		}
		key, _ := attendeeKey(e.PlayerID, e.GuestName)
		if seen[key] {
			return nil, validationf("stat %d repeats an attendee already listed", i+1)
		}
		seen[key] = true
		out = append(out, e)
	}
	return out, nil
}

func (s *LedgerService) ListGames(ctx context.Context, matchID string) ([]models.Game, error) {
	if _, err := s.store.Matches.Get(ctx, matchID); err != nil {
		return nil, gatewayErr(err, "get match "+matchID)
	}
	games, err := s.store.Games.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list games")
	}
	return games, nil
}

// Summary totals the match's games and ranks its scorers and assisters
func (s *LedgerService) Summary(ctx context.Context, matchID string) (*Summary, error) {
	games, err := s.ListGames(ctx, matchID)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.Stats.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, gatewayErr(err, "list stats")
	}

	sum := &Summary{TotalGames: len(games)}
	for _, g := range games {
		sum.TotalGoals += g.ScoreA + g.ScoreB
		if g.Status == models.GameStatusCompleted {
			sum.CompletedGames++
		}
	}
	board := BuildLeaderboard(lines)
	board.fillNames(playerNames(ctx, s.store, playerIDs(lines)))
	sum.TopScorers = board.TopScorers
	sum.TopAssisters = board.TopAssisters
	return sum, nil
}
