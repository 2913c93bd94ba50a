package services

import (
	"context"
	"strings"
	"time"

	"versusfut/repositories"
)

type StatsService struct {
	store *repositories.Store
}

func NewStatsService(store *repositories.Store) *StatsService {
	return &StatsService{store: store}
}

type SeasonStats struct {
	TeamID        string             `json:"team_id"`
	From          string             `json:"from,omitempty"`
	To            string             `json:"to,omitempty"`
	MatchesPlayed int                `json:"matches_played"`
	TotalGames    int                `json:"total_games"`
	TotalGoals    int                `json:"total_goals"`
	TopScorers    []LeaderboardEntry `json:"top_scorers"`
	TopAssisters  []LeaderboardEntry `json:"top_assisters"`
}

// TeamSeason aggregates every completed internal match of a club team whose
// date falls within [from, to]. Either bound may be empty.
func (s *StatsService) TeamSeason(ctx context.Context, teamID, from, to string) (*SeasonStats, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, validationf("team_id is required")
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, validationf("date %q must be YYYY-MM-DD", d)
		}
	}
	if from != "" && to != "" && from > to {
		return nil, validationf("from %s is after to %s", from, to)
	}

	matches, err := s.store.Matches.ListCompletedByTeam(ctx, teamID, from, to)
	if err != nil {
		return nil, gatewayErr(err, "list completed matches")
	}
	out := &SeasonStats{TeamID: teamID, From: from, To: to, MatchesPlayed: len(matches)}
	if len(matches) == 0 {
		out.TopScorers = []LeaderboardEntry{}
		out.TopAssisters = []LeaderboardEntry{}
		return out, nil
	}

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
		games, err := s.store.Games.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, gatewayErr(err, "list games")
		}
		out.TotalGames += len(games)
		for _, g := range games {
			out.TotalGoals += g.ScoreA + g.ScoreB
		}
	}

	lines, err := s.store.Stats.ListByMatches(ctx, ids)
	if err != nil {
		return nil, gatewayErr(err, "list stats")
	}
	board := BuildLeaderboard(lines)
	board.fillNames(playerNames(ctx, s.store, playerIDs(lines)))
	out.TopScorers = board.TopScorers
	out.TopAssisters = board.TopAssisters
	return out, nil
}
