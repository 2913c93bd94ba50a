package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playMatch runs one completed match with a single game and the given stats
func playMatch(t *testing.T, f *fixture, date string, scoreA, scoreB int, stats []StatEntry) string {
	t.Helper()
	m := f.schedule(t, date)
	f.addPlayers(t, m.ID, 4)
	teams := f.confirmSquads(t, m.ID, 2)
	_, err := f.matches.Start(f.ctx, m.ID)
	require.NoError(t, err)
	g, err := f.ledger.AddGame(f.ctx, m.ID, teams[0].ID, teams[1].ID)
	require.NoError(t, err)
	_, err = f.ledger.StartGame(f.ctx, g.ID)
	require.NoError(t, err)
	_, _, err = f.ledger.RecordResult(f.ctx, g.ID, ResultInput{ScoreA: scoreA, ScoreB: scoreB, Stats: stats})
	require.NoError(t, err)
	_, _, err = f.matches.Complete(f.ctx, m.ID)
	require.NoError(t, err)
	return m.ID
}

func TestTeamSeason_AggregatesCompletedMatches(t *testing.T) {
	f := newFixture(t)
	playMatch(t, f, "2024-03-01", 2, 1, []StatEntry{{PlayerID: sp("player1"), Goals: 2}, {GuestName: sp("Zé"), Goals: 1, Assists: 1}})
	playMatch(t, f, "2024-04-01", 1, 0, []StatEntry{{GuestName: sp("Zé"), Goals: 1}})
	playMatch(t, f, "2024-09-01", 4, 4, []StatEntry{{PlayerID: sp("player2"), Goals: 5}})
	// scheduled matches never count
	f.schedule(t, "2024-05-01")

	all, err := f.stats.TeamSeason(f.ctx, "team-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.MatchesPlayed)
	assert.Equal(t, 3, all.TotalGames)
	assert.Equal(t, 12, all.TotalGoals)
	require.Len(t, all.TopScorers, 3)
	assert.Equal(t, "Jogador 2", all.TopScorers[0].Name)

	firstHalf, err := f.stats.TeamSeason(f.ctx, "team-1", "2024-01-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, 2, firstHalf.MatchesPlayed)
	require.Len(t, firstHalf.TopScorers, 2)
	// 2 goals each; player1 appeared first
	assert.Equal(t, "player1", *firstHalf.TopScorers[0].PlayerID)
	assert.Equal(t, "Zé", firstHalf.TopScorers[1].Name)
	require.Len(t, firstHalf.TopAssisters, 1)
	assert.Equal(t, "Zé", *firstHalf.TopAssisters[0].GuestName)
}

func TestTeamSeason_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := f.stats.TeamSeason(f.ctx, "", "", "")
	requireErrIs(t, err, ErrValidation)
	_, err = f.stats.TeamSeason(f.ctx, "team-1", "2024/01/01", "")
	requireErrIs(t, err, ErrValidation)
	_, err = f.stats.TeamSeason(f.ctx, "team-1", "2024-06-01", "2024-01-01")
	requireErrIs(t, err, ErrValidation)

	empty, err := f.stats.TeamSeason(f.ctx, "team-9", "", "")
	require.NoError(t, err)
	assert.Zero(t, empty.MatchesPlayed)
	assert.NotNil(t, empty.TopScorers)
}
