package services

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"

	"versusfut/config"
	"versusfut/models"
	"versusfut/repositories"
	"versusfut/testutil"
)

type fixture struct {
	ctx        context.Context
	store      *repositories.Store
	matches    *MatchService
	attendance *AttendanceService
	squads     *SquadService
	ledger     *LedgerService
	stats      *StatsService
	players    *PlayerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore(t)
	return &fixture{
		ctx:        context.Background(),
		store:      store,
		matches:    NewMatchService(store, nil),
		attendance: NewAttendanceService(store),
		squads:     NewSquadService(store, config.Settings{DefaultPlayersPerTeam: 4}, rand.New(rand.NewSource(11))),
		ledger:     NewLedgerService(store, rand.New(rand.NewSource(5))),
		stats:      NewStatsService(store),
		players:    NewPlayerService(store),
	}
}

func (f *fixture) schedule(t *testing.T, date string) *models.InternalMatch {
	t.Helper()
	m, err := f.matches.Schedule(f.ctx, ScheduleInput{TeamID: "team-1", Date: date})
	require.NoError(t, err)
	return m
}

// addPlayers registers n players in the mirror and confirms them for the match
func (f *fixture) addPlayers(t *testing.T, matchID string, n int) []models.AttendanceEntry {
	t.Helper()
	out := make([]models.AttendanceEntry, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("player%d", i)
		_, err := f.players.Upsert(f.ctx, "team-1", id, PlayerInput{Name: fmt.Sprintf("Jogador %d", i)})
		require.NoError(t, err)
		entry, _, err := f.attendance.AddPlayer(f.ctx, matchID, id)
		require.NoError(t, err)
		out = append(out, *entry)
	}
	return out
}

// confirmSquads previews and persists squads, returning them in sort order
func (f *fixture) confirmSquads(t *testing.T, matchID string, perTeam int) []models.MatchTeam {
	t.Helper()
	drafts, err := f.squads.Preview(f.ctx, matchID, perTeam)
	require.NoError(t, err)
	teams, err := f.squads.Confirm(f.ctx, matchID, drafts)
	require.NoError(t, err)
	return teams
}

func requireErrIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, eris.Is(err, target), "expected %v, got %v", target, err)
}
