package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer_Idempotent(t *testing.T) {
	f := newFixture(t)
	m := f.schedule(t, "2024-06-01")
	_, err := f.players.Upsert(f.ctx, "team-1", "p1", PlayerInput{Name: "Carlos", Nickname: sp("Carlão")})
	require.NoError(t, err)

	first, created, err := f.attendance.AddPlayer(f.ctx, m.ID, "p1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.Confirmed)
	assert.Equal(t, "Carlão", first.PlayerName)

	again, created, err := f.attendance.AddPlayer(f.ctx, m.ID, "p1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	entries, err := f.attendance.List(f.ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Carlão", entries[0].DisplayName())
}

func TestAddPlayer_Validation(t *testing.T) {
	f := newFixture(t)
	m := f.schedule(t, "2024-06-01")

	_, _, err := f.attendance.AddPlayer(f.ctx, m.ID, "  ")
	requireErrIs(t, err, ErrValidation)

	_, _, err = f.attendance.AddPlayer(f.ctx, "missing", "p1")
	requireErrIs(t, err, ErrNotFound)
}

func TestAddGuests_TrimsAndDropsBlanks(t *testing.T) {
	f := newFixture(t)
	m := f.schedule(t, "2024-06-01")

	entries, err := f.attendance.AddGuests(f.ctx, m.ID, []string{"  Zé ", "", "   ", "Tonho"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Zé", *entries[0].GuestName)
	assert.Equal(t, "Tonho", *entries[1].GuestName)
	assert.Nil(t, entries[0].PlayerID)

	_, err = f.attendance.AddGuests(f.ctx, m.ID, []string{" ", ""})
	requireErrIs(t, err, ErrValidation)

	list, err := f.attendance.List(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRemove_LeavesSquadMembership(t *testing.T) {
	f := newFixture(t)
	m := f.schedule(t, "2024-06-01")
	entries := f.addPlayers(t, m.ID, 4)
	f.confirmSquads(t, m.ID, 2)

	require.NoError(t, f.attendance.Remove(f.ctx, entries[0].ID))
	requireErrIs(t, f.attendance.Remove(f.ctx, entries[0].ID), ErrNotFound)

	roster, err := f.attendance.List(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 3)

	squads, err := f.squads.List(f.ctx, m.ID)
	require.NoError(t, err)
	members := 0
	for _, sq := range squads {
		members += len(sq.Members)
	}
	assert.Equal(t, 4, members)
}

func TestAvailablePlayers_ExcludesRosterAndInactive(t *testing.T) {
	f := newFixture(t)
	m := f.schedule(t, "2024-06-01")
	inactive := false
	for _, p := range []struct {
		id, team, name string
		active         *bool
	}{
		{"p1", "team-1", "João Pé", nil},
		{"p2", "team-1", "Joana", nil},
		{"p3", "team-1", "Marcos", nil},
		{"p4", "team-1", "Josué", &inactive},
		{"p5", "team-2", "João Outro", nil},
	} {
		_, err := f.players.Upsert(f.ctx, p.team, p.id, PlayerInput{Name: p.name, Active: p.active})
		require.NoError(t, err)
	}
	_, _, err := f.attendance.AddPlayer(f.ctx, m.ID, "p2")
	require.NoError(t, err)

	all, err := f.attendance.AvailablePlayers(f.ctx, m.ID, "")
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"p1", "p3"}, ids)

	filtered, err := f.attendance.AvailablePlayers(f.ctx, m.ID, "JOAO pe")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)
}
