package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versusfut/models"
)

func TestPlayerService_Upsert(t *testing.T) {
	f := newFixture(t)

	_, err := f.players.Upsert(f.ctx, "team-1", "p1", PlayerInput{Name: "  "})
	requireErrIs(t, err, ErrValidation)
	_, err = f.players.Upsert(f.ctx, "", "p1", PlayerInput{Name: "Ana"})
	requireErrIs(t, err, ErrValidation)
	neg := -3
	_, err = f.players.Upsert(f.ctx, "team-1", "p1", PlayerInput{Name: "Ana", ShirtNumber: &neg})
	requireErrIs(t, err, ErrValidation)

	p, err := f.players.Upsert(f.ctx, "team-1", "p1", PlayerInput{Name: " Ana ", Position: sp("ZAG")})
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, "Ana", p.Name)

	off := false
	_, err = f.players.Upsert(f.ctx, "team-1", "p1", PlayerInput{Name: "Ana Maria", Active: &off})
	require.NoError(t, err)

	players, err := f.players.ListByTeam(f.ctx, "team-1")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Ana Maria", players[0].Name)
	assert.False(t, players[0].Active)
	assert.Nil(t, players[0].Position)
}

func TestPlayerService_MirrorAndLastSynced(t *testing.T) {
	f := newFixture(t)

	since, err := f.players.LastSynced(f.ctx)
	require.NoError(t, err)
	assert.True(t, since.IsZero())

	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.players.Mirror(f.ctx, &models.Player{ID: "p9", TeamID: "team-1", Name: "Bia", Active: true, UpdatedAt: stamp}))
	requireErrIs(t, f.players.Mirror(f.ctx, &models.Player{Name: "no id"}), ErrValidation)

	since, err = f.players.LastSynced(f.ctx)
	require.NoError(t, err)
	assert.True(t, stamp.Equal(since), "got %v", since)
}
