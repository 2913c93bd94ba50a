package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versusfut/models"
)

func sp(s string) *string { return &s }

func TestBuildLeaderboard_SumsByIdentity(t *testing.T) {
	lines := []models.StatLine{
		{PlayerID: sp("playerA"), Goals: 2, Assists: 0},
		{PlayerID: sp("playerA"), Goals: 1, Assists: 1},
		{GuestName: sp("guestX"), Goals: 0, Assists: 3},
	}
	lb := BuildLeaderboard(lines)

	require.Len(t, lb.TopScorers, 1)
	assert.Equal(t, "playerA", *lb.TopScorers[0].PlayerID)
	assert.Equal(t, 3, lb.TopScorers[0].Goals)

	require.Len(t, lb.TopAssisters, 2)
	assert.Equal(t, "guestX", *lb.TopAssisters[0].GuestName)
	assert.Equal(t, 3, lb.TopAssisters[0].Assists)
	assert.Equal(t, "playerA", *lb.TopAssisters[1].PlayerID)
	assert.Equal(t, 1, lb.TopAssisters[1].Assists)
}

func TestBuildLeaderboard_TiesKeepFirstAppearance(t *testing.T) {
	lines := []models.StatLine{
		{GuestName: sp("Zeca"), Goals: 1},
		{PlayerID: sp("p2"), Goals: 2},
		{PlayerID: sp("p1"), Goals: 1},
		{GuestName: sp("Ana"), Goals: 1},
	}
	lb := BuildLeaderboard(lines)
	require.Len(t, lb.TopScorers, 4)
	assert.Equal(t, "p2", *lb.TopScorers[0].PlayerID)
	assert.Equal(t, "Zeca", lb.TopScorers[1].Name)
	assert.Equal(t, "p1", *lb.TopScorers[2].PlayerID)
	assert.Equal(t, "Ana", lb.TopScorers[3].Name)
	assert.Empty(t, lb.TopAssisters)
}

func TestBuildLeaderboard_GuestAndPlayerKeysDoNotCollide(t *testing.T) {
	lines := []models.StatLine{
		{PlayerID: sp("joao"), Goals: 1},
		{GuestName: sp("joao"), Goals: 1},
		{GuestName: sp("joao"), Goals: 1},
	}
	lb := BuildLeaderboard(lines)
	require.Len(t, lb.TopScorers, 2)
	assert.Equal(t, 2, lb.TopScorers[0].Goals)
	assert.NotNil(t, lb.TopScorers[0].GuestName)
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	lb := BuildLeaderboard(nil)
	assert.Empty(t, lb.TopScorers)
	assert.Empty(t, lb.TopAssisters)
}
