package services

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"versusfut/models"
	"versusfut/repositories"
)

// PlayerService maintains the local mirror of each club's registered players
type PlayerService struct {
	store *repositories.Store
	now   func() time.Time
}

func NewPlayerService(store *repositories.Store) *PlayerService {
	return &PlayerService{store: store, now: time.Now}
}

type PlayerInput struct {
	Name        string  `json:"name"`
	Nickname    *string `json:"nickname,omitempty"`
	Position    *string `json:"position,omitempty"`
	ShirtNumber *int    `json:"shirt_number,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// Upsert creates or refreshes a player. Active defaults to true.
func (s *PlayerService) Upsert(ctx context.Context, teamID, playerID string, in PlayerInput) (*models.Player, error) {
	teamID, playerID = strings.TrimSpace(teamID), strings.TrimSpace(playerID)
	name := strings.TrimSpace(in.Name)
	switch {
	case teamID == "":
		return nil, validationf("team_id is required")
	case playerID == "":
		return nil, validationf("player_id is required")
	case name == "":
		return nil, validationf("name is required")
	}
	if in.ShirtNumber != nil && *in.ShirtNumber < 0 {
		return nil, validationf("shirt_number cannot be negative")
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := s.now()
	p := &models.Player{
		ID:          playerID,
		TeamID:      teamID,
		Name:        name,
		Nickname:    trimmedOrNil(in.Nickname),
		Position:    trimmedOrNil(in.Position),
		ShirtNumber: in.ShirtNumber,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Players.Upsert(ctx, p); err != nil {
		return nil, gatewayErr(err, "upsert player")
	}
	return p, nil
}

// Mirror stores a player exactly as received from the directory, keeping its timestamps
func (s *PlayerService) Mirror(ctx context.Context, p *models.Player) error {
	if p.ID == "" || p.TeamID == "" {
		return validationf("mirrored player needs id and team_id")
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = s.now()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	return gatewayErr(s.store.Players.Upsert(ctx, p), "mirror player")
}

// LastSynced returns the newest updated_at in the mirror, zero when it is empty
func (s *PlayerService) LastSynced(ctx context.Context) (time.Time, error) {
	p, err := s.store.Players.LatestUpdate(ctx)
	if err != nil {
		if eris.Is(err, repositories.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, gatewayErr(err, "latest player update")
	}
	return p.UpdatedAt, nil
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	players, err := s.store.Players.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, gatewayErr(err, "list players")
	}
	return players, nil
}
