package models

import "time"

// Player is the local mirror of a club's registered player (kept fresh by PlayerSyncWorker)
type Player struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	TeamID      string    `json:"team_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Nickname    *string   `json:"nickname,omitempty"`
	Position    *string   `json:"position,omitempty"`
	ShirtNumber *int      `json:"shirt_number,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayName prefers the nickname, as the roster screens do
func (p Player) DisplayName() string {
	if p.Nickname != nil && *p.Nickname != "" {
		return *p.Nickname
	}
	return p.Name
}
