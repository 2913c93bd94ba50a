// models/game.go
package models

import (
	"time"
)

const (
	GameStatusPending    = "pending"
	GameStatusInProgress = "in_progress"
	GameStatusCompleted  = "completed"
)

// Game is one scoreable pairing ("confronto") of two squads inside an internal match
type Game struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	InternalMatchID string     `json:"internal_match_id" gorm:"not null;index"`
	TeamAID         string     `json:"team_a_id" gorm:"column:team_a_id;not null"`
	TeamBID         string     `json:"team_b_id" gorm:"column:team_b_id;not null"`
	GameOrder       int        `json:"game_order" gorm:"not null"`
	ScoreA          int        `json:"score_a" gorm:"column:score_a;default:0"`
	ScoreB          int        `json:"score_b" gorm:"column:score_b;default:0"`
	Status          string     `json:"status" gorm:"type:varchar(16);default:'pending'"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Game) TableName() string { return "internal_match_games" }

// StatLine holds one attendee's goals and assists for one game
type StatLine struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	InternalMatchID string    `json:"internal_match_id" gorm:"not null;index"`
	GameID          *string   `json:"game_id,omitempty" gorm:"index"`
	PlayerID        *string   `json:"player_id,omitempty" gorm:"index"`
	GuestName       *string   `json:"guest_name,omitempty"`
	Goals           int       `json:"goals" gorm:"default:0"`
	Assists         int       `json:"assists" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (StatLine) TableName() string { return "internal_match_stats" }
