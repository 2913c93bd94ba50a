package models

import "time"

// MatchTeam is one balanced squad of an internal match (not the club team)
type MatchTeam struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	InternalMatchID string    `json:"internal_match_id" gorm:"not null;index"`
	TeamName        string    `json:"team_name" gorm:"not null"`
	TeamColor       string    `json:"team_color"`
	SortOrder       int       `json:"sort_order" gorm:"column:sort_order;default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	Members []MatchTeamMember `json:"members,omitempty" gorm:"foreignKey:InternalMatchTeamID"`
}

func (MatchTeam) TableName() string { return "internal_match_teams" }

// MatchTeamMember links a squad to the attendance entry it was drawn from
type MatchTeamMember struct {
	ID                  string  `json:"id" gorm:"primaryKey"`
	InternalMatchTeamID string  `json:"internal_match_team_id" gorm:"not null;index"`
	PlayerID            *string `json:"player_id,omitempty"`
	GuestName           *string `json:"guest_name,omitempty"`
	AttendanceID        string  `json:"attendance_id" gorm:"not null;index"`
	SortOrder           int     `json:"sort_order" gorm:"column:sort_order;default:0"`

	PlayerName string `json:"player_name,omitempty" gorm:"-"`
}

func (MatchTeamMember) TableName() string { return "internal_match_team_players" }
