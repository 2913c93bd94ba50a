package models

import (
	"time"
)

// Internal match lifecycle states
const (
	MatchStatusScheduled  = "scheduled"
	MatchStatusInProgress = "in_progress"
	MatchStatusCompleted  = "completed"
	MatchStatusCancelled  = "cancelled"
)

// InternalMatch is one scheduled or played internal event of a club team
type InternalMatch struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	TeamID      string     `json:"team_id" gorm:"not null;index"`
	MatchDate   string     `json:"match_date" gorm:"not null;index"` // YYYY-MM-DD
	MatchTime   *string    `json:"match_time,omitempty"`             // HH:MM
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(16);default:'scheduled';index"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`

	// Archived JSON report (see ReportService)
	ReportURL         *string    `json:"report_url,omitempty"`
	ReportArchivedAt  *time.Time `json:"report_archived_at,omitempty" gorm:"index"`
	ReportAttemptedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (InternalMatch) TableName() string { return "internal_matches" }

// AttendanceEntry is one participant of an internal match: a registered player or a guest, never both
type AttendanceEntry struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	InternalMatchID string    `json:"internal_match_id" gorm:"not null;index;uniqueIndex:idx_attendance_match_player"`
	PlayerID        *string   `json:"player_id,omitempty" gorm:"uniqueIndex:idx_attendance_match_player"`
	GuestName       *string   `json:"guest_name,omitempty"`
	Confirmed       bool      `json:"confirmed"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Resolved for responses only
	PlayerName string `json:"player_name,omitempty" gorm:"-"`
}

func (AttendanceEntry) TableName() string { return "internal_match_attendance" }

// DisplayName returns the guest name or the resolved player name
func (a AttendanceEntry) DisplayName() string {
	if a.GuestName != nil {
		return *a.GuestName
	}
	return a.PlayerName
}
