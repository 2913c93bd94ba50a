package services

import (
	"math/rand"
	"time"

	"github.com/rotisserie/eris"

	"versusfut/models"
)

// DefaultPalette is cycled when more squads than colors are drawn
var DefaultPalette = []string{
	"#EF4444", // red
	"#3B82F6", // blue
	"#22C55E", // green
	"#EAB308", // yellow
	"#A855F7", // purple
	"#F97316", // orange
	"#EC4899", // pink
	"#14B8A6", // teal
}

// SquadDraft is an unsaved squad produced by Balance
type SquadDraft struct {
	TeamName  string        `json:"team_name"`
	TeamColor string        `json:"team_color"`
	Members   []DraftMember `json:"members"`
}

type DraftMember struct {
	AttendanceID string  `json:"attendance_id"`
	PlayerID     *string `json:"player_id,omitempty"`
	GuestName    *string `json:"guest_name,omitempty"`
	Name         string  `json:"name,omitempty"`
}

// Balance shuffles the roster and splits it into ceil(n/playersPerTeam) squads
// whose sizes differ by at most one. The roster slice is not modified.
func Balance(roster []models.AttendanceEntry, playersPerTeam int, rng *rand.Rand, palette []string) ([]SquadDraft, error) {
	if playersPerTeam < 1 {
		return nil, validationf("players per team must be at least 1, got %d", playersPerTeam)
	}
	n := len(roster)
	if n < playersPerTeam*2 {
		return nil, eris.Wrapf(ErrInsufficientPlayers, "%d attendees, need at least %d", n, playersPerTeam*2)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	shuffled := make([]models.AttendanceEntry, n)
	copy(shuffled, roster)
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	numTeams := (n + playersPerTeam - 1) / playersPerTeam
	base, extra := n/numTeams, n%numTeams

	drafts := make([]SquadDraft, numTeams)
	next := 0
	for t := 0; t < numTeams; t++ {
		size := base
		if t < extra {
			size++
		}
		members := make([]DraftMember, 0, size)
		for _, entry := range shuffled[next : next+size] {
			members = append(members, DraftMember{
				AttendanceID: entry.ID,
				PlayerID:     entry.PlayerID,
				GuestName:    entry.GuestName,
				Name:         entry.DisplayName(),
			})
		}
		next += size
		drafts[t] = SquadDraft{
			TeamName:  SquadName(t),
			TeamColor: palette[t%len(palette)],
			Members:   members,
		}
	}
	return drafts, nil
}

// SquadName returns "Time A".."Time Z", then "Time AA", "Time AB", ...
func SquadName(index int) string {
	label := ""
	for i := index; i >= 0; i = i/26 - 1 {
		label = string(rune('A'+i%26)) + label
	}
	return "Time " + label
}
