package services

import (
	"sort"

	"versusfut/models"
)

// LeaderboardEntry is one attendee's summed tallies. Registered players are keyed
// by id, guests by their exact name (two guests sharing a name collapse into one).
type LeaderboardEntry struct {
	PlayerID  *string `json:"player_id,omitempty"`
	GuestName *string `json:"guest_name,omitempty"`
	Name      string  `json:"name,omitempty"`
	Goals     int     `json:"goals"`
	Assists   int     `json:"assists"`
}

type Leaderboard struct {
	TopScorers   []LeaderboardEntry `json:"top_scorers"`
	TopAssisters []LeaderboardEntry `json:"top_assisters"`
}

// BuildLeaderboard sums stat lines per attendee and ranks them by goals and by
// assists, descending. Ties keep first-appearance order. An attendee with zero
// in a metric is left off that board.
func BuildLeaderboard(lines []models.StatLine) Leaderboard {
	var totals []LeaderboardEntry
	index := make(map[string]int)

	for _, l := range lines {
		key, ok := attendeeKey(l.PlayerID, l.GuestName)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(totals)
			index[key] = i
			totals = append(totals, LeaderboardEntry{PlayerID: l.PlayerID, GuestName: l.GuestName})
			if l.GuestName != nil {
				totals[i].Name = *l.GuestName
			}
		}
		totals[i].Goals += l.Goals
		totals[i].Assists += l.Assists
	}

	return Leaderboard{
		TopScorers:   rank(totals, func(e LeaderboardEntry) int { return e.Goals }),
		TopAssisters: rank(totals, func(e LeaderboardEntry) int { return e.Assists }),
	}
}

func rank(totals []LeaderboardEntry, metric func(LeaderboardEntry) int) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(totals))
	for _, e := range totals {
		if metric(e) > 0 {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return metric(out[i]) > metric(out[j])
	})
	return out
}

// attendeeKey prefers the player id; the prefixes keep a guest named like an id apart
func attendeeKey(playerID, guestName *string) (string, bool) {
	if playerID != nil {
		return "p:" + *playerID, true
	}
	if guestName != nil {
		return "g:" + *guestName, true
	}
	return "", false
}

// fillNames sets Name on registered-player entries from the given lookup
func (lb *Leaderboard) fillNames(names map[string]string) {
	for _, board := range [][]LeaderboardEntry{lb.TopScorers, lb.TopAssisters} {
		for i := range board {
			if board[i].PlayerID != nil {
				board[i].Name = names[*board[i].PlayerID]
			}
		}
	}
}

// playerIDs returns the distinct registered players referenced by lines
func playerIDs(lines []models.StatLine) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, l := range lines {
		if l.PlayerID != nil && !seen[*l.PlayerID] {
			seen[*l.PlayerID] = true
			ids = append(ids, *l.PlayerID)
		}
	}
	return ids
}
