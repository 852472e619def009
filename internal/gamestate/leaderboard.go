package gamestate

import "sort"

// DefaultLeaderboardSize is the number of top entries shown.
const DefaultLeaderboardSize = 10

// SortBy selects the leaderboard ordering.
type SortBy string

const (
	// SortPoints orders by points, then player name.
	SortPoints SortBy = "points"
	// SortRank orders by rank, then points, then player name.
	SortRank SortBy = "rank"
)

// Entry is one player's standing.
type Entry struct {
	Player string `json:"player"`
	Points int    `json:"points"`
	Rank   Rank   `json:"rank"`
}

// Board is a computed leaderboard.
type Board struct {
	By  SortBy  `json:"by"`
	Top []Entry `json:"top"`

	// Place is the 1-based position of the requesting player, or 0 when
	// the player has no entry.
	Place  int `json:"place"`
	Points int `json:"points"`
}

// BuildBoard sorts entries and returns the top limit plus the standing of
// player. A non-positive limit uses DefaultLeaderboardSize.
func BuildBoard(entries []Entry, by SortBy, player string, limit int) Board {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if by == SortRank {
			if ao, bo := a.Rank.Order(), b.Rank.Order(); ao != bo {
				return ao > bo
			}
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.Player < b.Player
	})

	board := Board{By: by}
	if by != SortRank {
		board.By = SortPoints
	}
	board.Top = sorted[:min(limit, len(sorted))]
	for i, e := range sorted {
		if player != "" && e.Player == player {
			board.Place = i + 1
			board.Points = e.Points
			break
		}
	}
	return board
}
