package api

import (
	"net/http"
	"strings"

	"github.com/abhisek/leitner/internal/gamestate"
)

type PlayerResponse struct {
	Player       string         `json:"player"`
	Points       int            `json:"points"`
	Rank         gamestate.Rank `json:"rank"`
	Icon         string         `json:"icon"`
	NextRankAt   int            `json:"next_rank_at,omitempty"`
	AnswerStreak int            `json:"answer_streak"`
	DailyStreak  int            `json:"daily_streak"`
	LastActive   string         `json:"last_active,omitempty"`
}

// GET /leaderboard?by=points|rank&player=
func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	by := gamestate.SortBy(r.URL.Query().Get("by"))
	switch by {
	case "":
		by = gamestate.SortPoints
	case gamestate.SortPoints, gamestate.SortRank:
	default:
		respondError(w, http.StatusBadRequest, "by must be points or rank")
		return
	}

	entries, err := h.game.ListGameStates(r.Context())
	if h.handleError(w, err, "leaderboard") {
		return
	}
	player := strings.TrimSpace(r.URL.Query().Get("player"))
	respondJSON(w, http.StatusOK, gamestate.BuildBoard(entries, by, player, gamestate.DefaultLeaderboardSize))
}

// GET /players/{player}
func (h *Handler) player(w http.ResponseWriter, r *http.Request) {
	st, err := h.game.LoadGameState(r.Context(), r.PathValue("player"))
	if h.handleError(w, err, "player") {
		return
	}
	resp := PlayerResponse{
		Player:       st.Player,
		Points:       st.Points,
		Rank:         st.Rank,
		Icon:         st.Rank.Icon(),
		NextRankAt:   gamestate.NextThreshold(st.Points),
		AnswerStreak: st.AnswerStreak,
		DailyStreak:  st.DailyStreak,
	}
	if !st.LastActive.IsZero() {
		resp.LastActive = st.LastActive.Format("2006-01-02")
	}
	respondJSON(w, http.StatusOK, resp)
}
