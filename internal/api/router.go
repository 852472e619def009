package api

import "net/http"

// RegisterRoutes wires every endpoint onto mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Pools
	mux.HandleFunc("GET /pools", h.listPools)
	mux.HandleFunc("POST /pools", h.addPool)
	mux.HandleFunc("PATCH /pools/{poolID}", h.renamePool)
	mux.HandleFunc("DELETE /pools/{poolID}", h.removePool)
	mux.HandleFunc("GET /pools/{poolID}/stats", h.poolStats)

	// Sessions
	mux.HandleFunc("POST /sessions", h.startSession)
	mux.HandleFunc("GET /sessions/{token}", h.getSession)
	mux.HandleFunc("POST /sessions/{token}/answers", h.submitAnswer)
	mux.HandleFunc("POST /sessions/{token}/end", h.endSession)

	// Gamification
	mux.HandleFunc("GET /leaderboard", h.leaderboard)
	mux.HandleFunc("GET /players/{player}", h.player)
}

// NewServer returns the full handler chain: Logging -> CORS -> mux.
func NewServer(h *Handler) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return Logging(h.logger)(CORS(mux))
}
