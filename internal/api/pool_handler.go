package api

import (
	"net/http"
	"strings"

	"github.com/abhisek/leitner/internal/spacedrep"
	"github.com/abhisek/leitner/internal/stats"
	"github.com/abhisek/leitner/internal/store"
)

type AddPoolRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type RenamePoolRequest struct {
	Name string `json:"name"`
}

type PoolStatsResponse struct {
	Pool     store.Pool      `json:"pool"`
	Player   string          `json:"player"`
	Stats    stats.PoolStats `json:"stats"`
	Timeline stats.Series    `json:"timeline"`
}

// GET /pools
func (h *Handler) listPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.catalog.List(r.Context())
	if h.handleError(w, err, "pools") {
		return
	}
	respondJSON(w, http.StatusOK, pools)
}

// POST /pools
func (h *Handler) addPool(w http.ResponseWriter, r *http.Request) {
	var req AddPoolRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	p, err := h.catalog.Add(r.Context(), req.Path, req.Name)
	if h.handleError(w, err, "pool") {
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// PATCH /pools/{poolID}
func (h *Handler) renamePool(w http.ResponseWriter, r *http.Request) {
	var req RenamePoolRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	id := r.PathValue("poolID")
	if h.handleError(w, h.catalog.Rename(r.Context(), id, req.Name), "pool") {
		return
	}
	p, err := h.catalog.Get(r.Context(), id)
	if h.handleError(w, err, "pool") {
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DELETE /pools/{poolID}
func (h *Handler) removePool(w http.ResponseWriter, r *http.Request) {
	if h.handleError(w, h.catalog.Remove(r.Context(), r.PathValue("poolID")), "pool") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /pools/{poolID}/stats?player=
func (h *Handler) poolStats(w http.ResponseWriter, r *http.Request) {
	player := strings.TrimSpace(r.URL.Query().Get("player"))
	if player == "" {
		respondError(w, http.StatusBadRequest, "player is required")
		return
	}
	meta, pool, err := h.catalog.Load(r.Context(), r.PathValue("poolID"))
	if h.handleError(w, err, "pool") {
		return
	}

	key := store.ProgressKey(player, meta.ID)
	loaded := spacedrep.Load(r.Context(), h.progress, key)
	if loaded.Status == spacedrep.StatusRecovered {
		h.logger.Warn("progress unreadable, showing empty stats", "key", key, "reason", loaded.Reason)
	}

	respondJSON(w, http.StatusOK, PoolStatsResponse{
		Pool:     meta,
		Player:   player,
		Stats:    stats.Compute(pool, loaded.Progress, h.clock.Now()),
		Timeline: stats.Timeline(loaded.Progress),
	})
}
