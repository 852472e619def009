package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/abhisek/leitner/internal/catalog"
	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/gamestate"
	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/session"
	"github.com/abhisek/leitner/internal/sessionstore"
	"github.com/abhisek/leitner/internal/spacedrep"
	"github.com/abhisek/leitner/internal/store"
)

// Deps are the collaborators a Handler needs. Events may be nil.
type Deps struct {
	Catalog  *catalog.Catalog
	Progress spacedrep.ProgressRepo
	Game     gamestate.Repo
	Events   *store.EventRepo
	Sessions *sessionstore.Store
	Clock    clock.Clock
	Rand     *rand.Rand
	Logger   *slog.Logger
}

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	catalog  *catalog.Catalog
	progress spacedrep.ProgressRepo
	game     gamestate.Repo
	events   *store.EventRepo
	sessions *sessionstore.Store
	clock    clock.Clock
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(d Deps) *Handler {
	if d.Clock == nil {
		d.Clock = clock.System{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Sessions == nil {
		d.Sessions = sessionstore.New(d.Clock)
	}
	return &Handler{
		catalog:  d.Catalog,
		progress: d.Progress,
		game:     d.Game,
		events:   d.Events,
		sessions: d.Sessions,
		clock:    d.Clock,
		rng:      d.Rand,
		logger:   d.Logger,
	}
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// handleError maps domain errors to HTTP statuses. Returns true if an
// error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, sessionstore.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, question.ErrInvalidLabel):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrEmptyPool), errors.Is(err, session.ErrNothingToReview):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, session.ErrSessionDone):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrBuiltinPool):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		var perr *question.ParseError
		if errors.As(err, &perr) {
			respondError(w, http.StatusBadRequest, err.Error())
			return true
		}
		h.logger.Error("request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
