package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/leitner/internal/gamestate"
	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/session"
	"github.com/abhisek/leitner/internal/sessionstore"
	"github.com/abhisek/leitner/internal/spacedrep"
	"github.com/abhisek/leitner/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	Player   string `json:"player"`
	PoolID   string `json:"pool_id"`
	Mode     string `json:"mode"`
	N        int    `json:"n"`
	Chapters string `json:"chapters"`
	Tags     string `json:"tags"`
}

type OptionView struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type QuestionView struct {
	ID       string       `json:"id"`
	Prompt   string       `json:"prompt"`
	Options  []OptionView `json:"options"`
	Chapter  string       `json:"chapter,omitempty"`
	Position int          `json:"position"`
	Total    int          `json:"total"`
	Round    int          `json:"round"`
}

type SessionResponse struct {
	Token    string        `json:"token"`
	Mode     string        `json:"mode"`
	PoolID   string        `json:"pool_id"`
	Phase    string        `json:"phase"`
	Load     string        `json:"load_status,omitempty"`
	Question *QuestionView `json:"question,omitempty"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type RoundView struct {
	Title   string   `json:"title"`
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Missed  []string `json:"missed"`
	Message string   `json:"message"`
}

type AnswerResponse struct {
	Correct     bool          `json:"correct"`
	Answer      string        `json:"answer"`
	Explanation string        `json:"explanation"`
	Box         int           `json:"box"`
	PointsDelta int           `json:"points_delta"`
	Points      int           `json:"points"`
	Rank        string        `json:"rank"`
	DailyStreak int           `json:"daily_streak"`
	Phase       string        `json:"phase"`
	Round       *RoundView    `json:"round,omitempty"`
	Next        *QuestionView `json:"next,omitempty"`
}

type EndSessionResponse struct {
	Served   int         `json:"served"`
	Correct  int         `json:"correct"`
	Accuracy float64     `json:"accuracy"`
	Rounds   []RoundView `json:"rounds"`
	Points   int         `json:"points"`
	Rank     string      `json:"rank"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	player := strings.TrimSpace(req.Player)
	if player == "" {
		respondError(w, http.StatusBadRequest, "player is required")
		return
	}
	mode := session.ModeExam
	if req.Mode != "" {
		var err error
		if mode, err = session.ParseMode(req.Mode); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	// Sessions outlive the request that starts them.
	ctx := context.WithoutCancel(r.Context())

	meta, pool, err := h.catalog.Load(ctx, req.PoolID)
	if h.handleError(w, err, "pool") {
		return
	}
	pool = question.Filter(pool, question.ParseChapters(req.Chapters), question.ParseTags(req.Tags))

	key := store.ProgressKey(player, meta.ID)
	loaded := spacedrep.Load(ctx, h.progress, key)
	if loaded.Status == spacedrep.StatusRecovered {
		h.logger.Warn("progress unreadable, starting empty", "key", key, "reason", loaded.Reason)
	}

	set, err := session.BuildSet(session.Plan{Mode: mode, N: req.N}, pool, loaded.Progress, h.clock.Now(), h.rng)
	if h.handleError(w, err, "pool") {
		return
	}

	game, err := gamestate.NewService(ctx, h.game, player, h.logger)
	if h.handleError(w, err, "player") {
		return
	}

	sess := &sessionstore.Session{
		Player:      player,
		PoolID:      meta.ID,
		ProgressKey: key,
		Chapters:    req.Chapters,
		Tags:        req.Tags,
		PoolSize:    len(pool),
		Progress:    loaded.Progress,
		Game:        game,
	}
	token := h.sessions.Add(sess)

	sinks := session.MultiSink{game}
	if h.events != nil {
		sinks = append(sinks, h.events.AnswerSink(ctx, token, player, meta.ID, h.logger))
	}
	var resp SessionResponse
	err = h.sessions.With(token, func(s *sessionstore.Session) error {
		runner, err := session.NewRunner(set, s.Progress, session.Options{
			Mode:  mode,
			Clock: h.clock,
			Rand:  h.rng,
			Sink:  sinks,
		})
		if err != nil {
			return err
		}
		s.Runner = runner
		resp = sessionView(s)
		resp.Load = loaded.Status.String()
		return nil
	})
	if err != nil {
		h.sessions.Remove(token)
		h.handleError(w, err, "session")
		return
	}

	h.logger.Info("session started", "token", token, "player", player, "pool", meta.ID, "mode", mode, "questions", len(set))
	respondJSON(w, http.StatusCreated, resp)
}

// GET /sessions/{token}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	var resp SessionResponse
	err := h.sessions.With(r.PathValue("token"), func(s *sessionstore.Session) error {
		if s.Runner == nil {
			return sessionstore.ErrNotFound
		}
		resp = sessionView(s)
		return nil
	})
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /sessions/{token}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var resp AnswerResponse
	err := h.sessions.With(r.PathValue("token"), func(s *sessionstore.Session) error {
		if s.Runner == nil {
			return sessionstore.ErrNotFound
		}
		out, err := s.Runner.SubmitString(req.Answer)
		if err != nil {
			return err
		}
		st := s.Game.State()
		resp = AnswerResponse{
			Correct:     out.Correct,
			Answer:      string(out.Question.Answer),
			Explanation: out.Question.Explanation,
			Box:         out.Card.Box,
			Points:      st.Points,
			Rank:        string(st.Rank),
			DailyStreak: st.DailyStreak,
			Phase:       out.Phase.String(),
		}
		if award, ok := s.Game.LastAward(); ok {
			resp.PointsDelta = award.Delta
		}
		if out.Round != nil {
			rv := roundView(*out.Round)
			resp.Round = &rv
		}
		resp.Next = questionView(s.Runner)
		return nil
	})
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /sessions/{token}/end
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	// The save must not be cut short by a client hanging up.
	ctx := context.WithoutCancel(r.Context())

	var resp EndSessionResponse
	var saveErr error
	err := h.sessions.Take(r.PathValue("token"), func(s *sessionstore.Session) error {
		if s.Runner == nil {
			return sessionstore.ErrNotFound
		}
		if saveErr = h.persist(ctx, s); saveErr != nil {
			return nil
		}

		sum := session.BuildSummary(s.Runner)
		st := s.Game.State()
		resp = EndSessionResponse{
			Served:   sum.Served,
			Correct:  sum.Correct,
			Accuracy: sum.Accuracy,
			Rounds:   make([]RoundView, 0, len(sum.Rounds)),
			Points:   st.Points,
			Rank:     string(st.Rank),
		}
		for _, rs := range sum.Rounds {
			resp.Rounds = append(resp.Rounds, roundView(rs))
		}
		return nil
	})
	if h.handleError(w, err, "session") || h.handleError(w, saveErr, "progress") {
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// persist saves a session's progress and appends it to the session log.
// A failed log write is logged; a failed progress save is returned.
func (h *Handler) persist(ctx context.Context, s *sessionstore.Session) error {
	s.Runner.Stop()
	if err := spacedrep.Save(ctx, h.progress, s.ProgressKey, s.Progress); err != nil {
		return err
	}
	if h.events == nil {
		return nil
	}
	sum := session.BuildSummary(s.Runner)
	err := h.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.Token,
		Mode:            string(s.Runner.Mode()),
		PoolID:          s.PoolID,
		PoolSize:        s.PoolSize,
		Chapters:        s.Chapters,
		Tags:            s.Tags,
		Player:          s.Player,
		QuestionsServed: sum.Served,
		CorrectAnswers:  sum.Correct,
		DurationSecs:    int(sum.Duration.Seconds()),
		Timestamp:       h.clock.Now(),
	})
	if err != nil {
		h.logger.Warn("session log write failed", "token", s.Token, "error", err)
	}
	return nil
}

// ExpireIdle ends sessions idle longer than maxIdle, saving their progress.
// It returns how many sessions were ended.
func (h *Handler) ExpireIdle(ctx context.Context, maxIdle time.Duration) int {
	return h.sessions.Expire(maxIdle, func(s *sessionstore.Session) {
		if s.Runner == nil {
			return
		}
		if err := h.persist(ctx, s); err != nil {
			h.logger.Error("save expired session failed", "token", s.Token, "error", err)
		}
	})
}

// ── Views ───────────────────────────────────────────────────────────────────

func sessionView(s *sessionstore.Session) SessionResponse {
	return SessionResponse{
		Token:    s.Token,
		Mode:     string(s.Runner.Mode()),
		PoolID:   s.PoolID,
		Phase:    s.Runner.Phase().String(),
		Question: questionView(s.Runner),
	}
}

func questionView(r *session.Runner) *QuestionView {
	q, ok := r.Current()
	if !ok {
		return nil
	}
	pos, total := r.Position()
	v := &QuestionView{
		ID:       q.ID,
		Prompt:   q.Prompt,
		Chapter:  q.Chapter,
		Position: pos,
		Total:    total,
		Round:    r.Round(),
	}
	for _, l := range question.Labels() {
		v.Options = append(v.Options, OptionView{Label: string(l), Text: q.Option(l)})
	}
	return v
}

func roundView(rs session.RoundSummary) RoundView {
	missed := rs.Missed
	if missed == nil {
		missed = []string{}
	}
	return RoundView{
		Title:   rs.Title(),
		Correct: rs.Correct,
		Total:   rs.Total,
		Missed:  missed,
		Message: rs.String(),
	}
}
