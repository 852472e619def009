package gamestate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/leitner/internal/session"
)

// Repo persists game states.
type Repo interface {
	// LoadGameState returns the stored state for player, or a fresh state
	// when none exists.
	LoadGameState(ctx context.Context, player string) (*State, error)
	// UpdateGameState applies fn to the freshly loaded state and stores the
	// result along with the returned history entry as one step.
	UpdateGameState(ctx context.Context, player string, fn func(*State) HistoryEntry) (*State, HistoryEntry, error)
	ListGameStates(ctx context.Context) ([]Entry, error)
}

// Service awards points for answers. It implements session.EventSink so a
// runner can feed it directly; persistence failures are logged and never
// reach the session. Each answer is applied to the stored state, so several
// services for one player add up.
type Service struct {
	repo   Repo
	player string
	logger *slog.Logger
	ctx    context.Context

	state *State

	// SessionDelta accumulates the points change during the current session.
	SessionDelta int
	last         *HistoryEntry
}

var _ session.EventSink = (*Service)(nil)

// NewService loads the state for player. A nil repo keeps the state in
// memory only.
func NewService(ctx context.Context, repo Repo, player string, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{repo: repo, player: player, logger: logger, ctx: ctx}
	if repo == nil {
		s.state = NewState(player)
		return s, nil
	}
	st, err := repo.LoadGameState(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("load game state for %q: %w", player, err)
	}
	s.state = st
	return s, nil
}

// OnAnswer applies an answer event to the player's state.
func (s *Service) OnAnswer(ev session.AnswerEvent) {
	apply := func(st *State) HistoryEntry {
		return st.RecordAnswer(ev.Correct, ev.Timestamp)
	}

	var entry HistoryEntry
	if s.repo == nil {
		entry = apply(s.state)
	} else if st, e, err := s.repo.UpdateGameState(s.ctx, s.player, apply); err != nil {
		s.logger.Warn("save game state failed", "player", s.player, "error", err)
		entry = apply(s.state)
	} else {
		s.state, entry = st, e
	}
	s.SessionDelta += entry.Delta
	s.last = &entry
}

// State returns a copy of the current state without history.
func (s *Service) State() State {
	st := *s.state
	st.History = nil
	return st
}

// LastAward returns the most recent history entry written by this service.
func (s *Service) LastAward() (HistoryEntry, bool) {
	if s.last == nil {
		return HistoryEntry{}, false
	}
	return *s.last, true
}

// ResetSession clears the session accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionDelta = 0
	s.last = nil
}

// Leaderboard builds the board from every stored state.
func (s *Service) Leaderboard(ctx context.Context, by SortBy) (Board, error) {
	var entries []Entry
	if s.repo != nil {
		var err error
		entries, err = s.repo.ListGameStates(ctx)
		if err != nil {
			return Board{}, fmt.Errorf("list game states: %w", err)
		}
	} else {
		entries = []Entry{{Player: s.player, Points: s.state.Points, Rank: s.state.Rank}}
	}
	return BuildBoard(entries, by, s.player, DefaultLeaderboardSize), nil
}
