// Package sessionstore keeps live web sessions in memory, keyed by an
// opaque token. Each session owns its own progress, so sessions never share
// mutable engine state; calls on one session are serialized.
package sessionstore

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/gamestate"
	"github.com/abhisek/leitner/internal/session"
	"github.com/abhisek/leitner/internal/spacedrep"
)

// ErrNotFound is returned for an unknown or expired token.
var ErrNotFound = errors.New("session not found")

// Session is one live run plus the state it needs to persist on end.
type Session struct {
	Token       string
	Player      string
	PoolID      string
	ProgressKey string
	Chapters    string
	Tags        string
	PoolSize    int

	Runner   *session.Runner
	Progress *spacedrep.Progress
	Game     *gamestate.Service

	Created  time.Time
	LastUsed time.Time

	mu     sync.Mutex
	closed bool
}

// Store is a mutex-guarded token table.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    clock.Clock
}

// New creates an empty store. A nil clock uses clock.System.
func New(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	return &Store{sessions: make(map[string]*Session), clock: clk}
}

// Add registers s under a fresh token and returns it.
func (st *Store) Add(s *Session) string {
	now := st.clock.Now()
	s.Token = uuid.New().String()
	s.Created = now
	s.LastUsed = now

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.Token] = s
	return s.Token
}

// With runs fn holding the session's lock.
func (st *Store) With(token string, fn func(*Session) error) error {
	st.mu.RLock()
	s, ok := st.sessions[token]
	st.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotFound
	}
	s.LastUsed = st.clock.Now()
	return fn(s)
}

// Take removes token and runs fn holding the session's lock, after any
// call already inside With has returned. Later calls see ErrNotFound.
func (st *Store) Take(token string, fn func(*Session) error) error {
	s, err := st.Remove(token)
	if err != nil {
		return err
	}
	return s.close(fn)
}

// Remove deletes token and returns the session it held.
func (st *Store) Remove(token string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	delete(st.sessions, token)
	return s, nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Expire takes every session idle for longer than maxIdle, calling fn for
// each one under its lock so the caller can persist its progress. It
// returns how many sessions were taken.
func (st *Store) Expire(maxIdle time.Duration, fn func(*Session)) int {
	cutoff := st.clock.Now().Add(-maxIdle)

	st.mu.Lock()
	var idle []*Session
	for token, s := range st.sessions {
		s.mu.Lock()
		stale := s.LastUsed.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.sessions, token)
			idle = append(idle, s)
		}
	}
	st.mu.Unlock()

	for _, s := range idle {
		_ = s.close(func(s *Session) error {
			fn(s)
			return nil
		})
	}
	return len(idle)
}

func (s *Session) close(fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return fn(s)
}
