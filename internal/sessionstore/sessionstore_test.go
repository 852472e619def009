package sessionstore

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/session"
	"github.com/abhisek/leitner/internal/spacedrep"
)

func newSession(t *testing.T, clk clock.Clock) *Session {
	t.Helper()
	p := spacedrep.NewProgress()
	r, err := session.NewRunner(question.Builtin()[:3], p, session.Options{Clock: clk})
	require.NoError(t, err)
	return &Session{Player: "ann", PoolID: question.BuiltinPoolID, Runner: r, Progress: p}
}

func TestStore_AddWithRemove(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	st := New(clk)

	token := st.Add(newSession(t, clk))
	assert.Len(t, token, 36)
	assert.Equal(t, 1, st.Len())

	err := st.With(token, func(s *Session) error {
		assert.Equal(t, "ann", s.Player)
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.ErrorIs(t, st.With(token, func(*Session) error { return boom }), boom)

	s, err := st.Remove(token)
	require.NoError(t, err)
	assert.Equal(t, token, s.Token)

	assert.ErrorIs(t, st.With(token, func(*Session) error { return nil }), ErrNotFound)
	_, err = st.Remove(token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_TokensAreDistinct(t *testing.T) {
	st := New(nil)
	a := st.Add(newSession(t, nil))
	b := st.Add(newSession(t, nil))
	assert.NotEqual(t, a, b)
}

func TestStore_Expire(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	st := New(clk)
	old := st.Add(newSession(t, clk))
	clk.Advance(20 * time.Minute)
	fresh := st.Add(newSession(t, clk))
	clk.Advance(20 * time.Minute)

	var taken []string
	n := st.Expire(30*time.Minute, func(s *Session) {
		taken = append(taken, s.Token)
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{old}, taken)
	assert.Equal(t, 1, st.Len())
	assert.ErrorIs(t, st.With(old, func(*Session) error { return nil }), ErrNotFound)
	assert.NoError(t, st.With(fresh, func(*Session) error { return nil }))
}

func TestStore_ConcurrentSubmitsSerialized(t *testing.T) {
	st := New(nil)
	s := newSession(t, nil)
	token := st.Add(s)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.With(token, func(s *Session) error {
				_, err := s.Runner.Submit(question.LabelA)
				return err
			})
		}()
	}
	wg.Wait()

	err := st.With(token, func(s *Session) error {
		assert.Equal(t, 3, session.BuildSummary(s.Runner).Served)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_Take(t *testing.T) {
	st := New(nil)
	token := st.Add(newSession(t, nil))

	err := st.Take(token, func(s *Session) error {
		assert.Equal(t, token, s.Token)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
	assert.ErrorIs(t, st.Take(token, func(*Session) error { return nil }), ErrNotFound)
}

// Answers racing an end either land before the take or fail with
// ErrNotFound; none run after the session has been taken.
func TestStore_TakeWaitsForWith(t *testing.T) {
	st := New(nil)
	s := newSession(t, nil)
	token := st.Add(s)

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := false
	lateAnswers := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.With(token, func(s *Session) error {
				mu.Lock()
				if taken {
					lateAnswers++
				}
				mu.Unlock()
				_, err := s.Runner.Submit(question.LabelA)
				return err
			})
		}()
	}

	require.NoError(t, st.Take(token, func(s *Session) error {
		mu.Lock()
		taken = true
		mu.Unlock()
		s.Runner.Stop()
		assert.NotNil(t, s.Progress.Records())
		return nil
	}))
	wg.Wait()

	assert.Equal(t, 0, lateAnswers)
}
