package gamestate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/leitner/internal/session"
)

func sampleEntries() []Entry {
	return []Entry{
		{Player: "cat", Points: 450, Rank: RankSilver},
		{Player: "ann", Points: 1200, Rank: RankMaster},
		{Player: "bob", Points: 450, Rank: RankSilver},
		// Stale rank: stored rank wins for the rank tab.
		{Player: "dan", Points: 800, Rank: RankGrandMaster},
	}
}

func TestBuildBoard_ByPoints(t *testing.T) {
	b := BuildBoard(sampleEntries(), SortPoints, "bob", 0)
	var order []string
	for _, e := range b.Top {
		order = append(order, e.Player)
	}
	assert.Equal(t, []string{"ann", "dan", "bob", "cat"}, order)
	assert.Equal(t, 3, b.Place)
	assert.Equal(t, 450, b.Points)
}

func TestBuildBoard_ByRank(t *testing.T) {
	b := BuildBoard(sampleEntries(), SortRank, "dan", 2)
	require.Len(t, b.Top, 2)
	assert.Equal(t, "dan", b.Top[0].Player)
	assert.Equal(t, "ann", b.Top[1].Player)
	assert.Equal(t, 1, b.Place)
	assert.Equal(t, SortRank, b.By)
}

func TestBuildBoard_UnknownPlayer(t *testing.T) {
	b := BuildBoard(sampleEntries(), "", "zed", 10)
	assert.Equal(t, 0, b.Place)
	assert.Equal(t, SortPoints, b.By)
	assert.Len(t, b.Top, 4)
}

type memRepo struct {
	states  map[string]*State
	history []HistoryEntry
	saveErr error
}

func (m *memRepo) LoadGameState(_ context.Context, player string) (*State, error) {
	if st, ok := m.states[player]; ok {
		c := *st
		return &c, nil
	}
	return NewState(player), nil
}

func (m *memRepo) UpdateGameState(ctx context.Context, player string, fn func(*State) HistoryEntry) (*State, HistoryEntry, error) {
	if m.saveErr != nil {
		return nil, HistoryEntry{}, m.saveErr
	}
	st, _ := m.LoadGameState(ctx, player)
	e := fn(st)
	c := *st
	m.states[player] = &c
	m.history = append(m.history, e)
	return st, e, nil
}

func (m *memRepo) ListGameStates(_ context.Context) ([]Entry, error) {
	var out []Entry
	for _, st := range m.states {
		out = append(out, Entry{Player: st.Player, Points: st.Points, Rank: st.Rank})
	}
	return out, nil
}

func TestService_OnAnswer(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{states: map[string]*State{
		"ann": {Player: "ann", Points: 90, Rank: RankUnranked},
	}}
	svc, err := NewService(ctx, repo, "ann", nil)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.OnAnswer(session.AnswerEvent{QuestionID: "1", Correct: true, NewBox: 2, Timestamp: now})
	svc.OnAnswer(session.AnswerEvent{QuestionID: "2", Correct: true, NewBox: 2, Timestamp: now})

	st := svc.State()
	assert.Equal(t, 120, st.Points)
	assert.Equal(t, RankBronze, st.Rank)
	assert.Equal(t, 30, svc.SessionDelta)
	last, ok := svc.LastAward()
	require.True(t, ok)
	assert.Equal(t, 20, last.Delta)

	assert.Equal(t, 120, repo.states["ann"].Points)
	assert.Len(t, repo.history, 2)

	board, err := svc.Leaderboard(ctx, SortPoints)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Place)

	svc.ResetSession()
	assert.Equal(t, 0, svc.SessionDelta)
	_, ok = svc.LastAward()
	assert.False(t, ok)
}

func TestService_TwoServicesSamePlayer(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{states: map[string]*State{}}
	first, err := NewService(ctx, repo, "ann", nil)
	require.NoError(t, err)
	second, err := NewService(ctx, repo, "ann", nil)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	first.OnAnswer(session.AnswerEvent{QuestionID: "1", Correct: true, Timestamp: now})
	second.OnAnswer(session.AnswerEvent{QuestionID: "2", Correct: true, Timestamp: now})

	assert.Equal(t, 30, repo.states["ann"].Points)
	assert.Equal(t, 30, second.State().Points)
	assert.Equal(t, 10, first.SessionDelta)
	assert.Equal(t, 20, second.SessionDelta)
}

func TestService_SaveFailureIsLogged(t *testing.T) {
	repo := &memRepo{states: map[string]*State{}, saveErr: errors.New("locked")}
	svc, err := NewService(context.Background(), repo, "bob", nil)
	require.NoError(t, err)
	svc.OnAnswer(session.AnswerEvent{QuestionID: "1", Correct: false, Timestamp: time.Now()})
	assert.Equal(t, -2, svc.State().Points)
	assert.Empty(t, repo.history)
}

func TestService_InMemory(t *testing.T) {
	svc, err := NewService(context.Background(), nil, "solo", nil)
	require.NoError(t, err)
	svc.OnAnswer(session.AnswerEvent{Correct: true, Timestamp: time.Now()})
	board, err := svc.Leaderboard(context.Background(), SortRank)
	require.NoError(t, err)
	require.Len(t, board.Top, 1)
	assert.Equal(t, 10, board.Points)
}
