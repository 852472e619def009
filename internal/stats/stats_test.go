package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/spacedrep"
)

var now = time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)

func pool(t *testing.T) []question.Question {
	t.Helper()
	var out []question.Question
	for _, id := range []string{"1", "2", "3"} {
		q, err := question.New(id, "Prompt "+id, [question.NumOptions]string{"a", "b", "c", "d"}, "C", "", "", nil)
		require.NoError(t, err)
		out = append(out, q)
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(pool(t), spacedrep.NewProgress(), now)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 0, s.Answered)
	assert.Equal(t, 1.0, s.AvgBox)
	assert.Nil(t, s.MostCorrect)
	assert.Nil(t, s.MostWrong)
	assert.Equal(t, 0, s.Accuracy.Percent)
}

// Scenario: 1 and 3 answered correctly, 2 missed then reviewed correctly.
func TestCompute_Scenario(t *testing.T) {
	p := spacedrep.NewProgress()
	p.Promote("1", now)
	p.Demote("2", now)
	p.Promote("3", now)
	p.Promote("2", now)

	s := Compute(pool(t), p, now)
	assert.Equal(t, 3, s.Answered)
	assert.Equal(t, 1, s.WrongCount)
	assert.Equal(t, 1, s.IncorrectTotal)
	assert.Equal(t, 2.0, s.AvgBox)
	assert.Equal(t, 0, s.DueCount)
	assert.Equal(t, [spacedrep.MaxBox]int{0, 3, 0, 0, 0}, s.BoxCounts)
	require.NotNil(t, s.MostWrong)
	assert.Equal(t, "2", s.MostWrong.ID)
	assert.Equal(t, "Prompt 2", s.MostWrong.Prompt)
	assert.Equal(t, Accuracy{Correct: 3, Incorrect: 1, Percent: 75}, s.Accuracy)

	// A day later everything promoted to box 2 is due.
	assert.Equal(t, 3, Compute(pool(t), p, now.AddDate(0, 0, 1)).DueCount)
}

func TestCompute_RoundsAvgBoxAndCountsStrays(t *testing.T) {
	p := spacedrep.NewProgress()
	p.Promote("1", now)
	p.Promote("1", now)
	p.Card("2")
	p.Card("gone")

	s := Compute(pool(t), p, now)
	// (3 + 1 + 1) / 3
	assert.Equal(t, 1.67, s.AvgBox)
	assert.Equal(t, 3, s.Answered)
	assert.Equal(t, 0, s.DueCount)
	require.NotNil(t, s.MostCorrect)
	assert.Equal(t, "1", s.MostCorrect.ID)
	assert.Equal(t, 2, s.MostCorrect.Count)
}

func TestTimeline(t *testing.T) {
	p := spacedrep.NewProgress()
	p.Promote("1", now.AddDate(0, 0, -2))
	p.Promote("2", now.AddDate(0, 0, -2).Add(time.Hour))
	p.Demote("3", now)
	p.Card("4")

	got := Timeline(p)
	assert.Equal(t, []string{"2025-04-18", "2025-04-20"}, got.Labels)
	assert.Equal(t, []int{2, 3}, got.Values)

	empty := Timeline(spacedrep.NewProgress())
	assert.Empty(t, empty.Labels)
	assert.NotNil(t, empty.Values)
}
