package session

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/selector"
	"github.com/abhisek/leitner/internal/spacedrep"
)

var start = time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)

// scenarioPool returns ids "1","2","3" whose correct answer is A.
func scenarioPool(t *testing.T) []question.Question {
	t.Helper()
	var pool []question.Question
	for _, id := range []string{"1", "2", "3"} {
		q, err := question.New(id, "Question "+id, [question.NumOptions]string{"w", "x", "y", "z"}, "A", "because", "1", nil)
		require.NoError(t, err)
		pool = append(pool, q)
	}
	return pool
}

func newTestRunner(t *testing.T, set []question.Question, p *spacedrep.Progress, opts Options) *Runner {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = &clock.Fixed{T: start}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	r, err := NewRunner(set, p, opts)
	require.NoError(t, err)
	return r
}

// answerAll answers every question in the current pass, missing the ids in miss.
func answerAll(t *testing.T, r *Runner, miss map[string]bool) []Outcome {
	t.Helper()
	var outs []Outcome
	phase := r.Phase()
	round := r.Round()
	for r.Phase() == phase && r.Round() == round {
		q, ok := r.Current()
		require.True(t, ok)
		choice := question.LabelA
		if miss[q.ID] {
			choice = question.LabelB
		}
		out, err := r.Submit(choice)
		require.NoError(t, err)
		outs = append(outs, out)
	}
	return outs
}

func TestScenario_AllCorrect(t *testing.T) {
	pool := scenarioPool(t)
	p := spacedrep.NewProgress()
	set := selector.Weighted(pool, 3, p, start, rand.New(rand.NewPCG(3, 4)))
	require.Len(t, set, 3)

	r := newTestRunner(t, set, p, Options{})
	outs := answerAll(t, r, nil)

	assert.Len(t, outs, 3)
	assert.Equal(t, PhaseDone, r.Phase())
	assert.Empty(t, r.Misses())
	for _, id := range []string{"1", "2", "3"} {
		cs, ok := p.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, 2, cs.Box, "id %s", id)
	}
	last := outs[len(outs)-1]
	require.NotNil(t, last.Round)
	assert.Equal(t, "Round complete: 3/3 correct", last.Round.String())
	assert.Equal(t, "Initial", last.Round.Title())
}

func TestScenario_MissThenReview(t *testing.T) {
	pool := scenarioPool(t)
	p := spacedrep.NewProgress()
	r := newTestRunner(t, pool, p, Options{})

	answerAll(t, r, map[string]bool{"2": true})

	require.Equal(t, PhaseReviewing, r.Phase())
	q, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "2", q.ID)
	pos, total := r.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 1, total)
	cs, _ := p.Lookup("2")
	assert.Equal(t, 1, cs.Box)
	assert.Equal(t, 1, cs.IncorrectCount)

	out, err := r.Submit(question.LabelA)
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, PhaseDone, out.Phase)
	require.NotNil(t, out.Round)
	assert.Equal(t, "Review Round 1", out.Round.Title())

	rounds := r.Rounds()
	require.Len(t, rounds, 2)
	assert.Equal(t, []string{"2"}, rounds[0].Missed)
	assert.Equal(t, 2, rounds[0].Correct)

	sum := BuildSummary(r)
	assert.Equal(t, 4, sum.Served)
	assert.Equal(t, 3, sum.Correct)
	assert.InDelta(t, 0.75, sum.Accuracy, 1e-9)
}

func TestRunner_RepeatedMissesLoop(t *testing.T) {
	pool := scenarioPool(t)
	p := spacedrep.NewProgress()
	r := newTestRunner(t, pool, p, Options{})

	answerAll(t, r, map[string]bool{"1": true, "3": true})
	require.Equal(t, PhaseReviewing, r.Phase())
	assert.Equal(t, 2, r.Remaining())

	answerAll(t, r, map[string]bool{"3": true})
	require.Equal(t, PhaseReviewing, r.Phase())
	assert.Equal(t, 2, r.Round())

	answerAll(t, r, nil)
	assert.Equal(t, PhaseDone, r.Phase())

	cs, _ := p.Lookup("3")
	assert.Equal(t, 2, cs.IncorrectCount)
	assert.Equal(t, 2, cs.Box)
}

func TestRunner_InvalidLabelNoMutation(t *testing.T) {
	pool := scenarioPool(t)
	p := spacedrep.NewProgress()
	rec := &Recorder{}
	r := newTestRunner(t, pool, p, Options{Sink: rec})

	for _, bad := range []question.Label{"", "E", "a", "AB"} {
		_, err := r.Submit(bad)
		assert.True(t, errors.Is(err, question.ErrInvalidLabel), "label %q", bad)
	}
	_, err := r.SubmitString("z")
	assert.ErrorIs(t, err, question.ErrInvalidLabel)

	assert.Equal(t, 0, p.Len())
	assert.Empty(t, rec.Events)
	pos, _ := r.Position()
	assert.Equal(t, 1, pos)

	out, err := r.SubmitString(" a ")
	require.NoError(t, err)
	assert.True(t, out.Correct)
}

func TestRunner_EmitsEvents(t *testing.T) {
	pool := scenarioPool(t)
	p := spacedrep.NewProgress()
	rec := &Recorder{}
	var seen int
	sink := MultiSink{rec, SinkFunc(func(AnswerEvent) { seen++ })}
	r := newTestRunner(t, pool, p, Options{Sink: sink})

	answerAll(t, r, map[string]bool{"1": true})

	require.Len(t, rec.Events, 3)
	assert.Equal(t, 3, seen)
	assert.Equal(t, AnswerEvent{QuestionID: "1", Correct: false, NewBox: 1, Timestamp: start}, rec.Events[0])
	assert.Equal(t, AnswerEvent{QuestionID: "2", Correct: true, NewBox: 2, Timestamp: start}, rec.Events[1])
}

func TestRunner_SinkCannotAlterCard(t *testing.T) {
	pool := scenarioPool(t)
	p := spacedrep.NewProgress()
	sink := SinkFunc(func(ev AnswerEvent) { ev.NewBox = 5 })
	r := newTestRunner(t, pool[:1], p, Options{Sink: sink})
	_, err := r.Submit(question.LabelA)
	require.NoError(t, err)
	cs, _ := p.Lookup("1")
	assert.Equal(t, 2, cs.Box)
}

func TestRunner_DoneRejectsAnswers(t *testing.T) {
	pool := scenarioPool(t)
	r := newTestRunner(t, pool[:1], spacedrep.NewProgress(), Options{})
	_, err := r.Submit(question.LabelA)
	require.NoError(t, err)

	_, err = r.Submit(question.LabelA)
	assert.ErrorIs(t, err, ErrSessionDone)
	_, ok := r.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, r.Remaining())
}

func TestRunner_PracticeSkipsReview(t *testing.T) {
	pool := scenarioPool(t)
	p := spacedrep.NewProgress()
	r := newTestRunner(t, pool, p, Options{Mode: ModePractice})
	answerAll(t, r, map[string]bool{"2": true})
	assert.Equal(t, PhaseDone, r.Phase())
	assert.Len(t, r.Rounds(), 1)
}

func TestRunner_Stop(t *testing.T) {
	pool := scenarioPool(t)
	r := newTestRunner(t, pool, spacedrep.NewProgress(), Options{})
	_, err := r.Submit(question.LabelA)
	require.NoError(t, err)
	r.Stop()
	assert.Equal(t, PhaseDone, r.Phase())
	assert.Equal(t, 1, BuildSummary(r).Served)
}

func TestNewRunner_EmptySet(t *testing.T) {
	_, err := NewRunner(nil, spacedrep.NewProgress(), Options{})
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestRunner_UsesClock(t *testing.T) {
	pool := scenarioPool(t)
	clk := &clock.Fixed{T: start}
	p := spacedrep.NewProgress()
	r := newTestRunner(t, pool, p, Options{Clock: clk})
	clk.Advance(90 * time.Minute)
	_, err := r.Submit(question.LabelA)
	require.NoError(t, err)
	q := pool[0]
	cs, _ := p.Lookup(q.ID)
	assert.Equal(t, start.Add(90*time.Minute), cs.LastSeen)
	assert.Equal(t, 90*time.Minute, BuildSummary(r).Duration)
}
