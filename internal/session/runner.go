package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/selector"
	"github.com/abhisek/leitner/internal/spacedrep"
)

// ErrSessionDone is returned when answering after the session has ended.
var ErrSessionDone = errors.New("session is done")

// Options configures a Runner. Zero values pick sensible defaults.
type Options struct {
	Mode Mode

	// Clock defaults to clock.System.
	Clock clock.Clock

	// Rand shuffles the miss queue before each review pass. Nil uses the
	// global source.
	Rand *rand.Rand

	// Sink receives an AnswerEvent per accepted answer. Optional.
	Sink EventSink

	// NoReview ends the session after the first pass instead of looping
	// over misses. Implied by ModePractice.
	NoReview bool
}

// Outcome is the result of one Submit call.
type Outcome struct {
	Question question.Question
	Chosen   question.Label
	Correct  bool
	Card     spacedrep.CardState

	// Round is set when this answer completed a pass.
	Round *RoundSummary

	// Phase is the runner phase after the answer was applied.
	Phase Phase
}

// Runner drives one session over an ordered set, mutating the progress it
// was given and queueing misses for review passes. A Runner is not safe for
// concurrent use.
type Runner struct {
	progress *spacedrep.Progress
	clock    clock.Clock
	rng      *rand.Rand
	sink     EventSink
	mode     Mode
	noReview bool

	current []question.Question
	misses  []question.Question
	cursor  int
	phase   Phase

	round        int
	roundCorrect int
	roundMissed  []string
	rounds       []RoundSummary

	served  int
	correct int
	started time.Time
}

// NewRunner starts a session over set. The set is served in the given
// order; progress is mutated in place as answers arrive.
func NewRunner(set []question.Question, progress *spacedrep.Progress, opts Options) (*Runner, error) {
	if len(set) == 0 {
		return nil, ErrEmptyPool
	}
	if progress == nil {
		return nil, fmt.Errorf("new runner: nil progress")
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Mode == "" {
		opts.Mode = ModeExam
	}
	r := &Runner{
		progress: progress,
		clock:    opts.Clock,
		rng:      opts.Rand,
		sink:     opts.Sink,
		mode:     opts.Mode,
		noReview: opts.NoReview || opts.Mode == ModePractice,
		current:  append([]question.Question(nil), set...),
		phase:    PhaseActive,
	}
	r.started = r.clock.Now()
	return r, nil
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase { return r.phase }

// Round returns the zero-based index of the current pass.
func (r *Runner) Round() int { return r.round }

// Mode returns the session mode.
func (r *Runner) Mode() Mode { return r.mode }

// Current returns the question awaiting an answer. ok is false once the
// session is done.
func (r *Runner) Current() (q question.Question, ok bool) {
	if r.phase == PhaseDone {
		return question.Question{}, false
	}
	return r.current[r.cursor], true
}

// Position returns the 1-based position of the current question and the
// size of the current pass.
func (r *Runner) Position() (pos, total int) {
	return r.cursor + 1, len(r.current)
}

// Remaining returns how many questions are left in the current pass.
func (r *Runner) Remaining() int {
	if r.phase == PhaseDone {
		return 0
	}
	return len(r.current) - r.cursor
}

// Misses returns a copy of the miss queue accumulated in this pass.
func (r *Runner) Misses() []question.Question {
	return append([]question.Question(nil), r.misses...)
}

// Rounds returns the summaries of completed passes.
func (r *Runner) Rounds() []RoundSummary {
	return append([]RoundSummary(nil), r.rounds...)
}

// Progress returns the progress map the runner mutates.
func (r *Runner) Progress() *spacedrep.Progress { return r.progress }

// Submit answers the current question with choice. An invalid label is
// rejected with question.ErrInvalidLabel and no state change.
func (r *Runner) Submit(choice question.Label) (Outcome, error) {
	if r.phase == PhaseDone {
		return Outcome{}, ErrSessionDone
	}
	if !choice.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", question.ErrInvalidLabel, string(choice))
	}

	q := r.current[r.cursor]
	now := r.clock.Now()
	correct := q.IsCorrect(choice)

	var card spacedrep.CardState
	if correct {
		card = r.progress.Promote(q.ID, now)
		r.correct++
		r.roundCorrect++
	} else {
		card = r.progress.Demote(q.ID, now)
		r.misses = append(r.misses, q)
		r.roundMissed = append(r.roundMissed, q.ID)
	}
	r.served++
	r.cursor++

	if r.sink != nil {
		r.sink.OnAnswer(AnswerEvent{
			QuestionID: q.ID,
			Correct:    correct,
			NewBox:     card.Box,
			Timestamp:  now,
		})
	}

	out := Outcome{Question: q, Chosen: choice, Correct: correct, Card: card}
	if r.cursor >= len(r.current) {
		summary := r.finishRound()
		out.Round = &summary
	}
	out.Phase = r.phase
	return out, nil
}

// SubmitString parses s as a label and submits it.
func (r *Runner) SubmitString(s string) (Outcome, error) {
	l, err := question.ParseLabel(s)
	if err != nil {
		return Outcome{}, err
	}
	return r.Submit(l)
}

// finishRound records the pass summary and moves to the next phase: the
// shuffled miss queue becomes the next pass, or the session ends.
func (r *Runner) finishRound() RoundSummary {
	summary := RoundSummary{
		Round:   r.round,
		Total:   len(r.current),
		Correct: r.roundCorrect,
		Missed:  r.roundMissed,
	}
	r.rounds = append(r.rounds, summary)
	r.roundCorrect = 0
	r.roundMissed = nil

	if len(r.misses) == 0 || r.noReview {
		r.phase = PhaseDone
		r.misses = nil
		return summary
	}

	r.current = selector.Shuffle(r.misses, r.rng)
	r.misses = nil
	r.cursor = 0
	r.round++
	r.phase = PhaseReviewing
	return summary
}

// Stop ends the session early. Already-applied answers stay applied.
func (r *Runner) Stop() {
	r.phase = PhaseDone
}
