package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/selector"
	"github.com/abhisek/leitner/internal/spacedrep"
)

// Mode selects how a session set is built and whether misses loop back.
type Mode string

const (
	// ModeExam draws a weighted set and reviews misses until none remain.
	ModeExam Mode = "exam"
	// ModePractice draws weighted batches with no review loop.
	ModePractice Mode = "practice"
	// ModeReview takes the highest-priority questions and reviews misses.
	ModeReview Mode = "review"
)

// DefaultReviewCount is the set size for ModeReview when none is given.
const DefaultReviewCount = 10

var (
	// ErrEmptyPool is returned when a session would start with no questions.
	ErrEmptyPool = errors.New("no questions available")

	// ErrNothingToReview is returned by ModeReview when no question in the
	// pool has ever been missed.
	ErrNothingToReview = errors.New("nothing to review yet: answer some questions first")
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeExam, ModePractice, ModeReview:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Plan describes the set a session should be built from.
type Plan struct {
	Mode Mode
	N    int
}

// BuildSet selects the questions for one round of plan from pool.
func BuildSet(plan Plan, pool []question.Question, progress *spacedrep.Progress, now time.Time, rng *rand.Rand) ([]question.Question, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	switch plan.Mode {
	case ModeReview:
		if !selector.HasMisses(pool, progress) {
			return nil, ErrNothingToReview
		}
		n := plan.N
		if n <= 0 {
			n = DefaultReviewCount
		}
		return selector.Priority(pool, n, progress, now, rng), nil
	default:
		n := plan.N
		if n <= 0 {
			n = len(pool)
		}
		return selector.Weighted(pool, n, progress, now, rng), nil
	}
}
