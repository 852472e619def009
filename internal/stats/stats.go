// Package stats summarizes a pool's progress for display.
package stats

import (
	"math"
	"time"

	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/spacedrep"
)

// Highlight points at a single question with a notable count.
type Highlight struct {
	ID     string `json:"id"`
	Count  int    `json:"count"`
	Prompt string `json:"prompt"`
}

// Accuracy compares the sum of current correct streaks with the sum of
// lifetime misses.
type Accuracy struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Percent   int `json:"percent"`
}

// PoolStats is the summary for one pool.
type PoolStats struct {
	Total          int                   `json:"total"`
	Answered       int                   `json:"answered"`
	WrongCount     int                   `json:"wrong_count"`
	MostCorrect    *Highlight            `json:"most_correct"`
	MostWrong      *Highlight            `json:"most_wrong"`
	IncorrectTotal int                   `json:"incorrect_total"`
	AvgBox         float64               `json:"avg_box"`
	DueCount       int                   `json:"due_count"`
	BoxCounts      [spacedrep.MaxBox]int `json:"box_counts"`
	Accuracy       Accuracy              `json:"accuracy"`
}

// Compute summarizes progress against pool. Every tracked entry counts,
// including entries for questions no longer in the pool.
func Compute(pool []question.Question, progress *spacedrep.Progress, now time.Time) PoolStats {
	prompts := make(map[string]string, len(pool))
	for _, q := range pool {
		prompts[q.ID] = q.Prompt
	}

	s := PoolStats{Total: len(pool), Answered: progress.Len(), AvgBox: 1.0}
	boxSum := 0
	for _, id := range progress.IDs() {
		cs, _ := progress.Lookup(id)
		if cs.IncorrectCount > 0 {
			s.WrongCount++
		}
		if s.MostCorrect == nil || cs.CorrectStreak > s.MostCorrect.Count {
			s.MostCorrect = &Highlight{ID: id, Count: cs.CorrectStreak, Prompt: prompts[id]}
		}
		if s.MostWrong == nil || cs.IncorrectCount > s.MostWrong.Count {
			s.MostWrong = &Highlight{ID: id, Count: cs.IncorrectCount, Prompt: prompts[id]}
		}
		s.IncorrectTotal += cs.IncorrectCount
		s.Accuracy.Correct += cs.CorrectStreak
		boxSum += cs.Box
		s.BoxCounts[cs.Box-1]++
		if cs.IsOverdue(now) {
			s.DueCount++
		}
	}
	if s.Answered > 0 {
		s.AvgBox = math.Round(float64(boxSum)/float64(s.Answered)*100) / 100
	}
	s.Accuracy.Incorrect = s.IncorrectTotal
	if denom := s.Accuracy.Correct + s.Accuracy.Incorrect; denom > 0 {
		s.Accuracy.Percent = s.Accuracy.Correct * 100 / denom
	}
	return s
}
