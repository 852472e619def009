package session

import (
	"fmt"
	"time"
)

// RoundSummary describes one pass over a set.
type RoundSummary struct {
	Round   int
	Total   int
	Correct int
	Missed  []string
}

// Title names the round: the first pass is "Initial", later passes are
// numbered review rounds.
func (r RoundSummary) Title() string {
	if r.Round == 0 {
		return "Initial"
	}
	return fmt.Sprintf("Review Round %d", r.Round)
}

func (r RoundSummary) String() string {
	return fmt.Sprintf("Round complete: %d/%d correct", r.Correct, r.Total)
}

// Summary holds the totals for a finished (or abandoned) session.
type Summary struct {
	Mode     Mode
	Served   int
	Correct  int
	Accuracy float64
	Duration time.Duration
	Rounds   []RoundSummary
}

// BuildSummary creates a Summary from the runner's current state.
func BuildSummary(r *Runner) Summary {
	var accuracy float64
	if r.served > 0 {
		accuracy = float64(r.correct) / float64(r.served)
	}
	return Summary{
		Mode:     r.mode,
		Served:   r.served,
		Correct:  r.correct,
		Accuracy: accuracy,
		Duration: r.clock.Now().Sub(r.started),
		Rounds:   append([]RoundSummary(nil), r.rounds...),
	}
}
