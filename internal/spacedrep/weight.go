package spacedrep

import (
	"math"
	"time"
)

// OverdueBonus returns the multiplier applied to an overdue card: 1.0 when
// the card has no due date or is not yet due, otherwise growing linearly
// with whole days overdue and capped at 2.0.
func OverdueBonus(cs CardState, now time.Time) float64 {
	if !cs.IsOverdue(now) {
		return 1.0
	}
	days := cs.DaysOverdue(now)
	return 1.0 + math.Min(MaxOverdueBonus, OverdueBonusPerDay*float64(days+1))
}

// Weight returns the sampling weight for a card at now.
func Weight(cs CardState, now time.Time) float64 {
	return BaseWeights[clampBox(cs.Box)] * OverdueBonus(cs, now)
}

// PriorityScore ranks cards for targeted review: each lifetime miss counts
// three, lower boxes count more, and an overdue card gets two extra.
func PriorityScore(cs CardState, now time.Time) int {
	score := cs.IncorrectCount*3 + (MaxBox + 1 - clampBox(cs.Box))
	if cs.IsOverdue(now) {
		score += 2
	}
	return score
}
