package spacedrep

import "time"

// CardState holds the Leitner state for a single question.
// A zero LastSeen or Due means the card has never been scheduled.
type CardState struct {
	Box            int
	CorrectStreak  int
	IncorrectCount int
	LastSeen       time.Time
	Due            time.Time
}

// NewCard returns the state of a card that has never been answered.
func NewCard() CardState {
	return CardState{Box: MinBox}
}

// Promote records a correct answer: the streak grows, the box moves up one
// (capped at MaxBox) and the card is rescheduled by the new box's interval.
func (cs *CardState) Promote(now time.Time) {
	cs.CorrectStreak++
	cs.Box = clampBox(cs.Box + 1)
	cs.Schedule(now, false)
}

// Demote records a miss: back to box 1, streak cleared, lifetime miss
// counter incremented, due immediately.
func (cs *CardState) Demote(now time.Time) {
	cs.CorrectStreak = 0
	cs.Box = MinBox
	cs.IncorrectCount++
	cs.Schedule(now, true)
}

// Schedule stamps LastSeen and sets Due from the box interval, or to now
// when reset is true.
func (cs *CardState) Schedule(now time.Time, reset bool) {
	days := 0
	if !reset {
		days = BoxIntervals[clampBox(cs.Box)]
	}
	cs.LastSeen = now
	cs.Due = now.AddDate(0, 0, days)
}

// IsOverdue returns true if the card has a due date at or before now.
func (cs CardState) IsOverdue(now time.Time) bool {
	return !cs.Due.IsZero() && !now.Before(cs.Due)
}

// DaysOverdue returns whole days elapsed since Due, truncated. Returns 0 if
// the card is not overdue.
func (cs CardState) DaysOverdue(now time.Time) int {
	if !cs.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(cs.Due) / (24 * time.Hour))
}

// DaysUntilDue returns the number of days until the card is due, rounded
// up. Returns 0 if already due or never scheduled.
func (cs CardState) DaysUntilDue(now time.Time) int {
	if cs.Due.IsZero() || cs.IsOverdue(now) {
		return 0
	}
	return int(cs.Due.Sub(now).Hours()/24.0) + 1
}
