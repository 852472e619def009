package gamestate

import "time"

// HistoryEntry records one points change.
type HistoryEntry struct {
	Timestamp time.Time `json:"ts"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
}

// Reasons recorded in history.
const (
	ReasonCorrect   = "correct"
	ReasonIncorrect = "incorrect"
)

// State is one player's gamification record.
type State struct {
	Player       string
	Points       int
	Rank         Rank
	AnswerStreak int
	DailyStreak  int
	LastActive   time.Time
	History      []HistoryEntry
}

// NewState returns a fresh state for player.
func NewState(player string) *State {
	return &State{Player: player, Rank: RankUnranked}
}

// Award adds delta to the points, re-derives the rank and appends a history
// entry, which is returned.
func (s *State) Award(delta int, reason string, now time.Time) HistoryEntry {
	s.Points += delta
	s.Rank = RankFor(s.Points)
	entry := HistoryEntry{Timestamp: now, Delta: delta, Reason: reason}
	s.History = append(s.History, entry)
	return entry
}

// TouchDaily updates the daily streak for activity at now: unchanged on
// the same UTC day, +1 when the last activity was the previous day, else 1.
func (s *State) TouchDaily(now time.Time) {
	today := civilDay(now)
	if !s.LastActive.IsZero() {
		last := civilDay(s.LastActive)
		if last.Equal(today) {
			return
		}
		if last.AddDate(0, 0, 1).Equal(today) {
			s.DailyStreak++
			s.LastActive = now
			return
		}
	}
	s.DailyStreak = 1
	s.LastActive = now
}

// RecordAnswer applies one answer: daily streak, then the streak-doubled
// points change. Returns the history entry written.
func (s *State) RecordAnswer(correct bool, now time.Time) HistoryEntry {
	s.TouchDaily(now)
	delta, next := NextDelta(s.AnswerStreak, correct)
	s.AnswerStreak = next
	reason := ReasonIncorrect
	if correct {
		reason = ReasonCorrect
	}
	return s.Award(delta, reason, now)
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
