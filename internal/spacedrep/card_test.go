package spacedrep

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNewCard_Defaults(t *testing.T) {
	cs := NewCard()
	if cs.Box != 1 || cs.CorrectStreak != 0 || cs.IncorrectCount != 0 {
		t.Errorf("NewCard() = %+v", cs)
	}
	if !cs.LastSeen.IsZero() || !cs.Due.IsZero() {
		t.Error("expected no timestamps on a fresh card")
	}
}

func TestPromote_AdvancesBoxAndSchedules(t *testing.T) {
	tests := []struct {
		box     int
		wantBox int
		days    int
	}{
		{1, 2, 1},
		{2, 3, 3},
		{3, 4, 7},
		{4, 5, 14},
		{5, 5, 14},
	}
	for _, tt := range tests {
		cs := CardState{Box: tt.box, CorrectStreak: 2}
		cs.Promote(t0)
		if cs.Box != tt.wantBox {
			t.Errorf("box %d: Promote() box = %d, want %d", tt.box, cs.Box, tt.wantBox)
		}
		if cs.CorrectStreak != 3 {
			t.Errorf("box %d: streak = %d, want 3", tt.box, cs.CorrectStreak)
		}
		if want := t0.AddDate(0, 0, tt.days); !cs.Due.Equal(want) {
			t.Errorf("box %d: due = %v, want %v", tt.box, cs.Due, want)
		}
		if !cs.LastSeen.Equal(t0) {
			t.Errorf("box %d: last seen = %v, want %v", tt.box, cs.LastSeen, t0)
		}
	}
}

func TestPromote_NeverExceedsMaxBox(t *testing.T) {
	cs := NewCard()
	for i := 0; i < 10; i++ {
		cs.Promote(t0)
	}
	if cs.Box != MaxBox {
		t.Errorf("box = %d, want %d", cs.Box, MaxBox)
	}
	if cs.CorrectStreak != 10 {
		t.Errorf("streak = %d, want 10", cs.CorrectStreak)
	}
}

func TestDemote_ResetsToBoxOne(t *testing.T) {
	cs := CardState{Box: 4, CorrectStreak: 5, IncorrectCount: 1}
	cs.Demote(t0)
	if cs.Box != 1 || cs.CorrectStreak != 0 || cs.IncorrectCount != 2 {
		t.Errorf("Demote() = %+v", cs)
	}
	if !cs.Due.Equal(t0) {
		t.Errorf("due = %v, want now", cs.Due)
	}
}

func TestIncorrectCount_Monotonic(t *testing.T) {
	cs := NewCard()
	prev := 0
	for i, correct := range []bool{false, true, true, false, true, false} {
		if correct {
			cs.Promote(t0)
		} else {
			cs.Demote(t0)
		}
		if cs.IncorrectCount < prev {
			t.Fatalf("step %d: incorrect count decreased %d -> %d", i, prev, cs.IncorrectCount)
		}
		prev = cs.IncorrectCount
	}
	if prev != 3 {
		t.Errorf("incorrect count = %d, want 3", prev)
	}
}

func TestIsOverdue(t *testing.T) {
	if (CardState{}).IsOverdue(t0) {
		t.Error("unscheduled card should not be overdue")
	}
	if !(CardState{Due: t0}).IsOverdue(t0) {
		t.Error("expected overdue on due instant")
	}
	if (CardState{Due: t0.Add(time.Second)}).IsOverdue(t0) {
		t.Error("expected not overdue before due")
	}
}

func TestDaysOverdue_Truncates(t *testing.T) {
	cs := CardState{Due: t0}
	if got := cs.DaysOverdue(t0.Add(47 * time.Hour)); got != 1 {
		t.Errorf("DaysOverdue() = %d, want 1", got)
	}
	if got := cs.DaysOverdue(t0.Add(-time.Hour)); got != 0 {
		t.Errorf("DaysOverdue() before due = %d, want 0", got)
	}
}

func TestDaysUntilDue(t *testing.T) {
	cs := CardState{Due: t0.Add(36 * time.Hour)}
	if got := cs.DaysUntilDue(t0); got != 2 {
		t.Errorf("DaysUntilDue() = %d, want 2", got)
	}
	if got := (CardState{}).DaysUntilDue(t0); got != 0 {
		t.Errorf("DaysUntilDue() unscheduled = %d, want 0", got)
	}
}
