package spacedrep

// MinBox and MaxBox bound the Leitner box. Box 1 is least mastered.
const (
	MinBox = 1
	MaxBox = 5
)

// BoxIntervals maps a box to the days until the card is due again after a
// correct answer. A miss always uses 0 days.
var BoxIntervals = map[int]int{
	1: 0,
	2: 1,
	3: 3,
	4: 7,
	5: 14,
}

// BaseWeights maps a box to its sampling weight before the overdue bonus.
// Strictly decreasing in mastery.
var BaseWeights = map[int]float64{
	1: 1.0,
	2: 0.6,
	3: 0.35,
	4: 0.2,
	5: 0.1,
}

// Overdue bonus curve: 1 + min(MaxOverdueBonus, OverdueBonusPerDay*(days+1)).
const (
	OverdueBonusPerDay = 0.2
	MaxOverdueBonus    = 1.0
)

func clampBox(box int) int {
	if box < MinBox {
		return MinBox
	}
	if box > MaxBox {
		return MaxBox
	}
	return box
}
