package gamestate

// Rank is a tier derived from total points.
type Rank string

const (
	RankUnranked    Rank = "Unranked"
	RankBronze      Rank = "Bronze"
	RankSilver      Rank = "Silver"
	RankGold        Rank = "Gold"
	RankDiamond     Rank = "Diamond"
	RankMaster      Rank = "Master"
	RankGrandMaster Rank = "Grand Master"
)

// rankThresholds lists the minimum points for each rank, highest first.
var rankThresholds = []struct {
	min  int
	rank Rank
}{
	{1500, RankGrandMaster},
	{1000, RankMaster},
	{700, RankDiamond},
	{500, RankGold},
	{300, RankSilver},
	{100, RankBronze},
}

// AllRanks returns the ranks from lowest to highest.
func AllRanks() []Rank {
	return []Rank{RankUnranked, RankBronze, RankSilver, RankGold, RankDiamond, RankMaster, RankGrandMaster}
}

// RankFor returns the rank earned by points.
func RankFor(points int) Rank {
	for _, t := range rankThresholds {
		if points >= t.min {
			return t.rank
		}
	}
	return RankUnranked
}

// Order returns the position of r in AllRanks, or 0 for unknown ranks.
func (r Rank) Order() int {
	for i, rr := range AllRanks() {
		if rr == r {
			return i
		}
	}
	return 0
}

// NextThreshold returns the points needed for the next rank above points,
// or 0 when already at the top.
func NextThreshold(points int) int {
	next := 0
	for _, t := range rankThresholds {
		if t.min > points {
			next = t.min
		}
	}
	return next
}

// Icon returns the display icon for the rank.
func (r Rank) Icon() string {
	switch r {
	case RankBronze:
		return "🥉"
	case RankSilver:
		return "🥈"
	case RankGold:
		return "🥇"
	case RankDiamond:
		return "💎"
	case RankMaster:
		return "🏆"
	case RankGrandMaster:
		return "👑"
	default:
		return "✦"
	}
}
