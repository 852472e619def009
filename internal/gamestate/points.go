package gamestate

// BasePoints is awarded for the first correct answer of a streak and
// doubles for each further consecutive correct answer.
const BasePoints = 10

// BasePenalty is deducted for the first miss of a streak and doubles for
// each further consecutive miss.
const BasePenalty = 2

// MaxStreakExponent caps the doubling so long streaks cannot overflow.
const MaxStreakExponent = 20

// NextDelta returns the points change for an answer given the signed answer
// streak (positive for consecutive correct answers, negative for misses)
// and the streak after the answer. A change of sign restarts the streak.
func NextDelta(streak int, correct bool) (delta, next int) {
	if correct {
		if streak < 0 {
			streak = 0
		}
		return BasePoints << min(streak, MaxStreakExponent), streak + 1
	}
	if streak > 0 {
		streak = 0
	}
	return -(BasePenalty << min(-streak, MaxStreakExponent)), streak - 1
}
