// Package selector builds the ordered question set for a session, either by
// weighted sampling without replacement or by review priority.
package selector

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/spacedrep"
)

// Weighted draws up to n distinct questions from pool, each draw
// proportional to the card weight at now. When every weight is zero the
// pool is shuffled uniformly instead. A nil rng uses the global source.
func Weighted(pool []question.Question, n int, progress *spacedrep.Progress, now time.Time, rng *rand.Rand) []question.Question {
	if n <= 0 || len(pool) == 0 {
		return []question.Question{}
	}
	if n > len(pool) {
		n = len(pool)
	}

	weights := make([]float64, len(pool))
	for i, q := range pool {
		weights[i] = progress.Weight(q.ID, now)
	}
	return drawWeighted(pool, weights, n, rng)
}

// drawWeighted samples n items without replacement. pool and weights are
// copied before mutation.
func drawWeighted(pool []question.Question, weights []float64, n int, rng *rand.Rand) []question.Question {
	candidates := append([]question.Question(nil), pool...)
	w := append([]float64(nil), weights...)

	total := sum(w)
	if total <= 0 {
		shuffle(rng, len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		return candidates[:n]
	}

	out := make([]question.Question, 0, n)
	for len(out) < n && len(candidates) > 0 {
		r := float64n(rng) * total
		idx := len(candidates) - 1
		acc := 0.0
		for i, wi := range w {
			acc += wi
			if acc >= r {
				idx = i
				break
			}
		}
		out = append(out, candidates[idx])
		candidates = append(candidates[:idx], candidates[idx+1:]...)
		w = append(w[:idx], w[idx+1:]...)
		// Exact sum of what is left.
		total = sum(w)
		if total <= 0 && len(out) < n {
			shuffle(rng, len(candidates), func(i, j int) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			})
			out = append(out, candidates[:n-len(out)]...)
			break
		}
	}
	return out
}

// Priority returns the n questions that most need review: highest
// spacedrep.PriorityScore first, ties in pool order. Any shortfall is
// filled by a weighted draw over the questions not yet chosen.
func Priority(pool []question.Question, n int, progress *spacedrep.Progress, now time.Time, rng *rand.Rand) []question.Question {
	if n <= 0 || len(pool) == 0 {
		return []question.Question{}
	}

	type scored struct {
		idx   int
		score int
	}
	ranked := make([]scored, len(pool))
	for i, q := range pool {
		cs, _ := progress.Lookup(q.ID)
		ranked[i] = scored{idx: i, score: spacedrep.PriorityScore(cs, now)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	take := min(n, len(ranked))
	out := make([]question.Question, 0, n)
	chosen := make(map[int]bool, take)
	for _, s := range ranked[:take] {
		out = append(out, pool[s.idx])
		chosen[s.idx] = true
	}
	if len(out) >= n {
		return out
	}

	var rest []question.Question
	for i, q := range pool {
		if !chosen[i] {
			rest = append(rest, q)
		}
	}
	return append(out, Weighted(rest, n-len(out), progress, now, rng)...)
}

// HasMisses reports whether any question in pool has a recorded miss.
func HasMisses(pool []question.Question, progress *spacedrep.Progress) bool {
	for _, q := range pool {
		if cs, ok := progress.Lookup(q.ID); ok && cs.IncorrectCount > 0 {
			return true
		}
	}
	return false
}

// Shuffle returns a shuffled copy of qs.
func Shuffle(qs []question.Question, rng *rand.Rand) []question.Question {
	out := append([]question.Question(nil), qs...)
	shuffle(rng, len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func sum(w []float64) float64 {
	t := 0.0
	for _, v := range w {
		t += v
	}
	return t
}

func float64n(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

func shuffle(rng *rand.Rand, n int, swap func(i, j int)) {
	if rng == nil {
		rand.Shuffle(n, swap)
		return
	}
	rng.Shuffle(n, swap)
}
