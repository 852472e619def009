package selector

import (
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/spacedrep"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func makePool(t *testing.T, n int) []question.Question {
	t.Helper()
	pool := make([]question.Question, n)
	for i := range pool {
		q, err := question.New(strconv.Itoa(i+1), "prompt "+strconv.Itoa(i+1),
			[question.NumOptions]string{"a", "b", "c", "d"}, "A", "", "", nil)
		require.NoError(t, err)
		pool[i] = q
	}
	return pool
}

func ids(qs []question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestWeighted_Counts(t *testing.T) {
	pool := makePool(t, 5)
	p := spacedrep.NewProgress()
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero", 0, 0},
		{"negative", -3, 0},
		{"fewer", 3, 3},
		{"exact", 5, 5},
		{"more", 9, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Weighted(pool, tt.n, p, now, newRand(1))
			assert.Len(t, got, tt.want)
			seen := map[string]bool{}
			for _, id := range ids(got) {
				assert.False(t, seen[id], "duplicate %s", id)
				seen[id] = true
			}
		})
	}
}

func TestWeighted_EmptyPool(t *testing.T) {
	got := Weighted(nil, 3, spacedrep.NewProgress(), now, newRand(1))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWeighted_DoesNotMutatePool(t *testing.T) {
	pool := makePool(t, 6)
	before := ids(pool)
	_ = Weighted(pool, 4, spacedrep.NewProgress(), now, newRand(7))
	assert.Equal(t, before, ids(pool))
}

func TestWeighted_DoesNotCreateCards(t *testing.T) {
	pool := makePool(t, 4)
	p := spacedrep.NewProgress()
	_ = Weighted(pool, 4, p, now, newRand(3))
	assert.Equal(t, 0, p.Len())
}

func TestWeighted_ScenarioPermutation(t *testing.T) {
	pool := makePool(t, 3)
	got := Weighted(pool, 3, spacedrep.NewProgress(), now, newRand(42))
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids(got))
}

// With equal weights the first draw must be close to uniform.
func TestWeighted_UniformChiSquare(t *testing.T) {
	const (
		k      = 5
		trials = 5000
	)
	pool := makePool(t, k)
	p := spacedrep.NewProgress()
	rng := newRand(2025)

	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		got := Weighted(pool, 1, p, now, rng)
		require.Len(t, got, 1)
		counts[got[0].ID]++
	}

	expected := float64(trials) / k
	chi := 0.0
	for _, q := range pool {
		d := float64(counts[q.ID]) - expected
		chi += d * d / expected
	}
	// 4 degrees of freedom, p = 0.001 critical value.
	assert.Less(t, chi, 18.47, "chi-square %f, counts %v", chi, counts)
}

func TestWeighted_FavoursLowerBoxes(t *testing.T) {
	pool := makePool(t, 2)
	p := spacedrep.NewProgress()
	for i := 0; i < 4; i++ {
		p.Promote("2", now.AddDate(0, 0, -30))
	}
	// Card 2 sits in box 5 and is not yet due relative to a fresh schedule.
	p.Card("2").Schedule(now, false)

	rng := newRand(11)
	first := map[string]int{}
	for i := 0; i < 2000; i++ {
		got := Weighted(pool, 1, p, now, rng)
		first[got[0].ID]++
	}
	assert.Greater(t, first["1"], first["2"]*5)
}

func TestWeighted_ZeroWeightFallback(t *testing.T) {
	pool := makePool(t, 4)
	got := drawWeighted(pool, []float64{0, 0, 0, 0}, 3, newRand(5))
	assert.Len(t, got, 3)
	assert.Subset(t, ids(pool), ids(got))
}

func TestWeighted_PartialZeroWeights(t *testing.T) {
	pool := makePool(t, 3)
	got := drawWeighted(pool, []float64{0, 1, 0}, 3, newRand(9))
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].ID)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids(got))
}

func TestWeighted_NilRand(t *testing.T) {
	pool := makePool(t, 3)
	got := Weighted(pool, 2, spacedrep.NewProgress(), now, nil)
	assert.Len(t, got, 2)
}

func TestPriority_PicksMostMissed(t *testing.T) {
	pool := makePool(t, 2)
	a, b := pool[0].ID, pool[1].ID
	p := spacedrep.NewProgress()
	*p.Card(a) = spacedrep.CardState{Box: 1, IncorrectCount: 3}
	*p.Card(b) = spacedrep.CardState{Box: 5}

	got := Priority(pool, 1, p, now, newRand(1))
	require.Len(t, got, 1)
	assert.Equal(t, a, got[0].ID)
}

func TestPriority_StableTies(t *testing.T) {
	pool := makePool(t, 4)
	got := Priority(pool, 4, spacedrep.NewProgress(), now, newRand(1))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestPriority_OverdueBreaksTie(t *testing.T) {
	pool := makePool(t, 3)
	p := spacedrep.NewProgress()
	*p.Card("3") = spacedrep.CardState{Box: 1, Due: now.Add(-time.Hour)}
	got := Priority(pool, 2, p, now, newRand(1))
	assert.Equal(t, []string{"3", "1"}, ids(got))
}

func TestPriority_NLargerThanPool(t *testing.T) {
	pool := makePool(t, 3)
	got := Priority(pool, 10, spacedrep.NewProgress(), now, newRand(1))
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids(got))
	assert.Empty(t, Priority(pool, 0, spacedrep.NewProgress(), now, nil))
}

func TestHasMisses(t *testing.T) {
	pool := makePool(t, 2)
	p := spacedrep.NewProgress()
	assert.False(t, HasMisses(pool, p))
	p.Promote("1", now)
	assert.False(t, HasMisses(pool, p))
	p.Demote("2", now)
	assert.True(t, HasMisses(pool, p))
	assert.False(t, HasMisses(pool[:1], p))
}

func TestShuffle_CopiesInput(t *testing.T) {
	pool := makePool(t, 8)
	got := Shuffle(pool, newRand(4))
	assert.ElementsMatch(t, ids(pool), ids(got))
	assert.Equal(t, "1", pool[0].ID)
}
