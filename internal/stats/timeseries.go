package stats

import (
	"sort"

	"github.com/abhisek/leitner/internal/spacedrep"
)

// DateLayout is the day label format for time series.
const DateLayout = "2006-01-02"

// Series is a cumulative count of questions by the UTC day they were last
// seen. Labels and Values have equal length.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Timeline builds the cumulative last-seen series. Cards never seen are
// skipped.
func Timeline(progress *spacedrep.Progress) Series {
	perDay := map[string]int{}
	for _, id := range progress.IDs() {
		cs, _ := progress.Lookup(id)
		if cs.LastSeen.IsZero() {
			continue
		}
		perDay[cs.LastSeen.UTC().Format(DateLayout)]++
	}

	out := Series{Labels: []string{}, Values: []int{}}
	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)
	total := 0
	for _, d := range days {
		total += perDay[d]
		out.Labels = append(out.Labels, d)
		out.Values = append(out.Values, total)
	}
	return out
}
