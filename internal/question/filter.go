package question

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	listSep = regexp.MustCompile(`[,\s]+`)
	tagSep  = regexp.MustCompile(`[;,]`)
)

// ChapterSet is a set of chapter identifiers. A nil set matches everything.
type ChapterSet map[string]struct{}

// ParseChapters parses expressions like "3,4,9-12". Ranges are inclusive and
// may be written in either order; malformed ranges are skipped. Returns nil
// when the expression selects nothing.
func ParseChapters(expr string) ChapterSet {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	set := make(ChapterSet)
	for _, tok := range listSep.Split(expr, -1) {
		if tok == "" {
			continue
		}
		lo, hi, ok := strings.Cut(tok, "-")
		if !ok {
			set[tok] = struct{}{}
			continue
		}
		a, errA := strconv.Atoi(lo)
		b, errB := strconv.Atoi(hi)
		if errA != nil || errB != nil {
			continue
		}
		if a > b {
			a, b = b, a
		}
		for x := a; x <= b; x++ {
			set[strconv.Itoa(x)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Sorted returns the chapters in lexical order.
func (s ChapterSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ParseTags splits a comma or whitespace separated tag list and lowercases it.
func ParseTags(expr string) []string {
	var tags []string
	for _, t := range listSep.Split(strings.TrimSpace(expr), -1) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Filter keeps questions whose chapter is in chapters (when non-nil) and
// that share at least one tag with tags (when non-empty).
func Filter(qs []Question, chapters ChapterSet, tags []string) []Question {
	var out []Question
	for _, q := range qs {
		if chapters != nil {
			if _, ok := chapters[q.Chapter]; !ok || q.Chapter == "" {
				continue
			}
		}
		if len(tags) > 0 && !q.HasTag(tags...) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// splitTags splits a CSV-style tag cell on commas or semicolons.
func splitTags(s string) []string {
	var tags []string
	for _, t := range tagSep.Split(s, -1) {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
