package spacedrep

import (
	"sort"
	"time"
)

// Progress maps question IDs to card state. Entries are created lazily on
// first write; reads of unknown IDs return the default card without
// inserting it. Not safe for concurrent use.
type Progress struct {
	cards map[string]*CardState
}

// NewProgress returns an empty progress map.
func NewProgress() *Progress {
	return &Progress{cards: make(map[string]*CardState)}
}

// Card returns the mutable state for id, creating a box-1 entry if absent.
func (p *Progress) Card(id string) *CardState {
	if cs, ok := p.cards[id]; ok {
		return cs
	}
	cs := NewCard()
	p.cards[id] = &cs
	return &cs
}

// Lookup returns a copy of the state for id and whether it exists. Unknown
// IDs yield the default card.
func (p *Progress) Lookup(id string) (CardState, bool) {
	if cs, ok := p.cards[id]; ok {
		return *cs, true
	}
	return NewCard(), false
}

// Has reports whether id has an entry.
func (p *Progress) Has(id string) bool {
	_, ok := p.cards[id]
	return ok
}

// Promote applies a correct answer to id and returns the resulting state.
func (p *Progress) Promote(id string, now time.Time) CardState {
	cs := p.Card(id)
	cs.Promote(now)
	return *cs
}

// Demote applies a miss to id and returns the resulting state.
func (p *Progress) Demote(id string, now time.Time) CardState {
	cs := p.Card(id)
	cs.Demote(now)
	return *cs
}

// Weight returns the sampling weight for id without creating an entry.
func (p *Progress) Weight(id string, now time.Time) float64 {
	cs, _ := p.Lookup(id)
	return Weight(cs, now)
}

// Delete removes the entry for id.
func (p *Progress) Delete(id string) {
	delete(p.cards, id)
}

// IDs returns all tracked IDs in sorted order.
func (p *Progress) IDs() []string {
	ids := make([]string, 0, len(p.cards))
	for id := range p.cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of tracked IDs.
func (p *Progress) Len() int {
	return len(p.cards)
}

// DueIDs returns the sorted IDs whose card is overdue at now.
func (p *Progress) DueIDs(now time.Time) []string {
	var ids []string
	for _, id := range p.IDs() {
		if p.cards[id].IsOverdue(now) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clone returns a deep copy.
func (p *Progress) Clone() *Progress {
	out := NewProgress()
	for id, cs := range p.cards {
		c := *cs
		out.cards[id] = &c
	}
	return out
}
