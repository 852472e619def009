package spacedrep

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the persisted timestamp format: second precision, UTC.
const TimestampLayout = time.RFC3339

// naiveLayout is accepted on read for stores written without a zone suffix.
const naiveLayout = "2006-01-02T15:04:05"

// CardRecord is the persisted form of a CardState.
type CardRecord struct {
	Box            int     `json:"box"`
	CorrectStreak  int     `json:"correct_streak"`
	IncorrectCount int     `json:"incorrect_count"`
	LastSeen       *string `json:"last_seen"`
	Due            *string `json:"due"`
}

// FormatTimestamp renders t in the persisted layout. Zero time yields nil.
func FormatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Truncate(time.Second).Format(TimestampLayout)
	return &s
}

// ParseTimestamp parses a persisted timestamp. Nil, empty or unparseable
// input yields the zero time and ok=false.
func ParseTimestamp(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, naiveLayout} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC().Truncate(time.Second), true
		}
	}
	return time.Time{}, false
}

// ToRecord converts a card to its persisted form.
func ToRecord(cs CardState) CardRecord {
	return CardRecord{
		Box:            clampBox(cs.Box),
		CorrectStreak:  cs.CorrectStreak,
		IncorrectCount: cs.IncorrectCount,
		LastSeen:       FormatTimestamp(cs.LastSeen),
		Due:            FormatTimestamp(cs.Due),
	}
}

// FromRecord converts a persisted record into a card. Out-of-range or
// unparseable fields fall back to defaults; repaired reports how many.
func FromRecord(r CardRecord) (cs CardState, repaired int) {
	cs = NewCard()
	if r.Box >= MinBox && r.Box <= MaxBox {
		cs.Box = r.Box
	} else {
		repaired++
	}
	if r.CorrectStreak >= 0 {
		cs.CorrectStreak = r.CorrectStreak
	} else {
		repaired++
	}
	if r.IncorrectCount >= 0 {
		cs.IncorrectCount = r.IncorrectCount
	} else {
		repaired++
	}
	if t, ok := ParseTimestamp(r.LastSeen); ok {
		cs.LastSeen = t
	} else if r.LastSeen != nil {
		repaired++
	}
	if t, ok := ParseTimestamp(r.Due); ok {
		cs.Due = t
	} else if r.Due != nil {
		repaired++
	}
	return cs, repaired
}

// Records returns the persisted form of every entry.
func (p *Progress) Records() map[string]CardRecord {
	out := make(map[string]CardRecord, len(p.cards))
	for id, cs := range p.cards {
		out[id] = ToRecord(*cs)
	}
	return out
}

// FromRecords builds a Progress from persisted records. Empty IDs are
// skipped and counted as repairs.
func FromRecords(records map[string]CardRecord) (*Progress, int) {
	p := NewProgress()
	repaired := 0
	for id, r := range records {
		if strings.TrimSpace(id) == "" {
			repaired++
			continue
		}
		cs, n := FromRecord(r)
		repaired += n
		p.cards[id] = &cs
	}
	return p, repaired
}

// EncodeJSON renders progress as an indented JSON object keyed by ID.
func EncodeJSON(p *Progress) ([]byte, error) {
	data, err := json.MarshalIndent(p.Records(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeJSON parses the JSON progress document. Records with fields of the
// wrong type are replaced by defaults rather than failing the whole load.
func DecodeJSON(data []byte) (map[string]CardRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	out := make(map[string]CardRecord, len(raw))
	for id, msg := range raw {
		out[id] = decodeRecord(msg)
	}
	return out, nil
}

// decodeRecord tolerates per-field type errors by decoding field by field.
func decodeRecord(msg json.RawMessage) CardRecord {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil {
		return CardRecord{}
	}
	var r CardRecord
	intField := func(name string, dst *int) {
		if v, ok := fields[name]; ok {
			var n int
			if json.Unmarshal(v, &n) == nil {
				*dst = n
			} else {
				*dst = -1
			}
		}
	}
	strField := func(name string) *string {
		v, ok := fields[name]
		if !ok {
			return nil
		}
		var s *string
		if json.Unmarshal(v, &s) != nil {
			bad := string(v)
			return &bad
		}
		return s
	}
	intField("box", &r.Box)
	intField("correct_streak", &r.CorrectStreak)
	intField("incorrect_count", &r.IncorrectCount)
	r.LastSeen = strField("last_seen")
	r.Due = strField("due")
	return r
}
