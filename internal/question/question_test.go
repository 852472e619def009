package question

import (
	"errors"
	"testing"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in      string
		want    Label
		wantErr bool
	}{
		{"A", LabelA, false},
		{"b", LabelB, false},
		{" c ", LabelC, false},
		{"D", LabelD, false},
		{"E", "", true},
		{"", "", true},
		{"AB", "", true},
		{"1", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLabel(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidLabel) {
				t.Errorf("ParseLabel(%q) err = %v, want ErrInvalidLabel", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLabel(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestLabelIndex(t *testing.T) {
	for i, l := range Labels() {
		if l.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", l, l.Index(), i)
		}
	}
	if Label("a").Valid() {
		t.Error("lowercase label must not be valid without parsing")
	}
}

func TestNew_Normalizes(t *testing.T) {
	q, err := New(" 7 ", "  Prompt?  ", [NumOptions]string{" a ", "b ", " c", "d"}, " c ", " why ", " 12 ", []string{" Calvin ", "", "PSII"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if q.ID != "7" || q.Prompt != "Prompt?" || q.Explanation != "why" || q.Chapter != "12" {
		t.Errorf("text fields not trimmed: %+v", q)
	}
	if q.Answer != LabelC {
		t.Errorf("Answer = %q, want C", q.Answer)
	}
	if q.Options != [NumOptions]string{"a", "b", "c", "d"} {
		t.Errorf("Options = %q", q.Options)
	}
	if len(q.Tags) != 2 || q.Tags[0] != "calvin" || q.Tags[1] != "psii" {
		t.Errorf("Tags = %q, want [calvin psii]", q.Tags)
	}
	if q.Option(LabelC) != "c" {
		t.Errorf("Option(C) = %q", q.Option(LabelC))
	}
}

func TestNew_Rejects(t *testing.T) {
	opts := [NumOptions]string{"a", "b", "c", "d"}
	cases := map[string]struct {
		id, prompt, answer string
	}{
		"empty id":     {"", "p", "A"},
		"empty prompt": {"1", " ", "A"},
		"bad answer":   {"1", "p", "E"},
		"no answer":    {"1", "p", ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(c.id, c.prompt, opts, c.answer, "", "", nil)
			if !errors.Is(err, ErrInvalidQuestion) {
				t.Errorf("err = %v, want ErrInvalidQuestion", err)
			}
		})
	}
}

func TestIsCorrect(t *testing.T) {
	q, _ := New("1", "p", [NumOptions]string{"a", "b", "c", "d"}, "b", "", "", nil)
	if !q.IsCorrect(LabelB) {
		t.Error("expected B correct")
	}
	if q.IsCorrect(LabelA) || q.IsCorrect(Label("b")) {
		t.Error("expected only exact B to be correct")
	}
}

func TestBuiltin(t *testing.T) {
	qs := Builtin()
	if len(qs) != 40 {
		t.Fatalf("len(Builtin()) = %d, want 40", len(qs))
	}
	seen := make(map[string]bool)
	for _, q := range qs {
		if seen[q.ID] {
			t.Errorf("duplicate id %s", q.ID)
		}
		seen[q.ID] = true
		if q.Chapter == "" {
			t.Errorf("question %s has no chapter", q.ID)
		}
	}

	// Callers get an independent copy.
	qs[0].Tags = append(qs[0].Tags, "mutated")
	if Builtin()[0].HasTag("mutated") {
		t.Error("Builtin() shares state between calls")
	}
}
