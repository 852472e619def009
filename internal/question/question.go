package question

import (
	"errors"
	"fmt"
	"strings"
)

// NumOptions is the fixed number of answer choices per question.
const NumOptions = 4

var (
	// ErrInvalidLabel is returned for an answer label outside A-D.
	ErrInvalidLabel = errors.New("answer label must be one of A, B, C, D")

	// ErrInvalidQuestion is returned when a record fails validation.
	ErrInvalidQuestion = errors.New("invalid question")
)

// Label identifies one of the four positional answer choices.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels returns the answer labels in positional order.
func Labels() []Label {
	return []Label{LabelA, LabelB, LabelC, LabelD}
}

// ParseLabel accepts a single letter a-d in either case, surrounded by
// optional whitespace.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	return l, nil
}

// Valid reports whether l is exactly one of A, B, C, D.
func (l Label) Valid() bool {
	return l.Index() >= 0
}

// Index returns the option position for l, or -1 if l is not valid.
func (l Label) Index() int {
	switch l {
	case LabelA:
		return 0
	case LabelB:
		return 1
	case LabelC:
		return 2
	case LabelD:
		return 3
	}
	return -1
}

// Question is one multiple-choice quiz item. Values are normalized on
// construction and treated as immutable afterwards.
type Question struct {
	ID          string             `json:"id"`
	Prompt      string             `json:"prompt"`
	Options     [NumOptions]string `json:"options"`
	Answer      Label              `json:"answer"`
	Explanation string             `json:"explanation"`
	Chapter     string             `json:"chapter,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
}

// New builds a normalized, validated question.
func New(id, prompt string, options [NumOptions]string, answer, explanation, chapter string, tags []string) (Question, error) {
	q := Question{
		ID:          id,
		Prompt:      prompt,
		Options:     options,
		Answer:      Label(answer),
		Explanation: explanation,
		Chapter:     chapter,
		Tags:        tags,
	}
	q.normalize()
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// normalize trims text fields, uppercases the answer and lowercases tags.
// Empty tags are dropped.
func (q *Question) normalize() {
	q.ID = strings.TrimSpace(q.ID)
	q.Prompt = strings.TrimSpace(q.Prompt)
	q.Explanation = strings.TrimSpace(q.Explanation)
	q.Chapter = strings.TrimSpace(q.Chapter)
	q.Answer = Label(strings.ToUpper(strings.TrimSpace(string(q.Answer))))
	for i := range q.Options {
		q.Options[i] = strings.TrimSpace(q.Options[i])
	}

	var tags []string
	for _, t := range q.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	q.Tags = tags
}

// Validate checks the invariants a normalized question must satisfy.
func (q Question) Validate() error {
	switch {
	case q.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidQuestion)
	case q.Prompt == "":
		return fmt.Errorf("%w: %s: empty prompt", ErrInvalidQuestion, q.ID)
	case !q.Answer.Valid():
		return fmt.Errorf("%w: %s: answer %q is not one of A-D", ErrInvalidQuestion, q.ID, q.Answer)
	}
	return nil
}

// Option returns the text of the choice at label l.
func (q Question) Option(l Label) string {
	i := l.Index()
	if i < 0 {
		return ""
	}
	return q.Options[i]
}

// IsCorrect reports whether choice matches the answer exactly.
func (q Question) IsCorrect(choice Label) bool {
	return choice == q.Answer
}

// HasTag reports whether q carries any of tags.
func (q Question) HasTag(tags ...string) bool {
	for _, want := range tags {
		for _, t := range q.Tags {
			if t == want {
				return true
			}
		}
	}
	return false
}
