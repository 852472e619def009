package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/ui/theme"
)

// MultiChoice is a four-option chooser for one question. Options can be
// picked by letter or by moving the cursor and pressing enter.
type MultiChoice struct {
	Question  question.Question
	Cursor    int
	Submitted bool
	Chosen    question.Label
}

// NewMultiChoice creates a chooser with the cursor on the first option.
func NewMultiChoice(q question.Question) MultiChoice {
	return MultiChoice{Question: q}
}

// Update moves the cursor or submits. It ignores input once submitted.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < question.NumOptions-1 {
			m.Cursor++
		}
	case "enter":
		m.submit(question.Labels()[m.Cursor])
	default:
		if l, err := question.ParseLabel(kmsg.Text); err == nil {
			m.Cursor = l.Index()
			m.submit(l)
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(l question.Label) {
	m.Submitted = true
	m.Chosen = l
}

// IsCorrect reports whether the submitted choice is the answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Question.IsCorrect(m.Chosen)
}

// View renders the prompt and the options. After submission the answer is
// marked green and a wrong choice red.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Prompt.Render(m.Question.Prompt))
	b.WriteString("\n\n")

	for i, l := range question.Labels() {
		prefix := "  "
		if i == m.Cursor && !m.Submitted {
			prefix = "▸ "
		}
		label := theme.OptionLabel.Render(string(l) + ")")
		text := m.Question.Option(l)

		switch {
		case !m.Submitted && i == m.Cursor:
			text = theme.Selected.Render(text)
		case !m.Submitted:
			text = theme.Option.Render(text)
		case l == m.Question.Answer:
			text = theme.Correct.Render(text)
		case l == m.Chosen:
			text = theme.Incorrect.Render(text)
		default:
			text = theme.Explanation.Render(text)
		}
		b.WriteString(prefix + label + " " + text + "\n")
	}
	return b.String()
}
