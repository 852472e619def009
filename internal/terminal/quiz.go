package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leitner/internal/gamestate"
	"github.com/abhisek/leitner/internal/session"
	"github.com/abhisek/leitner/internal/ui/components"
	"github.com/abhisek/leitner/internal/ui/theme"
)

type quizKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pick   key.Binding
	Submit key.Binding
	Next   key.Binding
	Quit   key.Binding
}

var quizKeys = quizKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Pick:   key.NewBinding(key.WithKeys("a", "b", "c", "d", "A", "B", "C", "D"), key.WithHelp("a-d", "answer")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Next:   key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "next")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Quiz is the interactive front end: a bubbletea model that serves a runner
// one question at a time with immediate feedback.
type Quiz struct {
	runner *session.Runner
	game   *gamestate.Service

	choice     components.MultiChoice
	help       help.Model
	heading    string
	pos, total int
	feedback   *session.Outcome

	quit bool
	err  error
}

var _ tea.Model = (*Quiz)(nil)

// NewQuiz creates a quiz over r. game may be nil.
func NewQuiz(r *session.Runner, game *gamestate.Service) *Quiz {
	m := &Quiz{runner: r, game: game, help: help.New()}
	m.load()
	return m
}

// load puts the runner's current question in front of the user.
func (m *Quiz) load() bool {
	q, ok := m.runner.Current()
	if !ok {
		return false
	}
	m.pos, m.total = m.runner.Position()
	m.heading = roundHeading(m.runner.Round(), m.total)
	m.choice = components.NewMultiChoice(q)
	return true
}

// Done reports whether the runner has nothing left to serve.
func (m *Quiz) Done() bool {
	return m.runner.Phase() == session.PhaseDone
}

// Quit reports whether the user left before the runner was done.
func (m *Quiz) Quit() bool { return m.quit }

// Err returns the error that ended the quiz, if any.
func (m *Quiz) Err() error { return m.err }

func (m *Quiz) Init() tea.Cmd {
	if m.Done() {
		return tea.Quit
	}
	return nil
}

func (m *Quiz) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(kmsg, quizKeys.Quit) {
		m.runner.Stop()
		m.quit = true
		return m, tea.Quit
	}

	if m.feedback != nil {
		if !key.Matches(kmsg, quizKeys.Next) {
			return m, nil
		}
		m.feedback = nil
		if !m.load() {
			return m, tea.Quit
		}
		return m, nil
	}

	m.choice, _ = m.choice.Update(kmsg)
	if !m.choice.Submitted {
		return m, nil
	}
	out, err := m.runner.Submit(m.choice.Chosen)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.feedback = &out
	return m, nil
}

func (m *Quiz) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Quiz) render() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(m.heading))
	b.WriteString("\n")

	q := m.choice.Question
	meta := fmt.Sprintf("[%d/%d] %s", m.pos, m.total, q.ID)
	if q.Chapter != "" {
		meta += " · ch. " + q.Chapter
	}
	b.WriteString(theme.QuestionID.Render(meta))
	b.WriteString("\n\n")
	b.WriteString(m.choice.View())
	b.WriteString("\n")

	if m.feedback != nil {
		b.WriteString(feedback(*m.feedback, m.game))
		if m.feedback.Round != nil {
			b.WriteString("\n" + theme.Title.Render(m.feedback.Round.String()) + "\n")
		}
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{quizKeys.Next, quizKeys.Quit}))
	} else {
		b.WriteString(m.help.ShortHelpView([]key.Binding{quizKeys.Pick, quizKeys.Up, quizKeys.Down, quizKeys.Submit, quizKeys.Quit}))
	}
	b.WriteString("\n")
	return b.String()
}

// RunInteractive serves r through a bubbletea program until the runner is
// done, the user quits or ctx ends. opts are passed to the program, e.g.
// tea.WithInput and tea.WithOutput. Like Terminal.Run it returns ErrQuit
// with the runner stopped when the session ends early.
func RunInteractive(ctx context.Context, r *session.Runner, game *gamestate.Service, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewQuiz(r, game), opts...).Run()
	if err != nil {
		r.Stop()
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return ErrQuit
		}
		return fmt.Errorf("quiz ui: %w", err)
	}

	m, ok := final.(*Quiz)
	switch {
	case !ok:
		return nil
	case m.Err() != nil:
		return m.Err()
	case m.Quit():
		return ErrQuit
	}
	return nil
}
