// Package terminal drives a session runner from a line-oriented console:
// it renders each question, reads an answer label, and prints immediate
// feedback, round summaries and the session summary.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/leitner/internal/gamestate"
	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/session"
	"github.com/abhisek/leitner/internal/spacedrep"
	"github.com/abhisek/leitner/internal/ui/theme"
)

// ErrQuit is returned when the user quits or input ends mid-session.
var ErrQuit = errors.New("quit")

const ruleWidth = 72

// Terminal reads answers from in and writes to out.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Terminal over the given streams.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Heading prints a title between two rules.
func (t *Terminal) Heading(title string) {
	rule := theme.Rule.Render(strings.Repeat("=", ruleWidth))
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, rule)
	fmt.Fprintln(t.out, theme.Title.Render(title))
	fmt.Fprintln(t.out, rule)
}

// Run serves r until it is done. game may be nil. Quitting, end of input
// and ctx ending all stop the runner and return ErrQuit; answers given so
// far stay applied.
func (t *Terminal) Run(ctx context.Context, r *session.Runner, game *gamestate.Service) error {
	round := -1
	for {
		if ctx.Err() != nil {
			r.Stop()
			return ErrQuit
		}
		q, ok := r.Current()
		if !ok {
			return nil
		}
		if r.Round() != round {
			round = r.Round()
			_, total := r.Position()
			t.Heading(roundHeading(round, total))
			fmt.Fprintln(t.out, theme.Hint.Render("Enter A/B/C/D (or q to quit). Feedback is immediate."))
		}
		t.question(r, q)

		out, err := t.answer(ctx, r)
		if err != nil {
			return err
		}
		fmt.Fprint(t.out, feedback(out, game))
		if out.Round != nil {
			fmt.Fprintln(t.out)
			fmt.Fprintln(t.out, theme.Title.Render(out.Round.String()))
		}
	}
}

// roundHeading titles a round: "Initial Round: 5 question(s)" or
// "Review Round 2 (missed only): 1 question(s)".
func roundHeading(round, total int) string {
	title := session.RoundSummary{Round: round}.Title()
	if round == 0 {
		title += " Round"
	} else {
		title += " (missed only)"
	}
	return fmt.Sprintf("%s: %d question(s)", title, total)
}

func (t *Terminal) question(r *session.Runner, q question.Question) {
	pos, total := r.Position()
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, theme.Rule.Render(strings.Repeat("-", ruleWidth)))

	meta := fmt.Sprintf("[%d/%d] %s", pos, total, q.ID)
	if q.Chapter != "" {
		meta += " · ch. " + q.Chapter
	}
	fmt.Fprintln(t.out, theme.QuestionID.Render(meta))
	fmt.Fprintln(t.out, theme.Prompt.Render(q.Prompt))
	for _, l := range question.Labels() {
		fmt.Fprintf(t.out, "  %s %s\n", theme.OptionLabel.Render(string(l)+")"), theme.Option.Render(q.Option(l)))
	}
}

// answer reads lines until one parses as a label or the user quits.
func (t *Terminal) answer(ctx context.Context, r *session.Runner) (session.Outcome, error) {
	for {
		fmt.Fprint(t.out, "Your answer (A/B/C/D or q): ")
		line, err := t.readLine(ctx)
		if err != nil {
			r.Stop()
			return session.Outcome{}, ErrQuit
		}
		if strings.EqualFold(line, "q") {
			r.Stop()
			return session.Outcome{}, ErrQuit
		}

		out, err := r.SubmitString(line)
		if errors.Is(err, question.ErrInvalidLabel) {
			fmt.Fprintln(t.out, theme.Hint.Render("Please enter A, B, C, D or q."))
			continue
		}
		return out, err
	}
}

// feedback renders the verdict for one answer, ending in a newline.
func feedback(out session.Outcome, game *gamestate.Service) string {
	var b strings.Builder
	q := out.Question
	if out.Correct {
		b.WriteString(theme.Correct.Render("✓ Correct."))
	} else {
		fmt.Fprintf(&b, "%s Correct: %s) %s",
			theme.Incorrect.Render("✗ Incorrect."), q.Answer, q.Option(q.Answer))
	}
	fmt.Fprintf(&b, "  %s box %d\n", theme.BoxMeter(out.Card.Box, spacedrep.MaxBox), out.Card.Box)

	if q.Explanation != "" {
		b.WriteString(theme.Explanation.Render("ℹ "+q.Explanation) + "\n")
	}
	if game == nil {
		return b.String()
	}
	if award, ok := game.LastAward(); ok {
		st := game.State()
		b.WriteString(theme.Points.Render(
			fmt.Sprintf("%+d points · %d total · %s %s", award.Delta, st.Points, st.Rank, st.Rank.Icon())) + "\n")
	}
	return b.String()
}

// Continue asks whether to serve another batch. End of input or ctx ending
// means no.
func (t *Terminal) Continue(ctx context.Context) bool {
	fmt.Fprint(t.out, "\nPress Enter for another batch, or q to quit: ")
	line, err := t.readLine(ctx)
	if err != nil {
		return false
	}
	return !strings.EqualFold(line, "q")
}

// Summary prints the session totals. game may be nil.
func (t *Terminal) Summary(sum session.Summary, game *gamestate.Service) {
	var b strings.Builder
	fmt.Fprintf(&b, "Served %d · correct %d · accuracy %.0f%%", sum.Served, sum.Correct, sum.Accuracy*100)
	for _, rs := range sum.Rounds {
		fmt.Fprintf(&b, "\n%-18s %d/%d", rs.Title(), rs.Correct, rs.Total)
	}
	if game != nil {
		st := game.State()
		fmt.Fprintf(&b, "\nPoints %+d this session · %d total · %s %s · day streak %d",
			game.SessionDelta, st.Points, st.Rank, st.Rank.Icon(), st.DailyStreak)
	}
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, theme.Summary.Render(b.String()))

	if sum.Mode == session.ModeExam && len(sum.Rounds) > 0 && len(sum.Rounds[len(sum.Rounds)-1].Missed) == 0 {
		fmt.Fprintln(t.out, theme.Correct.Render("All questions mastered this session."))
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the next trimmed line. A last line without a newline
// still counts. The read is abandoned when ctx ends.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	res := make(chan lineResult, 1)
	go func() {
		line, err := t.in.ReadString('\n')
		res <- lineResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-res:
		if r.err != nil && (r.err != io.EOF || r.line == "") {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}
