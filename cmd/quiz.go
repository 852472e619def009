package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	xterm "github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/gamestate"
	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/session"
	"github.com/abhisek/leitner/internal/spacedrep"
	"github.com/abhisek/leitner/internal/store"
	"github.com/abhisek/leitner/internal/terminal"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Answer a weighted set, then re-serve misses until none remain",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, session.ModeExam)
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer weighted batches until you quit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, session.ModePractice)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Drill the questions you miss most, then re-serve misses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, session.ModeReview)
	},
}

func init() {
	for _, c := range []*cobra.Command{examCmd, practiceCmd, reviewCmd} {
		addPoolFlags(c)
		c.Flags().IntP("num", "n", 0, "Questions per set (default LEITNER_NUM; 10 for review)")
		c.Flags().StringP("chapters", "c", "", `Filter by chapters, e.g. "3,4,9-12"`)
		c.Flags().StringP("tags", "t", "", `Filter by tags (comma or space separated), e.g. "calvin,photosynthesis"`)
		c.Flags().Bool("plain", false, "Use line prompts even when stdin is a terminal")
	}
}

// addPoolFlags adds the flags that pick a question pool.
func addPoolFlags(c *cobra.Command) {
	c.Flags().StringP("pool", "p", "", "Registered pool id (default: built-in pool)")
	c.Flags().StringP("source", "s", "", "Path to a CSV, JSON or YAML bank to use without registering it")
}

// loadPool resolves --pool or --source to pool metadata and questions.
func loadPool(ctx context.Context, cmd *cobra.Command, d *deps) (store.Pool, []question.Question, error) {
	poolID, _ := cmd.Flags().GetString("pool")
	source, _ := cmd.Flags().GetString("source")
	switch {
	case poolID != "" && source != "":
		return store.Pool{}, nil, fmt.Errorf("use --pool or --source, not both")
	case source != "":
		return d.catalog.FromPath(ctx, source)
	default:
		return d.catalog.Load(ctx, poolID)
	}
}

// serveFunc runs one batch through a front end.
type serveFunc func(ctx context.Context, r *session.Runner, game *gamestate.Service) error

// frontEnd picks the bubbletea quiz for an interactive terminal and line
// prompts otherwise.
func frontEnd(cmd *cobra.Command, term *terminal.Terminal) serveFunc {
	plain, _ := cmd.Flags().GetBool("plain")
	in, ok := cmd.InOrStdin().(*os.File)
	if plain || !ok || !xterm.IsTerminal(in.Fd()) {
		return term.Run
	}
	return func(ctx context.Context, r *session.Runner, game *gamestate.Service) error {
		return terminal.RunInteractive(ctx, r, game, tea.WithInput(in), tea.WithOutput(cmd.OutOrStdout()))
	}
}

func runQuiz(cmd *cobra.Command, mode session.Mode) error {
	ctx := cmd.Context()
	// Progress is saved even after an interrupt ends the session.
	saveCtx := context.WithoutCancel(ctx)
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	meta, pool, err := loadPool(ctx, cmd, d)
	if err != nil {
		return err
	}
	chapters, _ := cmd.Flags().GetString("chapters")
	tags, _ := cmd.Flags().GetString("tags")
	pool = question.Filter(pool, question.ParseChapters(chapters), question.ParseTags(tags))
	if len(pool) == 0 {
		return fmt.Errorf("%w: try changing --chapters/--tags", session.ErrEmptyPool)
	}

	n, _ := cmd.Flags().GetInt("num")
	if n == 0 && mode != session.ModeReview {
		n = cfg.DefaultNum
	}

	key := store.ProgressKey(cfg.Player, meta.ID)
	loaded := spacedrep.Load(ctx, d.progress, key)
	if loaded.Status == spacedrep.StatusRecovered {
		d.logger.Warn("progress unreadable, starting empty", "key", key, "reason", loaded.Reason)
	}
	if loaded.Repaired > 0 {
		d.logger.Warn("progress records repaired", "key", key, "count", loaded.Repaired)
	}
	progress := loaded.Progress

	game, err := gamestate.NewService(saveCtx, d.store.GameRepo(), cfg.Player, d.logger)
	if err != nil {
		return err
	}
	sessionID := uuid.New().String()
	sink := session.MultiSink{game, d.store.EventRepo().AnswerSink(saveCtx, sessionID, cfg.Player, meta.ID, d.logger)}

	clk := clock.System{}
	term := terminal.New(cmd.InOrStdin(), cmd.OutOrStdout())
	serve := frontEnd(cmd, term)
	total := session.Summary{Mode: mode}
	started := clk.Now()

	for batch := 1; ; batch++ {
		set, err := session.BuildSet(session.Plan{Mode: mode, N: n}, pool, progress, clk.Now(), nil)
		if errors.Is(err, session.ErrNothingToReview) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review yet: answer some questions in exam or practice mode first.")
			return nil
		}
		if err != nil {
			return err
		}
		runner, err := session.NewRunner(set, progress, session.Options{Mode: mode, Clock: clk, Sink: sink})
		if err != nil {
			return err
		}
		if mode == session.ModePractice {
			term.Heading(fmt.Sprintf("Practice Batch %d · %s", batch, meta.Name))
		}

		runErr := serve(ctx, runner, game)
		mergeSummary(&total, session.BuildSummary(runner))
		if runErr != nil && !errors.Is(runErr, terminal.ErrQuit) {
			return runErr
		}
		if runErr != nil || mode != session.ModePractice || !term.Continue(ctx) {
			break
		}
	}
	total.Duration = clk.Now().Sub(started)

	if err := spacedrep.Save(saveCtx, d.progress, key, progress); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	err = d.store.EventRepo().AppendSessionEvent(saveCtx, store.SessionEventData{
		SessionID:       sessionID,
		Mode:            string(mode),
		PoolID:          meta.ID,
		PoolSize:        len(pool),
		Chapters:        chapters,
		Tags:            tags,
		Player:          cfg.Player,
		QuestionsServed: total.Served,
		CorrectAnswers:  total.Correct,
		DurationSecs:    int(total.Duration.Seconds()),
		Timestamp:       clk.Now(),
	})
	if err != nil {
		d.logger.Warn("session log write failed", "session", sessionID, "error", err)
	}

	term.Summary(total, game)
	fmt.Fprintf(cmd.OutOrStdout(), "\nProgress saved for %s (%s).\n", cfg.Player, meta.Name)
	return nil
}

// mergeSummary folds one batch into the running total.
func mergeSummary(total *session.Summary, batch session.Summary) {
	total.Served += batch.Served
	total.Correct += batch.Correct
	total.Rounds = append(total.Rounds, batch.Rounds...)
	if total.Served > 0 {
		total.Accuracy = float64(total.Correct) / float64(total.Served)
	}
}
