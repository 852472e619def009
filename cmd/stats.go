package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/spacedrep"
	"github.com/abhisek/leitner/internal/stats"
	"github.com/abhisek/leitner/internal/store"
	"github.com/abhisek/leitner/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics for a pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		meta, pool, err := loadPool(ctx, cmd, d)
		if err != nil {
			return err
		}
		key := store.ProgressKey(cfg.Player, meta.ID)
		loaded := spacedrep.Load(ctx, d.progress, key)
		if loaded.Status == spacedrep.StatusRecovered {
			d.logger.Warn("progress unreadable, showing empty stats", "key", key, "reason", loaded.Reason)
		}
		s := stats.Compute(pool, loaded.Progress, clock.System{}.Now())

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%s · %s", meta.Name, cfg.Player)))
		fmt.Fprintf(out, "%-16s %d\n", "Questions", s.Total)
		fmt.Fprintf(out, "%-16s %d\n", "Answered", s.Answered)
		fmt.Fprintf(out, "%-16s %d\n", "Ever missed", s.WrongCount)
		fmt.Fprintf(out, "%-16s %d\n", "Total misses", s.IncorrectTotal)
		fmt.Fprintf(out, "%-16s %.2f\n", "Average box", s.AvgBox)
		fmt.Fprintf(out, "%-16s %d\n", "Due now", s.DueCount)
		fmt.Fprintf(out, "%-16s %d%% (%d streak / %d misses)\n", "Accuracy",
			s.Accuracy.Percent, s.Accuracy.Correct, s.Accuracy.Incorrect)
		if s.MostCorrect != nil {
			fmt.Fprintf(out, "%-16s %s (%d)\n", "Best streak", s.MostCorrect.ID, s.MostCorrect.Count)
		}
		if s.MostWrong != nil && s.MostWrong.Count > 0 {
			fmt.Fprintf(out, "%-16s %s (%d)\n", "Most missed", s.MostWrong.ID, s.MostWrong.Count)
		}

		fmt.Fprintln(out)
		for i, n := range s.BoxCounts {
			fmt.Fprintf(out, "Box %d %s %d\n", i+1, theme.BoxMeter(i+1, spacedrep.MaxBox), n)
		}

		if tl := stats.Timeline(loaded.Progress); len(tl.Labels) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Last seen (cumulative)")
			for i, day := range tl.Labels {
				fmt.Fprintf(out, "  %s  %d\n", day, tl.Values[i])
			}
		}

		recent, err := d.store.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{
			Limit: 5, Player: cfg.Player, PoolID: meta.ID,
		})
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Recent sessions")
			fmt.Fprintln(out, strings.Repeat("─", 48))
			for _, r := range recent {
				fmt.Fprintf(out, "  %s  %-8s %3d/%-3d\n",
					r.Timestamp.Format("2006-01-02 15:04"), r.Mode, r.CorrectAnswers, r.QuestionsServed)
			}
		}
		return nil
	},
}

func init() {
	addPoolFlags(statsCmd)
}
