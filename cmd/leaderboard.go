package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/gamestate"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top players and your recent points",
	RunE: func(cmd *cobra.Command, args []string) error {
		byFlag, _ := cmd.Flags().GetString("by")
		by := gamestate.SortBy(byFlag)
		if by != gamestate.SortPoints && by != gamestate.SortRank {
			return fmt.Errorf("--by must be %q or %q", gamestate.SortPoints, gamestate.SortRank)
		}
		historyN, _ := cmd.Flags().GetInt("history")

		ctx := cmd.Context()
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		game, err := gamestate.NewService(ctx, d.store.GameRepo(), cfg.Player, d.logger)
		if err != nil {
			return err
		}
		board, err := game.Leaderboard(ctx, by)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %-24s  %8s  %s\n", "#", "Player", "Points", "Rank")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		for i, e := range board.Top {
			marker := " "
			if e.Player == cfg.Player {
				marker = "*"
			}
			fmt.Fprintf(out, "%3d%s  %-24s  %8d  %s %s\n", i+1, marker, e.Player, e.Points, e.Rank.Icon(), e.Rank)
		}
		if board.Place > len(board.Top) {
			fmt.Fprintf(out, "\n%s is #%d with %d points\n", cfg.Player, board.Place, board.Points)
		}

		st := game.State()
		if next := gamestate.NextThreshold(st.Points); next > 0 {
			fmt.Fprintf(out, "\n%d points to the next rank · day streak %d\n", next-st.Points, st.DailyStreak)
		}

		if historyN <= 0 {
			return nil
		}
		history, err := d.store.GameRepo().History(ctx, cfg.Player, historyN)
		if err != nil {
			return err
		}
		if len(history) > 0 {
			fmt.Fprintln(out, "\nRecent points")
			for _, h := range history {
				fmt.Fprintf(out, "  %s  %+6d  %s\n", h.Timestamp.Format("2006-01-02 15:04"), h.Delta, h.Reason)
			}
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().String("by", string(gamestate.SortPoints), "Order by points or rank")
	leaderboardCmd.Flags().Int("history", 5, "Number of recent points changes to show (0 to hide)")
}
