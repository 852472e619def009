package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete your progress for a pool (and optionally your points)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		meta, _, err := loadPool(ctx, cmd, d)
		if err != nil {
			return err
		}
		withGame, _ := cmd.Flags().GetBool("game")
		yes, _ := cmd.Flags().GetBool("yes")

		out := cmd.OutOrStdout()
		if !yes {
			what := "progress"
			if withGame {
				what = "progress and points"
			}
			fmt.Fprintf(out, "Delete %s's %s for %q? [y/N]: ", cfg.Player, what, meta.Name)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		n, err := d.progress.ResetProgress(ctx, store.ProgressKey(cfg.Player, meta.ID))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d progress entries.\n", n)

		if withGame {
			if err := d.store.GameRepo().DeleteGameState(ctx, cfg.Player); err != nil {
				return err
			}
			fmt.Fprintln(out, "Points, rank and streaks reset.")
		}
		return nil
	},
}

func init() {
	addPoolFlags(resetCmd)
	resetCmd.Flags().Bool("game", false, "Also reset points, rank and streaks")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
