package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/config"
	"github.com/abhisek/leitner/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leitner",
	Short: "Leitner-box quiz trainer",
	Long: "Leitner: a multiple-choice quiz trainer with spaced repetition.\n" +
		"Questions you miss come back sooner; questions you know drift to higher boxes.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if p, _ := cmd.Flags().GetString("player"); p != "" {
			cfg.Player = p
		}
		if b, _ := cmd.Flags().GetString("backend"); b != "" {
			if b != config.BackendSQLite && b != config.BackendFile {
				return fmt.Errorf("--backend must be %q or %q", config.BackendSQLite, config.BackendFile)
			}
			cfg.Backend = b
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
		return nil
	},
}

// Execute runs the command tree; ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEITNER_DB env var)")
	rootCmd.PersistentFlags().String("player", "", "Player name scoping progress and points (overrides LEITNER_PLAYER)")
	rootCmd.PersistentFlags().String("backend", "", "Progress backend: sqlite or file (overrides LEITNER_PROGRESS_BACKEND)")

	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(poolCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEITNER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, config.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, config.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
