package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/question"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage question pools",
}

var poolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in pool and every registered pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		pools, err := d.catalog.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-36s  %-28s  %9s  %s\n", "ID", "Name", "Questions", "File")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, p := range pools {
			name := p.Name
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			fmt.Fprintf(out, "%-36s  %-28s  %9d  %s\n", p.ID, name, p.QuestionCount, p.OrigName)
		}
		fmt.Fprintf(out, "\n%d pools\n", len(pools))
		return nil
	},
}

var poolAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Validate a CSV, JSON or YAML bank and register it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		name, _ := cmd.Flags().GetString("name")
		p, err := d.catalog.Add(cmd.Context(), args[0], name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%d questions) as %s\n", p.Name, p.QuestionCount, p.ID)
		return nil
	},
}

var poolRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Unregister a pool and delete its progress",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.catalog.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed pool %s\n", args[0])
		return nil
	},
}

var poolRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Change a pool's display name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.catalog.Rename(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], args[1])
		return nil
	},
}

var poolShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the questions of a pool",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		id := question.BuiltinPoolID
		if len(args) == 1 {
			id = args[0]
		}
		meta, qs, err := d.catalog.Load(cmd.Context(), id)
		if err != nil {
			return err
		}
		withAnswers, _ := cmd.Flags().GetBool("answers")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%d questions)\n", meta.Name, len(qs))
		for _, q := range qs {
			fmt.Fprintf(out, "\n[%s] %s\n", q.ID, q.Prompt)
			for _, l := range question.Labels() {
				fmt.Fprintf(out, "  %s) %s\n", l, q.Option(l))
			}
			if withAnswers {
				fmt.Fprintf(out, "  answer: %s", q.Answer)
				if q.Chapter != "" {
					fmt.Fprintf(out, "  chapter: %s", q.Chapter)
				}
				if len(q.Tags) > 0 {
					fmt.Fprintf(out, "  tags: %s", strings.Join(q.Tags, ", "))
				}
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}

func init() {
	poolAddCmd.Flags().String("name", "", "Display name (default: file name)")
	poolShowCmd.Flags().Bool("answers", false, "Include answers, chapters and tags")

	poolCmd.AddCommand(poolListCmd)
	poolCmd.AddCommand(poolAddCmd)
	poolCmd.AddCommand(poolRemoveCmd)
	poolCmd.AddCommand(poolRenameCmd)
	poolCmd.AddCommand(poolShowCmd)
}
