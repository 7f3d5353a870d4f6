package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifecodex/internal/engine"
	"lifecodex/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var reset bool
	var history string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show character stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ledger := eng.Stats()

			if reset {
				if err := ledger.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("All stats reset to zero."))
				return nil
			}

			if history != "" {
				stat, ok := engine.ParseStat(history)
				if !ok {
					return fmt.Errorf("unknown stat: %q", history)
				}
				entries := ledger.History(stat)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.StatIcon(string(stat)), string(stat)+" history"))
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No entries."))
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %+d  %s\n",
						ui.Muted.Render(e.Timestamp.Format("2006-01-02 15:04")), e.Amount, e.Source)
				}
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Character Stats"))
			for _, s := range ledger.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-13s lvl %-2d %s %d/100 (%d xp)\n",
					ui.StatIcon(string(s.Name)), s.Name,
					engine.StatLevel(s.XP), ui.Bar(engine.StatProgress(s.XP), 100, 10),
					engine.StatProgress(s.XP), s.XP)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Reset all stats and clear history")
	cmd.Flags().StringVar(&history, "history", "", "Show XP history for one stat")

	return cmd
}
