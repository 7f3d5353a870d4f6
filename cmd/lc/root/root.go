package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifecodex/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lc",
	Short:         "Life Codex — personal life RPG tracker",
	Long:          "Life Codex is a local-first CLI/TUI tracker: goals award XP to character stats and linked skills.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatsCmd(),
		newSkillCmd(),
		newGoalCmd(),
		newCodexCmd(),
		newDashboardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
