package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifecodex/internal/engine"
	"lifecodex/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalListCmd(),
		newGoalDoneCmd(),
		newGoalRmCmd(),
	)
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var desc string
	var deadline string
	var stat string
	var value int
	var tags []string
	var skillIDs []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal with an XP reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			reward := engine.Reward{Type: engine.RewardXP, Value: value}
			if stat != "" {
				statName, ok := engine.ParseStat(stat)
				if !ok {
					return fmt.Errorf("unknown stat: %q", stat)
				}
				reward.Stat = statName
			}

			var due time.Time
			if deadline != "" {
				due, err = time.Parse("2006-01-02", deadline)
				if err != nil {
					return fmt.Errorf("deadline must be YYYY-MM-DD: %w", err)
				}
			}

			g, err := eng.Goals().AddGoal(ctx, engine.GoalInput{
				Title:       args[0],
				Description: desc,
				Deadline:    due,
				Reward:      reward,
				Tags:        tags,
				SkillIDs:    skillIDs,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added goal %q (%s)\n", ui.IconGoal, g.Title, ui.Muted.Render(shortID(g.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&stat, "stat", "s", "", "Stat rewarded on completion")
	cmd.Flags().IntVarP(&value, "xp", "x", 0, "XP reward value")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tags (repeatable)")
	cmd.Flags().StringSliceVar(&skillIDs, "skill", nil, "Linked skill ids (repeatable, each gets the full reward)")

	return cmd
}

func newGoalListCmd() *cobra.Command {
	var all bool
	var done bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals by deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var goals []engine.Goal
			switch {
			case all:
				goals = eng.Goals().SortedByDeadline()
			case done:
				goals = eng.Goals().Completed()
			default:
				goals = eng.Goals().Active()
			}

			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No goals."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGoal, "Goals"))
			for _, g := range goals {
				line := fmt.Sprintf("%s %s  %s", ui.Muted.Render(shortID(g.ID)), ui.CompletionIcon(g.IsComplete), g.Title)
				if g.Reward.Type == engine.RewardXP && g.Reward.Stat != "" {
					line += ui.Muted.Render(fmt.Sprintf("  (+%d %s)", g.Reward.Value, g.Reward.Stat))
				}
				if len(g.SkillIDs) > 0 {
					line += ui.Muted.Render(fmt.Sprintf("  [%d skill(s)]", len(g.SkillIDs)))
				}
				if !g.Deadline.IsZero() {
					line += ui.Warn.Render("  due " + g.Deadline.Format("2006-01-02"))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed goals")
	cmd.Flags().BoolVar(&done, "done", false, "Only completed goals")

	return cmd
}

func newGoalDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a goal's completion (rewards apply, toggling back reverses them)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := eng.Goals().ToggleComplete(ctx, resolveGoalID(eng, args[0]))
			if err != nil {
				return err
			}
			if res == nil {
				return fmt.Errorf("goal %q not found", args[0])
			}
			if res.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Goal complete: %+d XP", ui.IconDone, res.XPDelta)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Goal reopened: %+d XP", ui.IconOpen, res.XPDelta)
			}
			if res.Stat != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " to %s", res.Stat)
			}
			if len(res.SkillIDs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " and %d skill(s)", len(res.SkillIDs))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newGoalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal (granted XP is kept)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := resolveGoalID(eng, args[0])
			if _, ok := eng.Goals().Get(id); !ok {
				return fmt.Errorf("goal %q not found", args[0])
			}
			if err := eng.Goals().DeleteGoal(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Goal deleted."))
			return nil
		},
	}
}

// resolveGoalID accepts a full id or an unambiguous prefix.
func resolveGoalID(eng *engine.Engine, input string) string {
	if _, ok := eng.Goals().Get(input); ok {
		return input
	}
	match := input
	count := 0
	for _, g := range eng.Goals().All() {
		if len(input) >= 4 && len(g.ID) >= len(input) && g.ID[:len(input)] == input {
			match = g.ID
			count++
		}
	}
	if count == 1 {
		return match
	}
	return input
}
