package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifecodex/internal/engine"
	"lifecodex/internal/ui"
)

func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage skills",
	}
	cmd.AddCommand(
		newSkillAddCmd(),
		newSkillListCmd(),
		newSkillGainCmd(),
		newSkillLoseCmd(),
	)
	return cmd
}

func newSkillAddCmd() *cobra.Command {
	var stat string
	var desc string
	var difficulty float64

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			statName, ok := engine.ParseStat(stat)
			if !ok {
				return fmt.Errorf("unknown stat: %q", stat)
			}

			id, err := eng.Skills().CreateManualSkill(ctx, args[0], desc, statName, difficulty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added skill %q (%s)\n", ui.IconSkill, args[0], ui.Muted.Render(id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&stat, "stat", "s", "Wisdom", "Stat the skill affects")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().Float64Var(&difficulty, "difficulty", 1, "Difficulty multiplier for the XP curve")

	return cmd
}

func newSkillListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			skills := eng.Skills().List()
			if len(skills) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No skills discovered yet."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSkill, "Skills"))
			for _, s := range skills {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s lvl %-2d %-12s %d/%d xp  %s %s\n",
					ui.Muted.Render(shortID(s.ID)), s.Name, s.Level, s.Title, s.XP, s.XPToNext,
					ui.StatIcon(string(s.StatAffected)), ui.Muted.Render(string(s.StatAffected)))
				for _, p := range s.UnlockedPaths {
					fmt.Fprintf(cmd.OutOrStdout(), "      %s %s\n", ui.IconTrophy, ui.Gold.Render(p))
				}
			}
			return nil
		},
	}
}

func newSkillGainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gain <id> <amount>",
		Short: "Grant XP to a skill",
		Args:  skillAmountArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillXP(cmd, args, true)
		},
	}
}

func newSkillLoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lose <id> <amount>",
		Short: "Remove XP from a skill",
		Args:  skillAmountArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillXP(cmd, args, false)
		},
	}
}

func skillAmountArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.New("id and amount are required")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 {
		return errors.New("amount must be a non-negative integer")
	}
	return nil
}

func runSkillXP(cmd *cobra.Command, args []string, gain bool) error {
	ctx := context.Background()
	eng, cleanup, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	id := resolveSkillID(eng, args[0])
	amount, _ := strconv.Atoi(args[1])

	if _, ok := eng.Skills().Get(id); !ok {
		return fmt.Errorf("skill %q not found", args[0])
	}

	if gain {
		err = eng.Skills().GainXP(ctx, id, amount)
	} else {
		err = eng.Skills().LoseXP(ctx, id, amount)
	}
	if err != nil {
		return err
	}

	s, _ := eng.Skills().Get(id)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: lvl %d %s, %d/%d xp\n",
		ui.IconBolt, s.Name, s.Level, ui.Muted.Render(s.Title), s.XP, s.XPToNext)
	return nil
}

// resolveSkillID accepts a full id or an unambiguous prefix.
func resolveSkillID(eng *engine.Engine, input string) string {
	if _, ok := eng.Skills().Get(input); ok {
		return input
	}
	match := input
	count := 0
	for _, s := range eng.Skills().List() {
		if len(input) >= 4 && len(s.ID) >= len(input) && s.ID[:len(input)] == input {
			match = s.ID
			count++
		}
	}
	if count == 1 {
		return match
	}
	return input
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
