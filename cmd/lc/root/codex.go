package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifecodex/internal/engine"
	"lifecodex/internal/ui"
)

func newCodexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codex",
		Short: "Manage codex (journal) entries",
	}
	cmd.AddCommand(
		newCodexAddCmd(),
		newCodexListCmd(),
		newCodexRmCmd(),
	)
	return cmd
}

func newCodexAddCmd() *cobra.Command {
	var summary string
	var source string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a codex entry",
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

			e, err := eng.Codex().AddEntry(ctx, engine.EntryInput{
				Title:   args[0],
				Summary: summary,
				Source:  source,
				Tags:    tags,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added entry %q (%s)\n", ui.IconBook, e.Title, ui.Muted.Render(shortID(e.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&summary, "summary", "s", "", "Entry summary")
	cmd.Flags().StringVar(&source, "source", "", "Where this came from")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tags (repeatable)")

	return cmd
}

func newCodexListCmd() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List codex entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries := eng.Codex().Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Codex is empty."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Codex"))
			for _, e := range entries {
				if tag != "" && !hasTag(e.Tags, tag) {
					continue
				}
				line := fmt.Sprintf("%s %s  %s", ui.Muted.Render(shortID(e.ID)), ui.Muted.Render(e.CreatedAt.Format("2006-01-02")), e.Title)
				if len(e.Tags) > 0 {
					line += ui.Muted.Render("  #" + strings.Join(e.Tags, " #"))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				if e.Summary != "" {
					fmt.Fprintln(cmd.OutOrStdout(), "    "+ui.Muted.Render(e.Summary))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only entries with this tag")

	return cmd
}

func newCodexRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a codex entry",
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

			if err := eng.Codex().RemoveEntry(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Entry removed."))
			return nil
		},
	}
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
