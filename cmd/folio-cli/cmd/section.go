package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"folio/internal/adapters/codec"
	"folio/internal/adapters/markup"
	"folio/internal/application/commands"
	"folio/internal/domain"
)

var (
	sectionDown bool
	sectionYes  bool
)

var sectionCmd = &cobra.Command{
	Use:   "section [list|add|update|move|remove]",
	Short: "Edit the content sections of a project",
	Long: `Edit the ordered content sections of a project.

Sections are addressed by their 1-based position as printed by
"section list". Blocks are given in their stored JSON shape.

Examples:
  folio-cli section list task-manager
  folio-cli section add task-manager '{"type":"heading","level":2,"value":"Roadmap"}'
  folio-cli section move task-manager 3 --down
  folio-cli section remove task-manager 2 --yes`,
}

var sectionListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List a project's sections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		getCmd := commands.NewGetProjectCommand(GetRepo(), args[0])
		details, err := getCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(details.Project.Sections) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sections")
			return nil
		}
		printSections(cmd, details.Project.Sections)
		return nil
	},
}

var sectionAddCmd = &cobra.Command{
	Use:   "add <project-id> <block-json>",
	Short: "Append a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := codec.DecodeBlock([]byte(args[1]))
		if err != nil {
			return err
		}
		addCmd := commands.NewAddSectionCommand(GetRepo(), args[0], b)
		result, err := addCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var sectionUpdateCmd = &cobra.Command{
	Use:   "update <project-id> <position> <block-json>",
	Short: "Replace a section's content",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		b, err := codec.DecodeBlock([]byte(args[2]))
		if err != nil {
			return err
		}
		updateCmd := commands.NewUpdateSectionCommand(GetRepo(), args[0], index, b)
		result, err := updateCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var sectionMoveCmd = &cobra.Command{
	Use:   "move <project-id> <position>",
	Short: "Move a section one step up, or down with --down",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		offset := -1
		if sectionDown {
			offset = 1
		}
		moveCmd := commands.NewMoveSectionCommand(GetRepo(), args[0], index, offset)
		result, err := moveCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		printSections(cmd, result.Sections)
		return nil
	},
}

var sectionRemoveCmd = &cobra.Command{
	Use:   "remove <project-id> <position>",
	Short: "Delete a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		removeCmd := commands.NewRemoveSectionCommand(GetRepo(), args[0], index, sectionYes)
		result, err := removeCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func printSections(cmd *cobra.Command, sections []domain.Section) {
	for i, s := range sections {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-8s %s\n", i+1, s.Block.Kind(), markup.Summary(s.Block))
	}
}

// parsePosition turns a 1-based position into an index
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q (expected 1 or more)", s)
	}
	return n - 1, nil
}

func init() {
	sectionMoveCmd.Flags().BoolVar(&sectionDown, "down", false, "move towards the end")
	addConfirmFlag(sectionRemoveCmd, &sectionYes)

	rootCmd.AddCommand(sectionCmd)
	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionUpdateCmd)
	sectionCmd.AddCommand(sectionMoveCmd)
	sectionCmd.AddCommand(sectionRemoveCmd)
}
