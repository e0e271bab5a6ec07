package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

var (
	revisionsLimit int
	restoreYes     bool
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "List saved versions of the portfolio",
	Long: `List the versions the SQLite store keeps, newest first. The file
store keeps no history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := GetRevisions()
		if err != nil {
			return err
		}
		listCmd := commands.NewListRevisionsCommand(log, revisionsLimit)
		revs, err := listCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(revs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No revisions")
			return nil
		}
		for _, r := range revs {
			fmt.Fprintf(cmd.OutOrStdout(), "%5d  %s  %d bytes\n", r.ID, time.Unix(r.SavedAt, 0).Format("2006-01-02 15:04:05"), r.Size)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <revision-id>",
	Short: "Make a saved version the current portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid revision id %q", args[0])
		}
		log, err := GetRevisions()
		if err != nil {
			return err
		}
		restoreCmd := commands.NewRestoreRevisionCommand(GetRepo(), log, id, restoreYes)
		result, err := restoreCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	revisionsCmd.Flags().IntVarP(&revisionsLimit, "limit", "n", 20, "maximum number of revisions")
	addConfirmFlag(restoreCmd, &restoreYes)
	rootCmd.AddCommand(revisionsCmd)
	rootCmd.AddCommand(restoreCmd)
}
