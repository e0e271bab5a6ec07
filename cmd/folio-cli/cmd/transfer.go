package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"folio/internal/adapters/codec"
	"folio/internal/application/commands"
)

var (
	importFormat string
	exportFormat string
	exportOut    string
	initYes      bool
	clearYes     bool
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the portfolio with a data.js, JSON or YAML document",
	Long: `Replace the whole portfolio with the document in file, or read it
from standard input when the argument is "-".

The format follows the file extension unless --format is given.
A document that fails to parse leaves the stored portfolio unchanged.

Examples:
  folio-cli import data.js
  folio-cli import --format yaml - < portfolio.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}

		name := importFormat
		if name == "" && args[0] != "-" {
			name = filepath.Ext(args[0])
		}
		format, err := codec.ParseFormat(name)
		if err != nil {
			return err
		}

		importCmd := commands.NewImportCommand(GetRepo(), codec.New(format), string(data))
		result, err := importCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the portfolio as data.js, JSON or YAML",
	Long: `Write the portfolio to standard output, or to --out.

Examples:
  folio-cli export > data.js
  folio-cli export --format json --out portfolio.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := exportFormat
		if name == "" && exportOut != "" {
			name = filepath.Ext(exportOut)
		}
		format, err := codec.ParseFormat(name)
		if err != nil {
			return err
		}

		exportCmd := commands.NewExportCommand(GetRepo(), codec.New(format))
		data, err := exportCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if exportOut == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Load the sample portfolio",
	Long: `Seed the store with the sample portfolio. An existing portfolio is
kept unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initCmd := commands.NewInitCommand(GetRepo(), initYes)
		msg, err := initCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored portfolio",
	Long: `Delete the stored portfolio. The next load starts from the
sample portfolio.

Warning: This operation cannot be undone with the file store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clearCmd := commands.NewClearCommand(GetRepo(), clearYes)
		msg, err := clearCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format: js, json or yaml")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: js, json or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to this file instead of stdout")
	addConfirmFlag(initCmd, &initYes)
	addConfirmFlag(clearCmd, &clearYes)

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(clearCmd)
}
