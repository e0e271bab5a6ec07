package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/adapters/mdimport"
	"folio/internal/application/commands"
	"folio/internal/domain"
)

var (
	importMDCategory string
	importMDReplace  bool
)

var importMDCmd = &cobra.Command{
	Use:   "import-md <glob...>",
	Short: "Import Markdown files as projects",
	Long: `Import Markdown files as projects of one category. Front matter
supplies the project fields; the body becomes the project's sections.

Patterns may use ** to match nested directories. Projects whose ID
already exists are rejected unless --replace is given.

Examples:
  folio-cli import-md --category web "notes/projects/*.md"
  folio-cli import-md --category mobile --replace "apps/**/*.md"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := mdimport.Glob(args...)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no files match %v", args)
		}

		im := mdimport.New()
		projects := make([]domain.Project, 0, len(files))
		for _, f := range files {
			p, err := im.ParseFile(f)
			if err != nil {
				return err
			}
			logger.Debug("parsed markdown project", "file", f, "id", p.ID, "sections", len(p.Sections))
			projects = append(projects, p)
		}

		importCmd := commands.NewImportProjectsCommand(GetRepo(), importMDCategory, projects, importMDReplace)
		result, err := importCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	importMDCmd.Flags().StringVarP(&importMDCategory, "category", "c", "", "category key to import into")
	importMDCmd.Flags().BoolVar(&importMDReplace, "replace", false, "overwrite projects with the same ID")
	_ = importMDCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(importMDCmd)
}
