package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"folio/internal/adapters/site"
)

var (
	buildOut   string
	buildWatch bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the static site",
	Long: `Render the portfolio pages (index, one page per project, timeline)
into the output directory together with data.js.

With --watch the site is rebuilt whenever the stored portfolio
changes, until interrupted.

Examples:
  folio-cli build
  folio-cli build --out public --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := buildOut
		if out == "" {
			out = GetConfig().OutputDir
		}
		builder, err := site.NewBuilder(out, GetConfig().SiteTitle, logger)
		if err != nil {
			return err
		}

		if !buildWatch {
			doc, err := GetRepo().Load(context.Background())
			if err != nil {
				return err
			}
			pages, err := builder.Build(doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages in %s\n", len(pages), builder.OutDir())
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher := site.NewWatcher(builder, store.Path, GetRepo().Load)
		watcher.OnBuild(func(pages []string, err error) {
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "build failed: %v\n", err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages in %s\n", len(pages), builder.OutDir())
		})
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", store.Path)
		return watcher.Run(ctx)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (default from config)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when the portfolio changes")
	rootCmd.AddCommand(buildCmd)
}
