package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/adapters/markup"
	"folio/internal/application/commands"
	"folio/internal/domain"
)

var showHTML bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display categories and their projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		buildCmd := commands.NewBuildTreeCommand(GetRepo())
		root, err := buildCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		printTree(cmd, root, 0)
		return nil
	},
}

func printTree(cmd *cobra.Command, node *domain.TreeNode, depth int) {
	if node == nil {
		return
	}
	if node.Type != domain.NodeRoot {
		indent := strings.Repeat("  ", depth-1)
		switch node.Type {
		case domain.NodeCategory:
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s (%d)\n", indent, node.Icon, node.Name, node.Count)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s [%s]\n", indent, node.Icon, node.Name, node.Key)
		}
	}
	for _, child := range node.Children {
		printTree(cmd, child, depth+1)
	}
}

var listCmd = &cobra.Command{
	Use:   "list [category|all]",
	Short: "List projects",
	Long: `List the projects of one category, or of every category.

Examples:
  folio-cli list
  folio-cli list web`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := domain.AllProjectsKey
		if len(args) == 1 {
			key = args[0]
		}
		listCmd := commands.NewListProjectsCommand(GetRepo(), key)
		projects, err := listCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No projects")
			return nil
		}
		for _, p := range projects {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", p.ID, p.Title, p.Subtitle)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project and its sections",
	Long: `Show a project's fields and a summary of each section. With --html
the rendered section markup is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		getCmd := commands.NewGetProjectCommand(GetRepo(), args[0])
		details, err := getCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := details.Project

		if showHTML {
			html, err := markup.RenderHTML(p.Sections)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, html)
			return nil
		}

		fmt.Fprintf(out, "%s %s\n", p.Icon, p.Title)
		if p.Subtitle != "" {
			fmt.Fprintln(out, p.Subtitle)
		}
		fmt.Fprintf(out, "category: %s\n", details.CategoryKey)
		fmt.Fprintf(out, "page:     %s\n", details.Link.URL)
		if len(p.TechStack) > 0 {
			fmt.Fprintf(out, "stack:    %s\n", strings.Join(p.TechStack, ", "))
		}
		for _, l := range p.Links {
			fmt.Fprintf(out, "link:     %s %s\n", l.Type, l.URL)
		}
		if p.Description != "" {
			fmt.Fprintf(out, "\n%s\n", p.Description)
		}

		if len(p.Sections) > 0 {
			fmt.Fprintln(out, "\nSections:")
			for i, s := range p.Sections {
				fmt.Fprintf(out, "  %d. %-8s %s\n", i+1, s.Block.Kind(), markup.Summary(s.Block))
			}
		}
		if details.Prev != nil || details.Next != nil {
			fmt.Fprintln(out)
		}
		if details.Prev != nil {
			fmt.Fprintf(out, "prev: %s\n", details.Prev.ID)
		}
		if details.Next != nil {
			fmt.Fprintf(out, "next: %s\n", details.Next.ID)
		}
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline [category]",
	Short: "List timeline events",
	Long: `List timeline events with their tag and linked project, optionally
filtered by tag key. Indexes are the ones event save/delete expect.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := ""
		if len(args) == 1 {
			category = args[0]
		}
		timelineCmd := commands.NewTimelineCommand(GetRepo(), category)
		entries, err := timelineCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No events")
			return nil
		}
		for _, e := range entries {
			label := e.Event.Category
			if e.Tag != nil {
				label = e.Tag.Label
			}
			line := fmt.Sprintf("%3d  %-12s %s %s [%s]", e.Index, e.Event.Date, e.Event.Icon, e.Event.Title, label)
			if e.Link != nil {
				line += " -> " + e.Link.URL
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search projects",
	Long: `Search projects by ID, title and content.

Results are ranked by relevance using fuzzy matching.

Examples:
  folio-cli search task
  folio-cli search react`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchCmd := commands.NewSearchCommand(GetRepo(), args[0])
		results, err := searchCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s %s\n", r.CategoryKey, r.ProjectID, r.Title)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showHTML, "html", false, "print the rendered section markup")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(searchCmd)
}
