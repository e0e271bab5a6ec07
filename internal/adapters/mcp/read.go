package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"folio/internal/adapters/codec"
	"folio/internal/adapters/markup"
	"folio/internal/application/commands"
	"folio/internal/domain"
	"folio/internal/ports"
)

// RegisterReadTools adds all read-only portfolio tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.PortfolioRepository) {
	s.AddTool(listProjectsTool(), listProjectsHandler(repo))
	s.AddTool(getProjectTool(), getProjectHandler(repo))
	s.AddTool(renderSectionsTool(), renderSectionsHandler(repo))
	s.AddTool(timelineTool(), timelineHandler(repo))
	s.AddTool(projectLinkTool(), projectLinkHandler(repo))
	s.AddTool(exportTool(), exportHandler(repo))
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List portfolio projects. Without a category lists every project grouped by category, in display order."),
		mcp.WithString("category",
			mcp.Description("Category key (e.g. web, mobile) or \"all\". Omit for all projects."),
		),
	)
}

func listProjectsHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category := req.GetString("category", "")

		if category == "" || category == domain.AllProjectsKey {
			cats, err := commands.NewListCategoriesCommand(repo).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			var sb strings.Builder
			for _, c := range cats {
				fmt.Fprintf(&sb, "%s  %s %s\n", c.Key, c.Icon, c.Title)
				for _, p := range c.Projects {
					fmt.Fprintf(&sb, "  %s\n", formatProject(p))
				}
			}
			if sb.Len() == 0 {
				return mcp.NewToolResultText("No results."), nil
			}
			return mcp.NewToolResultText(sb.String()), nil
		}

		projects, err := commands.NewListProjectsCommand(repo, category).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(projects, formatProject)
	}
}

// --- get_project ---

func getProjectTool() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Show one project: metadata, tech stack, links and a numbered summary of its content sections."),
		mcp.WithString("id",
			mcp.Description("Project ID (e.g. task-manager)"),
			mcp.Required(),
		),
	)
}

func getProjectHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		details, err := commands.NewGetProjectCommand(repo, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatDetails(details)), nil
	}
}

func formatDetails(d *commands.ProjectDetails) string {
	p := d.Project
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", p.ID, p.Title)
	fmt.Fprintf(&sb, "category: %s\n", d.CategoryKey)
	if p.Subtitle != "" {
		fmt.Fprintf(&sb, "subtitle: %s\n", p.Subtitle)
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "description: %s\n", p.Description)
	}
	if len(p.TechStack) > 0 {
		fmt.Fprintf(&sb, "tech: %s\n", strings.Join(p.TechStack, ", "))
	}
	for _, l := range p.Links {
		fmt.Fprintf(&sb, "link: %s %s\n", l.DetailLabel(), l.URL)
	}
	if d.Prev != nil {
		fmt.Fprintf(&sb, "previous: %s\n", d.Prev.ID)
	}
	if d.Next != nil {
		fmt.Fprintf(&sb, "next: %s\n", d.Next.ID)
	}
	if len(p.Sections) == 0 {
		sb.WriteString("sections: none\n")
		return sb.String()
	}
	sb.WriteString("sections:\n")
	for i, s := range p.Sections {
		fmt.Fprintf(&sb, "  %d. [%s] %s\n", i+1, s.Block.Kind(), markup.Summary(s.Block))
	}
	return sb.String()
}

// --- render_sections ---

func renderSectionsTool() mcp.Tool {
	return mcp.NewTool("render_sections",
		mcp.WithDescription("Render a project's content sections to the HTML shown on its detail page."),
		mcp.WithString("id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
	)
}

func renderSectionsHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		details, err := commands.NewGetProjectCommand(repo, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		out, err := markup.Preview(details.Project.Sections)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(out), nil
	}
}

// --- timeline ---

func timelineTool() mcp.Tool {
	return mcp.NewTool("timeline",
		mcp.WithDescription("List timeline events in stored order with their tag and linked project."),
		mcp.WithString("category",
			mcp.Description("Tag key to filter by (e.g. education, career, project, achievement)"),
		),
	)
}

func timelineHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := commands.NewTimelineCommand(repo, req.GetString("category", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatTimelineEntry)
	}
}

func formatTimelineEntry(e commands.TimelineEntry) string {
	label := e.Event.Category
	if e.Tag != nil {
		label = e.Tag.Label
	}
	line := fmt.Sprintf("%d. %s  %s %s  [%s]", e.Index+1, e.Event.Date, e.Event.Icon, e.Event.Title, label)
	if e.Link != nil {
		line += fmt.Sprintf("  -> %s (%s)", e.Link.Title, e.Link.URL)
	}
	return line
}

// --- project_link ---

func projectLinkTool() mcp.Tool {
	return mcp.NewTool("project_link",
		mcp.WithDescription("Resolve the detail-page link for a project ID."),
		mcp.WithString("id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
	)
}

func projectLinkHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		doc, err := repo.Load(ctx)
		if err != nil {
			return toolError(err)
		}
		link, ok := doc.ProjectLink(id)
		if !ok {
			return mcp.NewToolResultText("No project with that ID."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s  %s", link.URL, link.Title)), nil
	}
}

// --- export ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Export the whole portfolio document."),
		mcp.WithString("format",
			mcp.Description("Output format: js (data.js, default), json or yaml"),
		),
	)
}

func exportHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format, err := codec.ParseFormat(req.GetString("format", ""))
		if err != nil {
			return toolError(err)
		}

		out, err := commands.NewExportCommand(repo, codec.New(format)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatProject(p domain.Project) string {
	return fmt.Sprintf("%s  %s", p.ID, p.Title)
}
