package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"folio/internal/adapters/codec"
	"folio/internal/application/commands"
	"folio/internal/ports"
)

// RegisterWriteTools adds all portfolio editing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.PortfolioRepository) {
	s.AddTool(addSectionTool(), addSectionHandler(repo))
	s.AddTool(moveSectionTool(), moveSectionHandler(repo))
	s.AddTool(removeSectionTool(), removeSectionHandler(repo))
	s.AddTool(importTool(), importHandler(repo))
}

// --- add_section ---

func addSectionTool() mcp.Tool {
	return mcp.NewTool("add_section",
		mcp.WithDescription("Append a content section to a project. The section is given in its stored JSON shape."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
		mcp.WithString("section",
			mcp.Description(`Section JSON, e.g. {"type":"heading","level":2,"value":"Overview"}, {"type":"text","value":"See [docs](https://example.com)","bold":true}, {"type":"list","ordered":false,"nestedItems":[{"text":"a","level":0},{"text":"b","level":1}]}, {"type":"code","language":"go","value":"..."}, {"type":"image","src":"img.png","alt":"..."}, {"type":"video","platform":"youtube","src":"https://youtu.be/ID"}`),
			mcp.Required(),
		),
	)
}

func addSectionHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID := req.GetString("project_id", "")
		raw := req.GetString("section", "")
		if raw == "" {
			return toolError(fmt.Errorf("section is required"))
		}

		block, err := codec.DecodeBlock([]byte(raw))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewAddSectionCommand(repo, projectID, block).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move_section ---

func moveSectionTool() mcp.Tool {
	return mcp.NewTool("move_section",
		mcp.WithDescription("Move a section one step up or down within its project."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
		mcp.WithNumber("position",
			mcp.Description("1-based position of the section, as listed by get_project"),
			mcp.Required(),
		),
		mcp.WithString("direction",
			mcp.Description("up or down"),
			mcp.Required(),
			mcp.Enum("up", "down"),
		),
	)
}

func moveSectionHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID := req.GetString("project_id", "")
		position := req.GetInt("position", 0)

		offset := 0
		switch dir := req.GetString("direction", ""); dir {
		case "up":
			offset = -1
		case "down":
			offset = 1
		default:
			return toolError(fmt.Errorf("direction must be up or down, got: %q", dir))
		}

		result, err := commands.NewMoveSectionCommand(repo, projectID, position-1, offset).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- remove_section ---

func removeSectionTool() mcp.Tool {
	return mcp.NewTool("remove_section",
		mcp.WithDescription("Delete a section from a project."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
		mcp.WithNumber("position",
			mcp.Description("1-based position of the section, as listed by get_project"),
			mcp.Required(),
		),
	)
}

func removeSectionHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID := req.GetString("project_id", "")
		position := req.GetInt("position", 0)

		// calling the tool is the confirmation
		result, err := commands.NewRemoveSectionCommand(repo, projectID, position-1, true).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- import ---

func importTool() mcp.Tool {
	return mcp.NewTool("import",
		mcp.WithDescription("Replace the whole portfolio with a document. Accepts data.js content, a bare object literal, JSON or (with format yaml) YAML."),
		mcp.WithString("content",
			mcp.Description("Document content"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("js (default, also accepts JSON) or yaml"),
		),
	)
}

func importHandler(repo ports.PortfolioRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format, err := codec.ParseFormat(req.GetString("format", ""))
		if err != nil {
			return toolError(err)
		}

		content := req.GetString("content", "")
		result, err := commands.NewImportCommand(repo, codec.New(format), content).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
