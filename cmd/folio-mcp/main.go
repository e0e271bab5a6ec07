package main

import (
	"context"
	"flag"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "folio/internal/adapters/mcp"
	"folio/internal/adapters/storage"
	"folio/internal/config"
	"folio/internal/logging"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default ./folio.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("folio-mcp: %v", err)
	}
	// stdout carries the protocol
	logger := logging.New(os.Stderr, cfg.LogLevel)

	store, err := storage.Open(cfg, logger)
	if err != nil {
		log.Fatalf("folio-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"folio-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store.Repo)
	mcpadapter.RegisterWriteTools(mcpServer, store.Repo)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("folio-mcp: %v", err)
	}
}
