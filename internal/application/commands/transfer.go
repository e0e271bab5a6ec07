package commands

import (
	"context"
	"fmt"
	"strings"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// ImportResult contains the result of importing a document
type ImportResult struct {
	Projects int
	Events   int
	Message  string
}

// ImportCommand replaces the whole portfolio with a decoded document. A
// document that fails to decode leaves the stored portfolio unchanged.
type ImportCommand struct {
	repo    ports.PortfolioRepository
	decoder ports.DocumentDecoder
	Input   string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(repo ports.PortfolioRepository, decoder ports.DocumentDecoder, input string) *ImportCommand {
	return &ImportCommand{
		repo:    repo,
		decoder: decoder,
		Input:   input,
	}
}

// Validate checks if there is anything to import
func (c *ImportCommand) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return &application.ParseError{Message: "Please paste your data.js content first"}
	}
	return nil
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := c.decoder.Decode([]byte(c.Input))
	if err != nil {
		return nil, err
	}
	if err := c.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	projects := len(doc.AllProjects())
	return &ImportResult{
		Projects: projects,
		Events:   len(doc.Timeline),
		Message:  fmt.Sprintf("Data imported successfully! %d projects, %d timeline events", projects, len(doc.Timeline)),
	}, nil
}

// ExportCommand encodes the stored portfolio
type ExportCommand struct {
	repo    ports.PortfolioRepository
	encoder ports.DocumentEncoder
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(repo ports.PortfolioRepository, encoder ports.DocumentEncoder) *ExportCommand {
	return &ExportCommand{
		repo:    repo,
		encoder: encoder,
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) ([]byte, error) {
	doc, err := c.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	data, err := c.encoder.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode portfolio: %w", err)
	}
	return data, nil
}

// ClearCommand removes every stored piece of content
type ClearCommand struct {
	repo      ports.PortfolioRepository
	Confirmed bool
}

// NewClearCommand creates a new ClearCommand
func NewClearCommand(repo ports.PortfolioRepository, confirmed bool) *ClearCommand {
	return &ClearCommand{
		repo:      repo,
		Confirmed: confirmed,
	}
}

// Execute runs the clear command
func (c *ClearCommand) Execute(ctx context.Context) (string, error) {
	if !c.Confirmed {
		return "", &application.ConfirmationError{Prompt: "Are you sure you want to clear all data? This cannot be undone."}
	}
	if err := c.repo.Clear(ctx); err != nil {
		return "", fmt.Errorf("failed to clear portfolio: %w", err)
	}
	return "All data cleared", nil
}

// InitCommand stores the sample portfolio. Replacing existing content needs
// Force.
type InitCommand struct {
	repo  ports.PortfolioRepository
	Force bool
}

// NewInitCommand creates a new InitCommand
func NewInitCommand(repo ports.PortfolioRepository, force bool) *InitCommand {
	return &InitCommand{
		repo:  repo,
		Force: force,
	}
}

// Execute runs the init command
func (c *InitCommand) Execute(ctx context.Context) (string, error) {
	doc, err := c.repo.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load portfolio: %w", err)
	}
	if (len(doc.Categories) > 0 || len(doc.Timeline) > 0) && !c.Force {
		return "", &application.ConfirmationError{Prompt: "The portfolio already has content. Replace it with the sample?"}
	}
	sample := domain.SamplePortfolio()
	if err := c.repo.Save(ctx, sample); err != nil {
		return "", fmt.Errorf("failed to save portfolio: %w", err)
	}
	return fmt.Sprintf("Initialized sample portfolio: %d projects, %d timeline events", len(sample.AllProjects()), len(sample.Timeline)), nil
}
