package commands

import (
	"context"
	"fmt"
	"strings"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// SaveEventResult contains the result of saving a timeline event
type SaveEventResult struct {
	Index   int
	Event   domain.TimelineEvent
	Message string
}

// SaveEventCommand appends a timeline event (Index < 0) or replaces the
// event at Index
type SaveEventCommand struct {
	repo  ports.PortfolioRepository
	Index int
	Event domain.TimelineEvent
}

// NewSaveEventCommand creates a new SaveEventCommand
func NewSaveEventCommand(repo ports.PortfolioRepository, index int, e domain.TimelineEvent) *SaveEventCommand {
	return &SaveEventCommand{
		repo:  repo,
		Index: index,
		Event: e,
	}
}

// Validate checks if the save operation is valid
func (c *SaveEventCommand) Validate() error {
	if strings.TrimSpace(c.Event.Date) == "" || strings.TrimSpace(c.Event.Title) == "" {
		return &application.ValidationError{
			Field:   "event",
			Message: "Please fill in date and title",
		}
	}
	if m := c.Event.Media; m != nil {
		if m.Type != "image" && m.Type != "youtube" {
			return &application.ValidationError{
				Field:   "media",
				Message: fmt.Sprintf("media type must be image or youtube, got: %s", m.Type),
			}
		}
		if err := application.ValidateRequired("media URL", m.URL); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the save event command
func (c *SaveEventCommand) Execute(ctx context.Context) (*SaveEventResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	e := c.Event
	e.Date = strings.TrimSpace(e.Date)
	e.Title = strings.TrimSpace(e.Title)
	doc, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		return doc.SaveEvent(c.Index, e)
	})
	if err != nil {
		return nil, err
	}

	index := c.Index
	if index < 0 {
		index = len(doc.Timeline) - 1
	}
	return &SaveEventResult{
		Index:   index,
		Event:   doc.Timeline[index],
		Message: fmt.Sprintf("Saved event #%d: %s", index+1, e.Title),
	}, nil
}

// DeleteEventCommand removes the timeline event at Index
type DeleteEventCommand struct {
	repo      ports.PortfolioRepository
	Index     int
	Confirmed bool
}

// NewDeleteEventCommand creates a new DeleteEventCommand
func NewDeleteEventCommand(repo ports.PortfolioRepository, index int, confirmed bool) *DeleteEventCommand {
	return &DeleteEventCommand{
		repo:      repo,
		Index:     index,
		Confirmed: confirmed,
	}
}

// Execute runs the delete event command
func (c *DeleteEventCommand) Execute(ctx context.Context) (string, error) {
	if !c.Confirmed {
		return "", &application.ConfirmationError{Prompt: "Are you sure you want to delete this timeline event?"}
	}

	var removed domain.TimelineEvent
	if _, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		var err error
		removed, err = doc.RemoveEvent(c.Index)
		return err
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted event: %s %s", removed.Date, removed.Title), nil
}
