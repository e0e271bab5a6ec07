package commands

import (
	"context"
	"errors"
	"testing"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

func TestImportProjectsCommand_Validate(t *testing.T) {
	valid := domain.Project{ID: "notes", Title: "Notes"}

	tests := []struct {
		name     string
		category string
		projects []domain.Project
	}{
		{"missing category", "", []domain.Project{valid}},
		{"no projects", "web", nil},
		{"bad slug", "web", []domain.Project{{ID: "Bad ID", Title: "x"}}},
		{"missing title", "web", []domain.Project{{ID: "x"}}},
		{"repeated id", "web", []domain.Project{valid, valid}},
		{"invalid section", "web", []domain.Project{{ID: "x", Title: "X", Sections: []domain.Section{{Block: domain.Heading{Level: 2}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewImportProjectsCommand(newTestRepo(), tt.category, tt.projects, false).Validate()
			var vErr *application.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestImportProjectsCommand_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	incoming := []domain.Project{
		{ID: "notes", Title: "Notes"},
		{ID: "task-manager", Title: "Task Manager v2"},
	}

	if _, err := NewImportProjectsCommand(repo, "mobile", incoming, false).Execute(ctx); err == nil {
		t.Fatal("expected duplicate id error without replace")
	}
	if _, ok := repo.Snapshot().ProjectByID("notes"); ok {
		t.Fatal("a rejected import must not store any project")
	}

	res, err := NewImportProjectsCommand(repo, "mobile", incoming, true).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(res.Created) != 1 || len(res.Updated) != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	if !contains(res.Message, "Imported 2 project(s) into mobile") {
		t.Errorf("unexpected message %q", res.Message)
	}

	doc := repo.Snapshot()
	if key, _ := doc.CategoryOf("task-manager"); key != "mobile" {
		t.Errorf("replaced project should move to mobile, found in %q", key)
	}
	if p, _ := doc.ProjectByID("task-manager"); p.Title != "Task Manager v2" {
		t.Errorf("project not replaced: %+v", p)
	}

	if _, err := NewImportProjectsCommand(repo, "nope", []domain.Project{{ID: "other", Title: "O"}}, false).Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown category, got %v", err)
	}
}

type memoryLog struct {
	revs []ports.Revision
	docs map[int64]*domain.Portfolio
}

func (m *memoryLog) Revisions(_ context.Context, limit int) ([]ports.Revision, error) {
	if limit > 0 && limit < len(m.revs) {
		return m.revs[:limit], nil
	}
	return m.revs, nil
}

func (m *memoryLog) Restore(_ context.Context, id int64) (*domain.Portfolio, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, &application.LookupError{Kind: "revision", Key: "x"}
	}
	return doc.Clone(), nil
}

func TestRevisionCommands(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	old := domain.NewPortfolio()
	old.Personal.Name = "Older"
	log := &memoryLog{
		revs: []ports.Revision{{ID: 2}, {ID: 1}},
		docs: map[int64]*domain.Portfolio{1: old},
	}

	revs, err := NewListRevisionsCommand(log, 1).Execute(ctx)
	if err != nil || len(revs) != 1 || revs[0].ID != 2 {
		t.Fatalf("unexpected revisions %v, %v", revs, err)
	}

	if _, err := NewRestoreRevisionCommand(repo, log, 1, false).Execute(ctx); !errors.Is(err, application.ErrConfirmationRequired) {
		t.Errorf("restore should need confirmation, got %v", err)
	}
	if _, err := NewRestoreRevisionCommand(repo, log, 9, true).Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	res, err := NewRestoreRevisionCommand(repo, log, 1, true).Execute(ctx)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if res.Message != "Restored revision 1" || repo.Snapshot().Personal.Name != "Older" {
		t.Errorf("unexpected restore outcome %+v", res)
	}
}
