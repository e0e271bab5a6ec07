package commands

import (
	"context"
	"errors"
	"testing"

	"folio/internal/application"
	"folio/internal/application/draft"
	"folio/internal/domain"
)

func newTestRepo() *application.Workspace {
	return application.NewWorkspace(domain.SamplePortfolio())
}

func TestSaveProjectCommand(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	d := draft.New("web")
	d.ID, d.Title = "new-site", "New Site"

	_, err := NewSaveProjectCommand(repo, d).Execute(ctx)
	if err == nil || !contains(err.Error(), "Please fill in all required fields: Project ID, Title, Subtitle, and Category") {
		t.Fatalf("expected required fields error, got %v", err)
	}
	if repo.Revision() != 0 {
		t.Fatal("failed save must not touch the repository")
	}

	d.Subtitle = "Another site"
	res, err := NewSaveProjectCommand(repo, d).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !res.Created || !contains(res.Message, "Created project: new-site") {
		t.Errorf("unexpected result %+v", res)
	}

	d.CategoryKey = "mobile"
	res, err = NewSaveProjectCommand(repo, d).Execute(ctx)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if res.Created {
		t.Error("second save should be an update")
	}
	doc := repo.Snapshot()
	if key, _ := doc.CategoryOf("new-site"); key != "mobile" {
		t.Errorf("project should have moved to mobile, got %q", key)
	}
}

func TestSaveProjectCommand_DuplicateID(t *testing.T) {
	repo := newTestRepo()
	d := draft.New("mobile")
	d.ID, d.Title, d.Subtitle = "task-manager", "Copy", "Copy"

	_, err := NewSaveProjectCommand(repo, d).Execute(context.Background())
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !d.IsNew() {
		t.Error("failed save must keep the draft new")
	}
}

func TestDeleteProjectCommand(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	if _, err := NewDeleteProjectCommand(repo, "task-manager", false).Execute(ctx); !errors.Is(err, application.ErrConfirmationRequired) {
		t.Fatalf("expected confirmation error, got %v", err)
	}
	if _, err := NewDeleteProjectCommand(repo, "task-manager", true).Execute(ctx); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, ok := repo.Snapshot().ProjectByID("task-manager"); ok {
		t.Error("project still present")
	}
	if _, err := NewDeleteProjectCommand(repo, "task-manager", true).Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveCategoryCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		wantErr  bool
		errMsg   string
	}{
		{"valid", domain.Category{Key: "games", Title: "Games"}, false, ""},
		{"empty key", domain.Category{Title: "Games"}, true, "category key is required"},
		{"bad key", domain.Category{Key: "My Games", Title: "Games"}, true, "lowercase"},
		{"empty title", domain.Category{Key: "games"}, true, "title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &SaveCategoryCommand{Category: tt.category, Create: true}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDeleteCategoryCommand_ConfirmsWhenNotEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	_, err := NewDeleteCategoryCommand(repo, "web", false).Execute(ctx)
	var cErr *application.ConfirmationError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConfirmationError, got %v", err)
	}
	if cErr.Prompt != "This category has 2 project(s). Delete anyway?" {
		t.Errorf("unexpected prompt %q", cErr.Prompt)
	}

	res, err := NewDeleteCategoryCommand(repo, "web", true).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(res.Category.Projects) != 2 || repo.Snapshot().Category("web") != nil {
		t.Errorf("category not removed: %+v", res)
	}

	NewSaveCategoryCommand(repo, domain.Category{Key: "empty", Title: "Empty"}, true).Execute(ctx)
	if _, err := NewDeleteCategoryCommand(repo, "empty", false).Execute(ctx); err != nil {
		t.Errorf("empty category should delete without confirmation, got %v", err)
	}
}

func TestTagCommands(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	res, err := NewSaveTagCommand(repo, domain.CategoryTag{Key: "hobby", Label: "Hobby"}, true).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Tag.Color != domain.DefaultTagColor {
		t.Errorf("expected default color, got %q", res.Tag.Color)
	}

	if _, err := NewSaveTagCommand(repo, domain.CategoryTag{Key: "hobby", Label: "Again"}, true).Execute(ctx); err == nil || !contains(err.Error(), "Tag key already exists") {
		t.Errorf("expected duplicate error, got %v", err)
	}
	if _, err := NewSaveTagCommand(repo, domain.CategoryTag{Key: "x", Label: "X", Color: "red"}, true).Execute(ctx); err == nil {
		t.Error("expected color validation error")
	}

	if _, err := NewDeleteTagCommand(repo, "hobby", true).Execute(ctx); err != nil {
		t.Errorf("delete failed: %v", err)
	}
}

func TestEventCommands(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	before := len(repo.Snapshot().Timeline)

	if _, err := NewSaveEventCommand(repo, -1, domain.TimelineEvent{Title: "No date"}).Execute(ctx); err == nil {
		t.Error("expected validation error for missing date")
	}

	res, err := NewSaveEventCommand(repo, -1, domain.TimelineEvent{Date: "2025", Title: "Moved"}).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Index != before || res.Event.Icon != domain.DefaultEventIcon || res.Event.Category != domain.DefaultEventCategory {
		t.Errorf("unexpected result %+v", res)
	}

	media := &domain.Media{Type: "gif", URL: "a.gif"}
	if _, err := NewSaveEventCommand(repo, 0, domain.TimelineEvent{Date: "2015", Title: "x", Media: media}).Execute(ctx); err == nil {
		t.Error("expected media type error")
	}

	if _, err := NewDeleteEventCommand(repo, res.Index, true).Execute(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := len(repo.Snapshot().Timeline); got != before {
		t.Errorf("expected %d events, got %d", before, got)
	}
}

func TestSectionCommands(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	res, err := NewAddSectionCommand(repo, "task-manager", domain.Heading{Text: "Intro"}).Execute(ctx)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(res.Sections) != 1 || res.Sections[0].Block.(domain.Heading).Level != 2 {
		t.Fatalf("unexpected sections %+v", res.Sections)
	}

	if _, err := NewAddSectionCommand(repo, "task-manager", domain.Text{}).Execute(ctx); err == nil || !contains(err.Error(), "Please enter some text") {
		t.Errorf("expected validation error, got %v", err)
	}

	NewAddSectionCommand(repo, "task-manager", domain.Text{Text: "body"}).Execute(ctx)
	res, err = NewMoveSectionCommand(repo, "task-manager", 1, -1).Execute(ctx)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if res.Sections[0].Block.Kind() != domain.KindText || res.Sections[0].Order != 0 {
		t.Errorf("text should be first after move: %+v", res.Sections)
	}

	res, err = NewMoveSectionCommand(repo, "task-manager", 0, -1).Execute(ctx)
	if err != nil || !contains(res.Message, "boundary") {
		t.Errorf("boundary move should be a no-op, got %v %v", res, err)
	}

	res, err = NewUpdateSectionCommand(repo, "task-manager", 0, domain.Text{Text: "changed"}).Execute(ctx)
	if err != nil || res.Sections[0].Block.(domain.Text).Text != "changed" {
		t.Errorf("update failed: %v %+v", err, res)
	}

	if _, err := NewRemoveSectionCommand(repo, "task-manager", 0, false).Execute(ctx); !errors.Is(err, application.ErrConfirmationRequired) {
		t.Errorf("expected confirmation error, got %v", err)
	}
	res, err = NewRemoveSectionCommand(repo, "task-manager", 0, true).Execute(ctx)
	if err != nil || len(res.Sections) != 1 {
		t.Errorf("remove failed: %v %+v", err, res)
	}

	if _, err := NewAddSectionCommand(repo, "missing", domain.Text{Text: "x"}).Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTimelineCommand_ResolvesDecorations(t *testing.T) {
	repo := newTestRepo()
	entries, err := NewTimelineCommand(repo, "project").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 project events, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Tag == nil || e.Tag.Label != "Project" {
			t.Errorf("expected Project tag, got %+v", e.Tag)
		}
		if e.Link == nil || !contains(e.Link.URL, "project.html?id=") {
			t.Errorf("expected project link, got %+v", e.Link)
		}
	}
}

func TestGetProjectCommand(t *testing.T) {
	repo := newTestRepo()
	details, err := NewGetProjectCommand(repo, "task-manager").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if details.CategoryKey != "web" || details.Prev == nil || details.Next == nil {
		t.Errorf("unexpected details %+v", details)
	}
	if details.Link.URL != "project.html?id=task-manager" {
		t.Errorf("unexpected link %q", details.Link.URL)
	}
}

type stubDecoder struct {
	doc *domain.Portfolio
	err error
}

func (s stubDecoder) Decode([]byte) (*domain.Portfolio, error) { return s.doc, s.err }

func TestImportCommand(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	_, err := NewImportCommand(repo, stubDecoder{}, "   ").Execute(ctx)
	var pErr *application.ParseError
	if !errors.As(err, &pErr) || pErr.Message != "Please paste your data.js content first" {
		t.Fatalf("expected empty input error, got %v", err)
	}

	bad := &application.ParseError{Message: "Invalid data structure - missing required fields"}
	if _, err := NewImportCommand(repo, stubDecoder{err: bad}, "{}").Execute(ctx); !errors.As(err, &pErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if repo.Revision() != 0 {
		t.Fatal("failed import must leave the portfolio unchanged")
	}

	doc := domain.NewPortfolio()
	doc.Personal.Name = "Imported"
	res, err := NewImportCommand(repo, stubDecoder{doc: doc}, "{...}").Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Projects != 0 || repo.Snapshot().Personal.Name != "Imported" {
		t.Errorf("unexpected import result %+v", res)
	}
}

func TestClearAndInitCommands(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	if _, err := NewInitCommand(repo, false).Execute(ctx); !errors.Is(err, application.ErrConfirmationRequired) {
		t.Errorf("init over content should need confirmation, got %v", err)
	}
	if _, err := NewClearCommand(repo, false).Execute(ctx); !errors.Is(err, application.ErrConfirmationRequired) {
		t.Errorf("clear should need confirmation, got %v", err)
	}
	if _, err := NewClearCommand(repo, true).Execute(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := NewInitCommand(repo, false).Execute(ctx); err != nil {
		t.Fatalf("init on empty portfolio failed: %v", err)
	}
	if got := len(repo.Snapshot().AllProjects()); got != 3 {
		t.Errorf("expected 3 sample projects, got %d", got)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
