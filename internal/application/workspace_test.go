package application

import (
	"context"
	"testing"

	"folio/internal/domain"
)

func TestWorkspace_SaveNotifiesWithCopies(t *testing.T) {
	ctx := context.Background()
	ws := NewWorkspace(nil)

	var changes []Change
	unsubscribe := ws.Subscribe(func(c Change) {
		changes = append(changes, c)
	})

	doc, _ := ws.Load(ctx)
	doc.Personal.Name = "Ada"
	if ws.Snapshot().Personal.Name != "" {
		t.Fatal("Load must return a copy")
	}

	if err := ws.Save(ctx, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	doc.Personal.Name = "mutated after save"

	if got := ws.Snapshot().Personal.Name; got != "Ada" {
		t.Errorf("expected stored name Ada, got %q", got)
	}
	if len(changes) != 1 || changes[0].Revision != 1 || changes[0].Portfolio.Personal.Name != "Ada" {
		t.Fatalf("unexpected changes: %+v", changes)
	}

	unsubscribe()
	ws.Save(ctx, doc)
	if len(changes) != 1 {
		t.Errorf("unsubscribed listener was called")
	}
	if ws.Revision() != 2 {
		t.Errorf("expected revision 2, got %d", ws.Revision())
	}
}

func TestWorkspace_Clear(t *testing.T) {
	ctx := context.Background()
	ws := NewWorkspace(domain.SamplePortfolio())

	var cleared bool
	ws.Subscribe(func(c Change) { cleared = c.Cleared })

	if err := ws.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if !cleared {
		t.Error("expected a cleared change")
	}
	doc, _ := ws.Load(ctx)
	if len(doc.Categories) != 0 || len(doc.Timeline) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
	if len(doc.Tags) != len(domain.DefaultTags()) {
		t.Errorf("expected default tags after clear")
	}
}
