package domain

import (
	"errors"
	"reflect"
	"testing"
)

// buildTree authors:
//
//	a
//	  a1
//	    a1x
//	  a2
//	b
func buildTree(t *testing.T) (*ListBuilder, map[string]string) {
	t.Helper()
	b := NewListBuilder()
	ids := map[string]string{}

	must := func(id string, err error) string {
		t.Helper()
		if err != nil {
			t.Fatalf("builder operation failed: %v", err)
		}
		return id
	}

	ids["a"] = must(b.AddItem("", 0))
	ids["b"] = must(b.AddItem("", 0))
	ids["a1"] = must(b.AddSubItem(ids["a"]))
	ids["a2"] = must(b.AddSubItem(ids["a"]))
	ids["a1x"] = must(b.AddSubItem(ids["a1"]))

	for name, id := range ids {
		if err := b.SetText(id, name); err != nil {
			t.Fatalf("SetText failed: %v", err)
		}
	}
	return b, ids
}

func TestListBuilder_AuthoringOrder(t *testing.T) {
	b, _ := buildTree(t)

	want := []ListItem{
		{Text: "a", Level: 0},
		{Text: "a1", Level: 1},
		{Text: "a1x", Level: 2},
		{Text: "a2", Level: 1},
		{Text: "b", Level: 0},
	}
	if got := b.Collect(); !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %+v, want %+v", got, want)
	}
}

func TestListBuilder_AddItemRejectsWrongLevel(t *testing.T) {
	b := NewListBuilder()
	if _, err := b.AddItem("", 1); err == nil {
		t.Error("expected error for top-level item with level 1")
	}

	parent, _ := b.AddItem("", 0)
	_, err := b.AddItem(parent, 2)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for level jump, got %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("failed add must not mutate, got %d entries", b.Len())
	}

	if _, err := b.AddItem("missing", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown parent, got %v", err)
	}
}

func TestListBuilder_AddSibling(t *testing.T) {
	b, ids := buildTree(t)

	sib, err := b.AddSibling(ids["a1"])
	if err != nil {
		t.Fatalf("AddSibling failed: %v", err)
	}
	if err := b.SetText(sib, "a1b"); err != nil {
		t.Fatal(err)
	}

	entry, _ := b.Entry(sib)
	if entry.ParentID != ids["a"] || entry.Level != 1 {
		t.Errorf("sibling should share parent and level, got %+v", entry)
	}

	want := []string{"a", "a1", "a1x", "a1b", "a2", "b"}
	var got []string
	for _, item := range b.Collect() {
		got = append(got, item.Text)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestListBuilder_RemoveDescendants(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		want   []string
	}{
		{"leaf", "a1x", []string{"a", "a1", "a2", "b"}},
		{"middle", "a1", []string{"a", "a2", "b"}},
		{"root with subtree", "a", []string{"b"}},
		{"unrelated root", "b", []string{"a", "a1", "a1x", "a2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ids := buildTree(t)
			before := b.Len()

			removed := b.Remove(ids[tt.remove])

			var got []string
			for _, item := range b.Collect() {
				got = append(got, item.Text)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("remaining = %v, want %v", got, tt.want)
			}
			if before-removed != b.Len() {
				t.Errorf("removed count %d does not match length change", removed)
			}
		})
	}
}

func TestListBuilder_RemoveUnknownIsNoop(t *testing.T) {
	b, _ := buildTree(t)
	if n := b.Remove("nope"); n != 0 {
		t.Errorf("expected 0 removed, got %d", n)
	}
	if b.Len() != 5 {
		t.Errorf("expected 5 entries, got %d", b.Len())
	}
}

func TestListBuilder_CollectSkipsEmpty(t *testing.T) {
	b := NewListBuilder()
	first, _ := b.AddItem("", 0)
	b.AddItem("", 0)
	b.SetText(first, "  keep  ")

	got := b.Collect()
	want := []ListItem{{Text: "keep", Level: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %+v, want %+v", got, want)
	}
}

func TestListBuilder_CollectPromotesChildrenOfEmptyParent(t *testing.T) {
	b := NewListBuilder()
	top, _ := b.AddItem("", 0)
	b.SetText(top, "Design")
	parent, _ := b.AddSubItem(top)
	child, _ := b.AddSubItem(parent)
	b.SetText(child, "Wireframes")
	grandchild, _ := b.AddSubItem(child)
	b.SetText(grandchild, "Mobile")
	next, _ := b.AddItem("", 0)
	b.SetText(next, "Build")

	got := b.Collect()
	want := []ListItem{
		{Text: "Design", Level: 0},
		{Text: "Wireframes", Level: 1},
		{Text: "Mobile", Level: 2},
		{Text: "Build", Level: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %+v, want %+v", got, want)
	}
	if err := ValidateLevels(got); err != nil {
		t.Errorf("collected items should validate: %v", err)
	}
}

func TestLoadListBuilder_RoundTrip(t *testing.T) {
	items := []ListItem{
		{Text: "a", Level: 0},
		{Text: "b", Level: 1},
		{Text: "c", Level: 2},
		{Text: "d", Level: 0},
		{Text: "e", Level: 1},
	}

	b := LoadListBuilder(items)
	if got := b.Collect(); !reflect.DeepEqual(got, items) {
		t.Errorf("Collect() = %+v, want %+v", got, items)
	}

	entries := b.Entries()
	if entries[2].ParentID != entries[1].ID {
		t.Error("c should be parented to b")
	}
	if entries[4].ParentID != entries[3].ID {
		t.Error("e should be parented to d")
	}
	if entries[3].ParentID != "" {
		t.Error("d should be top-level")
	}
}

func TestLoadListBuilder_ClampsJumps(t *testing.T) {
	b := LoadListBuilder([]ListItem{{Text: "a", Level: 1}, {Text: "b", Level: 3}})
	want := []ListItem{{Text: "a", Level: 0}, {Text: "b", Level: 1}}
	if got := b.Collect(); !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %+v, want %+v", got, want)
	}
}

func TestValidateLevels(t *testing.T) {
	tests := []struct {
		name    string
		items   []ListItem
		wantErr bool
	}{
		{"empty", nil, false},
		{"flat", []ListItem{{Level: 0}, {Level: 0}}, false},
		{"descend by one", []ListItem{{Level: 0}, {Level: 1}, {Level: 2}}, false},
		{"ascend several", []ListItem{{Level: 0}, {Level: 1}, {Level: 2}, {Level: 0}}, false},
		{"first not zero", []ListItem{{Level: 1}}, true},
		{"skip a level", []ListItem{{Level: 0}, {Level: 2}}, true},
		{"negative", []ListItem{{Level: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLevels(tt.items)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLevels() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClampLevels(t *testing.T) {
	got := ClampLevels([]ListItem{{Text: "a", Level: 0}, {Text: "b", Level: 2}, {Text: "c", Level: 5}, {Text: "d", Level: 0}})
	want := []ListItem{{Text: "a", Level: 0}, {Text: "b", Level: 1}, {Text: "c", Level: 2}, {Text: "d", Level: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClampLevels() = %+v, want %+v", got, want)
	}
	if err := ValidateLevels(got); err != nil {
		t.Errorf("clamped output must validate: %v", err)
	}
}
