package domain

import (
	"fmt"
	"strings"
)

// ListEntry is a list item while it is being authored
type ListEntry struct {
	ID       string
	ParentID string // empty for top-level entries
	Text     string
	Level    int
}

// ListBuilder authors a nested list as a flat sequence of level-tagged
// entries. A parent's descendants always follow it contiguously, so the
// authoring order is the depth-first order of the tree.
type ListBuilder struct {
	entries []ListEntry
}

// NewListBuilder returns an empty builder
func NewListBuilder() *ListBuilder {
	return &ListBuilder{}
}

// LoadListBuilder rebuilds authoring entries from stored items. Each item's
// parent is the closest preceding item one level up; level jumps are clamped.
func LoadListBuilder(items []ListItem) *ListBuilder {
	b := NewListBuilder()
	var stack []string // stack[level] = ID of the last entry at that level
	for _, item := range ClampLevels(items) {
		entry := ListEntry{ID: NewID(), Text: item.Text, Level: item.Level}
		if item.Level > 0 {
			entry.ParentID = stack[item.Level-1]
		}
		stack = append(stack[:item.Level], entry.ID)
		b.entries = append(b.entries, entry)
	}
	return b
}

// Entries returns a copy of the entries in authoring order
func (b *ListBuilder) Entries() []ListEntry {
	return append([]ListEntry(nil), b.entries...)
}

// Len returns the number of entries, including empty ones
func (b *ListBuilder) Len() int {
	return len(b.entries)
}

// Entry looks up an entry by ID
func (b *ListBuilder) Entry(id string) (ListEntry, bool) {
	if i := b.indexOf(id); i >= 0 {
		return b.entries[i], true
	}
	return ListEntry{}, false
}

// AddItem creates an empty entry. Without a parent the level must be 0; under
// a parent it must be the parent's level plus one. The entry is placed after
// the parent's last descendant, or at the end for a top-level entry.
func (b *ListBuilder) AddItem(parentID string, level int) (string, error) {
	if parentID == "" {
		if level != 0 {
			return "", &ValidationError{Field: "level", Message: fmt.Sprintf("top-level items must have level 0, got %d", level)}
		}
		entry := ListEntry{ID: NewID()}
		b.entries = append(b.entries, entry)
		return entry.ID, nil
	}

	pi := b.indexOf(parentID)
	if pi < 0 {
		return "", &LookupError{Kind: "list item", Key: parentID}
	}
	parent := b.entries[pi]
	if level != parent.Level+1 {
		return "", &ValidationError{
			Field:   "level",
			Message: fmt.Sprintf("a sub-item of a level %d item must have level %d, got %d", parent.Level, parent.Level+1, level),
		}
	}

	entry := ListEntry{ID: NewID(), ParentID: parentID, Level: level}
	b.insert(b.subtreeEnd(pi), entry)
	return entry.ID, nil
}

// AddSubItem adds a child under parentID
func (b *ListBuilder) AddSubItem(parentID string) (string, error) {
	pi := b.indexOf(parentID)
	if pi < 0 {
		return "", &LookupError{Kind: "list item", Key: parentID}
	}
	return b.AddItem(parentID, b.entries[pi].Level+1)
}

// AddSibling adds an entry with the same parent and level as itemID, right
// after itemID's subtree. This is the commit action while typing an item.
func (b *ListBuilder) AddSibling(itemID string) (string, error) {
	i := b.indexOf(itemID)
	if i < 0 {
		return "", &LookupError{Kind: "list item", Key: itemID}
	}
	cur := b.entries[i]
	entry := ListEntry{ID: NewID(), ParentID: cur.ParentID, Level: cur.Level}
	b.insert(b.subtreeEnd(i), entry)
	return entry.ID, nil
}

// SetText replaces the text of an entry
func (b *ListBuilder) SetText(id, text string) error {
	i := b.indexOf(id)
	if i < 0 {
		return &LookupError{Kind: "list item", Key: id}
	}
	b.entries[i].Text = text
	return nil
}

// Remove deletes the entry and every entry whose parent chain reaches it.
// It returns the number of entries removed.
func (b *ListBuilder) Remove(id string) int {
	if b.indexOf(id) < 0 {
		return 0
	}

	parents := make(map[string]string, len(b.entries))
	for _, e := range b.entries {
		parents[e.ID] = e.ParentID
	}

	kept := b.entries[:0]
	removed := 0
	for _, e := range b.entries {
		if descendsFrom(e.ID, id, parents) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	b.entries = kept
	return removed
}

// Collect returns the stored representation: trimmed text and level in
// authoring order, skipping entries with empty text. Children of a skipped
// entry move up so the result never jumps a level.
func (b *ListBuilder) Collect() []ListItem {
	var items []ListItem
	for _, e := range b.entries {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		items = append(items, ListItem{Text: text, Level: e.Level})
	}
	if len(items) == 0 {
		return items
	}
	return ClampLevels(items)
}

func (b *ListBuilder) indexOf(id string) int {
	for i, e := range b.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// subtreeEnd returns the index just past the contiguous descendants of i
func (b *ListBuilder) subtreeEnd(i int) int {
	level := b.entries[i].Level
	j := i + 1
	for j < len(b.entries) && b.entries[j].Level > level {
		j++
	}
	return j
}

func (b *ListBuilder) insert(at int, entry ListEntry) {
	b.entries = append(b.entries, ListEntry{})
	copy(b.entries[at+1:], b.entries[at:])
	b.entries[at] = entry
}

// descendsFrom walks the parent chain of id looking for ancestor
func descendsFrom(id, ancestor string, parents map[string]string) bool {
	seen := make(map[string]bool)
	for cur := id; cur != ""; cur = parents[cur] {
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}
