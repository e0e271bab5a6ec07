package draft

import (
	"fmt"
	"slices"

	"folio/internal/application"
	"folio/internal/domain"
)

// Mode is the editor's form state
type Mode int

const (
	ModeIdle Mode = iota
	ModeComposingNew
	ModeComposingEdit
)

// State describes what the editor form is doing. Kind is meaningful while
// composing; Index only while editing an existing section.
type State struct {
	Mode  Mode
	Kind  domain.BlockKind
	Index int
}

func (s State) String() string {
	switch s.Mode {
	case ModeComposingNew:
		return fmt.Sprintf("composing new %s", s.Kind)
	case ModeComposingEdit:
		return fmt.Sprintf("editing %s #%d", s.Kind, s.Index+1)
	default:
		return "idle"
	}
}

// Change is delivered to the OnChange callback after every mutation
type Change struct {
	Sections []domain.Section
}

// SectionEditor owns the ordered sections of the project being edited and
// the form state used to add or edit them
type SectionEditor struct {
	sections  []domain.Section
	mode      Mode
	kind      domain.BlockKind
	editingID string
	onChange  func(Change)
}

// NewSectionEditor starts an idle editor over a copy of sections
func NewSectionEditor(sections []domain.Section) *SectionEditor {
	s := domain.CloneSections(sections)
	domain.Renumber(s)
	return &SectionEditor{sections: s}
}

// Sections returns a copy of the current sequence
func (e *SectionEditor) Sections() []domain.Section {
	return domain.CloneSections(e.sections)
}

// Len returns the number of sections
func (e *SectionEditor) Len() int {
	return len(e.sections)
}

// State reports the current form state
func (e *SectionEditor) State() State {
	switch e.mode {
	case ModeComposingNew:
		return State{Mode: ModeComposingNew, Kind: e.kind, Index: -1}
	case ModeComposingEdit:
		return State{Mode: ModeComposingEdit, Kind: e.kind, Index: e.indexOf(e.editingID)}
	default:
		return State{Mode: ModeIdle, Index: -1}
	}
}

// OnChange registers the callback invoked after every mutation
func (e *SectionEditor) OnChange(fn func(Change)) {
	e.onChange = fn
}

// ShowForm opens an empty form for a new block of kind, abandoning any form
// in progress
func (e *SectionEditor) ShowForm(kind domain.BlockKind) {
	e.mode = ModeComposingNew
	e.kind = kind
	e.editingID = ""
}

// BeginEdit opens the form for the section at index and returns its block so
// the form can be pre-populated
func (e *SectionEditor) BeginEdit(index int) (domain.Block, error) {
	if index < 0 || index >= len(e.sections) {
		return nil, &application.LookupError{Kind: "section", Key: fmt.Sprint(index)}
	}
	s := e.sections[index]
	e.mode = ModeComposingEdit
	e.kind = s.Block.Kind()
	e.editingID = s.ID
	return domain.CloneSections([]domain.Section{s})[0].Block, nil
}

// Cancel closes the form without touching the sequence
func (e *SectionEditor) Cancel() {
	e.mode = ModeIdle
	e.editingID = ""
}

// Submit validates b and appends it (composing new) or replaces the section
// under edit, keeping its ID. On error nothing changes.
func (e *SectionEditor) Submit(b domain.Block) (domain.Section, error) {
	if e.mode == ModeIdle {
		return domain.Section{}, fmt.Errorf("submit without an open form: %w", application.ErrInvalidOperation)
	}
	if b == nil {
		return domain.Section{}, &application.ValidationError{Field: "type", Message: "no content to save"}
	}
	if b.Kind() != e.kind {
		return domain.Section{}, &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("form is composing a %s block, got %s", e.kind, b.Kind()),
		}
	}

	b = domain.WithDefaults(b)
	if err := b.Validate(); err != nil {
		return domain.Section{}, err
	}

	var saved domain.Section
	if e.mode == ModeComposingEdit {
		i := e.indexOf(e.editingID)
		if i < 0 {
			return domain.Section{}, &application.LookupError{Kind: "section", Key: e.editingID}
		}
		e.sections[i].Block = b
		saved = e.sections[i]
	} else {
		saved = domain.Section{ID: domain.NewID(), Order: len(e.sections), Block: b}
		e.sections = append(e.sections, saved)
	}

	e.mode = ModeIdle
	e.editingID = ""
	e.changed()
	return saved, nil
}

// Remove deletes the section at index. Without confirmation it returns a
// ConfirmationError and leaves the sequence alone.
func (e *SectionEditor) Remove(index int, confirmed bool) error {
	if index < 0 || index >= len(e.sections) {
		return &application.LookupError{Kind: "section", Key: fmt.Sprint(index)}
	}
	if !confirmed {
		return &application.ConfirmationError{Prompt: "Are you sure you want to delete this section?"}
	}
	if e.sections[index].ID == e.editingID {
		e.Cancel()
	}
	e.sections = slices.Delete(e.sections, index, index+1)
	e.changed()
	return nil
}

// MoveUp swaps the section at index with its predecessor. It reports whether
// anything moved.
func (e *SectionEditor) MoveUp(index int) bool {
	if index <= 0 || index >= len(e.sections) {
		return false
	}
	e.swap(index, index-1)
	return true
}

// MoveDown swaps the section at index with its successor
func (e *SectionEditor) MoveDown(index int) bool {
	if index < 0 || index >= len(e.sections)-1 {
		return false
	}
	e.swap(index, index+1)
	return true
}

func (e *SectionEditor) swap(i, j int) {
	e.sections[i], e.sections[j] = e.sections[j], e.sections[i]
	e.changed()
}

func (e *SectionEditor) changed() {
	domain.Renumber(e.sections)
	if e.onChange != nil {
		e.onChange(Change{Sections: e.Sections()})
	}
}

func (e *SectionEditor) indexOf(id string) int {
	for i, s := range e.sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
