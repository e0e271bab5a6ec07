package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/internal/adapters/tui/styles"
	"folio/internal/domain"
)

// BlockFormModel is the form for one content block. Its fields depend on the
// block kind; lists add a ListBuilderModel below the fields.
type BlockFormModel struct {
	kind        domain.BlockKind
	editing     bool
	form        *InputForm
	list        *ListBuilderModel
	listFocused bool
}

// NewBlockForm opens a form for kind, pre-populated from initial when editing
func NewBlockForm(kind domain.BlockKind, initial domain.Block) *BlockFormModel {
	m := &BlockFormModel{kind: kind, editing: initial != nil}

	switch kind {
	case domain.KindHeading:
		m.form = NewInputForm(
			NewInputField("Heading text", "Overview", 200),
			NewChoiceField("Level", "1", "2", "3", "4", "5", "6"),
		)
		m.form.SetValue(1, "2")
		if h, ok := initial.(domain.Heading); ok {
			m.form.SetValue(0, h.Text)
			m.form.SetValue(1, strconv.Itoa(h.Level))
		}

	case domain.KindText:
		m.form = NewInputForm(
			NewAreaField("Text", "Supports [label](https://example.com) links", 5),
			NewChoiceField("Font size", string(domain.FontSmall), string(domain.FontMedium), string(domain.FontLarge)),
			NewChoiceField("Bold", yesNo...),
			NewChoiceField("Italic", yesNo...),
		)
		m.form.SetValue(1, string(domain.FontMedium))
		if t, ok := initial.(domain.Text); ok {
			m.form.SetValue(0, t.Text)
			m.form.SetValue(1, string(domain.ParseFontSize(string(t.FontSize))))
			m.form.SetBool(2, t.Bold)
			m.form.SetBool(3, t.Italic)
		}

	case domain.KindList:
		m.form = NewInputForm(NewChoiceField("Style", "bulleted", "numbered"))
		var items []domain.ListItem
		if l, ok := initial.(domain.List); ok {
			items = l.Items
			if l.Ordered {
				m.form.SetValue(0, "numbered")
			}
		}
		m.list = NewListBuilderModel(items)
		m.form.Focused().blur()
		m.listFocused = true
		m.list.Focus()

	case domain.KindCode:
		m.form = NewInputForm(
			NewInputField("Language", "plaintext", 40),
			NewAreaField("Code", "", 8),
		)
		if c, ok := initial.(domain.Code); ok {
			m.form.SetValue(0, c.Language)
			m.form.SetValue(1, c.Text)
		}

	case domain.KindImage:
		m.form = NewInputForm(
			NewInputField("Image URL", "Image/screenshot.png", 300),
			NewInputField("Alt text", "Image", 200),
		)
		if i, ok := initial.(domain.Image); ok {
			m.form.SetValue(0, i.Src)
			m.form.SetValue(1, i.Alt)
		}

	case domain.KindVideo:
		m.form = NewInputForm(
			NewChoiceField("Platform", string(domain.PlatformYouTube), string(domain.PlatformLocal)),
			NewInputField("Video URL", "https://www.youtube.com/watch?v=...", 300),
		)
		m.form.SetFocus(1)
		if v, ok := initial.(domain.Video); ok {
			m.form.SetValue(0, string(v.Platform))
			m.form.SetValue(1, v.Src)
		}
	}
	return m
}

// Kind returns the block kind being composed
func (m *BlockFormModel) Kind() domain.BlockKind {
	return m.kind
}

// Block builds the block described by the form. Validation happens when the
// section editor receives it.
func (m *BlockFormModel) Block() domain.Block {
	switch m.kind {
	case domain.KindHeading:
		level, _ := strconv.Atoi(m.form.Value(1))
		return domain.Heading{Text: m.form.Value(0), Level: level}
	case domain.KindText:
		return domain.Text{
			Text:     m.form.Value(0),
			FontSize: domain.FontSize(m.form.Value(1)),
			Bold:     m.form.Bool(2),
			Italic:   m.form.Bool(3),
		}
	case domain.KindList:
		return domain.List{Ordered: m.form.Value(0) == "numbered", Items: m.list.Items()}
	case domain.KindCode:
		return domain.Code{Language: m.form.Value(0), Text: strings.TrimRight(m.form.RawValue(1), "\n")}
	case domain.KindImage:
		return domain.Image{Src: m.form.Value(0), Alt: m.form.Value(1)}
	case domain.KindVideo:
		return domain.Video{Platform: domain.VideoPlatform(m.form.Value(0)), Src: m.form.Value(1)}
	}
	return nil
}

// composeField is the multi-line field $EDITOR fills for this kind
func (m *BlockFormModel) composeField() int {
	if m.kind == domain.KindCode {
		return 1
	}
	return 0
}

// SetComposed stores text written in the external editor
func (m *BlockFormModel) SetComposed(text string) {
	m.form.SetValue(m.composeField(), strings.TrimRight(text, "\n"))
}

// ComposeRequest returns the ComposeMsg for the focused multi-line field
func (m *BlockFormModel) ComposeRequest() ComposeMsg {
	ext := ".md"
	if m.kind == domain.KindCode {
		ext = ".txt"
	}
	return ComposeMsg{Initial: m.form.RawValue(m.composeField()), Ext: ext, Target: "section"}
}

// Update routes keys to the fields or the list builder
func (m *BlockFormModel) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	if m.list != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, m.form.Keys.Cancel):
				return FormCancel, nil
			case key.Matches(keyMsg, m.form.Keys.Save):
				return FormSubmit, nil
			case m.listFocused && key.Matches(keyMsg, m.form.Keys.BackTab):
				m.listFocused = false
				m.list.Blur()
				return FormNone, m.form.SetFocus(0)
			case !m.listFocused && key.Matches(keyMsg, m.form.Keys.Tab):
				m.listFocused = true
				m.form.Focused().blur()
				return FormNone, m.list.Focus()
			case !m.listFocused && key.Matches(keyMsg, m.form.Keys.Submit):
				return FormSubmit, nil
			}
		}
		if m.listFocused {
			return FormNone, m.list.Update(msg)
		}
	}
	return m.form.Update(msg)
}

// View renders the form
func (m *BlockFormModel) View() string {
	verb := "Add"
	if m.editing {
		verb = "Edit"
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render(verb + " " + cases.Title(language.English).String(m.kind.String()) + " Section"))
	b.WriteString("\n")
	b.WriteString(m.form.RenderFields())
	b.WriteString("\n")

	if m.list != nil {
		b.WriteString(styles.InputLabel.Render("Items"))
		b.WriteString("\n")
		b.WriteString(m.list.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpKey.Render("ctrl+s") + " " + styles.HelpDesc.Render("save section") + "  " +
			styles.HelpKey.Render("shift+tab/tab") + " " + styles.HelpDesc.Render("style/items") + "  " +
			styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.form.RenderHelp("save section"))
	return b.String()
}

// SetWidth sizes the fields
func (m *BlockFormModel) SetWidth(w int) {
	m.form.SetWidth(w)
}
