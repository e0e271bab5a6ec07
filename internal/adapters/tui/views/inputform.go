package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit  key.Binding
	Save    key.Binding
	Cancel  key.Binding
	Tab     key.Binding
	BackTab key.Binding
	Cycle   key.Binding
	Compose key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	BackTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("left", "right", " "),
		key.WithHelp("←/→", "change option"),
	),
	Compose: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "open in $EDITOR"),
	),
}

// FormAction is what a key press asked the form's owner to do
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmit
	FormCancel
	FormCompose
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldArea
	fieldChoice
)

// InputField is a labelled single-line input, multi-line area or choice
type InputField struct {
	Label   string
	kind    fieldKind
	input   textinput.Model
	area    textarea.Model
	options []string
	choice  int
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, kind: fieldText, input: input}
}

// NewAreaField creates a multi-line field
func NewAreaField(label, placeholder string, height int) InputField {
	area := textarea.New()
	area.Placeholder = placeholder
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.SetHeight(height)
	return InputField{Label: label, kind: fieldArea, area: area}
}

// NewChoiceField creates a field cycling through options; the first is the
// default
func NewChoiceField(label string, options ...string) InputField {
	return InputField{Label: label, kind: fieldChoice, options: options}
}

// Multiline reports whether enter inserts a newline in this field
func (f *InputField) Multiline() bool {
	return f.kind == fieldArea
}

func (f *InputField) value() string {
	switch f.kind {
	case fieldArea:
		return f.area.Value()
	case fieldChoice:
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.choice]
	default:
		return f.input.Value()
	}
}

func (f *InputField) setValue(v string) {
	switch f.kind {
	case fieldArea:
		f.area.SetValue(v)
	case fieldChoice:
		f.choice = 0
		for i, o := range f.options {
			if strings.EqualFold(o, v) {
				f.choice = i
			}
		}
	default:
		f.input.SetValue(v)
	}
}

func (f *InputField) focus() tea.Cmd {
	switch f.kind {
	case fieldArea:
		return f.area.Focus()
	case fieldText:
		return f.input.Focus()
	}
	return nil
}

func (f *InputField) blur() {
	switch f.kind {
	case fieldArea:
		f.area.Blur()
	case fieldText:
		f.input.Blur()
	}
}

// setWidth sizes the field's own widget; the other one is never initialized
func (f *InputField) setWidth(w int) {
	switch f.kind {
	case fieldArea:
		f.area.SetWidth(w)
	case fieldText:
		f.input.Width = w
	}
}

func (f *InputField) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.kind {
	case fieldArea:
		f.area, cmd = f.area.Update(msg)
	case fieldText:
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *InputField) view() string {
	switch f.kind {
	case fieldArea:
		return f.area.View()
	case fieldChoice:
		parts := make([]string, len(f.options))
		for i, o := range f.options {
			if i == f.choice {
				parts[i] = styles.NodeSelected.Render(" " + o + " ")
			} else {
				parts[i] = styles.MutedText.Render(" " + o + " ")
			}
		}
		return strings.Join(parts, "")
	default:
		return f.input.View()
	}
}

// InputForm manages multiple fields with focus handling
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a new input form with the given fields
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	if len(fields) > 0 {
		form.Fields[0].focus()
	}
	return form
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the input form and reports what the key
// asked for. Enter submits unless the focused field is multi-line.
func (f *InputForm) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		focused := f.Focused()
		switch {
		case key.Matches(msg, f.Keys.Cancel):
			return FormCancel, nil
		case key.Matches(msg, f.Keys.Save):
			return FormSubmit, nil
		case key.Matches(msg, f.Keys.Submit) && (focused == nil || !focused.Multiline()):
			return FormSubmit, nil
		case key.Matches(msg, f.Keys.Tab):
			return FormNone, f.NextField()
		case key.Matches(msg, f.Keys.BackTab):
			return FormNone, f.PrevField()
		case key.Matches(msg, f.Keys.Compose) && focused != nil && focused.Multiline():
			return FormCompose, nil
		case key.Matches(msg, f.Keys.Cycle) && focused != nil && focused.kind == fieldChoice:
			n := len(focused.options)
			if n > 0 {
				step := 1
				if msg.String() == "left" {
					step = n - 1
				}
				focused.choice = (focused.choice + step) % n
			}
			return FormNone, nil
		}
	}

	if focused := f.Focused(); focused != nil {
		return FormNone, focused.update(msg)
	}
	return FormNone, nil
}

// Focused returns the field with focus
func (f *InputForm) Focused() *InputField {
	if f.FocusedField < 0 || f.FocusedField >= len(f.Fields) {
		return nil
	}
	return &f.Fields[f.FocusedField]
}

// NextField moves focus to the next field
func (f *InputForm) NextField() tea.Cmd {
	if len(f.Fields) <= 1 {
		return nil
	}
	return f.SetFocus((f.FocusedField + 1) % len(f.Fields))
}

// PrevField moves focus to the previous field
func (f *InputForm) PrevField() tea.Cmd {
	if len(f.Fields) <= 1 {
		return nil
	}
	return f.SetFocus((f.FocusedField + len(f.Fields) - 1) % len(f.Fields))
}

// SetFocus sets focus to a specific field
func (f *InputForm) SetFocus(index int) tea.Cmd {
	if index < 0 || index >= len(f.Fields) {
		return nil
	}
	if current := f.Focused(); current != nil {
		current.blur()
	}
	f.FocusedField = index
	return f.Fields[index].focus()
}

// Value returns the trimmed value of a field by index
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].value())
}

// RawValue returns a field's value untrimmed, for code
func (f *InputForm) RawValue(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return f.Fields[index].value()
}

// Bool reports whether a yes/no choice field is set to yes
func (f *InputForm) Bool(index int) bool {
	return f.Value(index) == "yes"
}

// SetValue sets the value of a field by index
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].setValue(value)
}

// SetBool sets a yes/no choice field
func (f *InputForm) SetBool(index int, v bool) {
	if v {
		f.SetValue(index, "yes")
	} else {
		f.SetValue(index, "no")
	}
}

// SetWidth sizes every field
func (f *InputForm) SetWidth(w int) {
	for i := range f.Fields {
		f.Fields[i].setWidth(max(w, 20))
	}
}

// Reset clears all field values and resets focus to the first field
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].setValue("")
		f.Fields[i].blur()
	}
	f.FocusedField = 0
	if len(f.Fields) > 0 {
		f.Fields[0].focus()
	}
}

// RenderField renders a single field with appropriate styling
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}

	field := &f.Fields[index]
	style := styles.InputField
	if index == f.FocusedField {
		style = styles.InputFocused
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.InputLabel.Render(field.Label),
		style.Render(field.view()),
	)
}

// RenderFields renders every field in order
func (f *InputForm) RenderFields() string {
	parts := make([]string, len(f.Fields))
	for i := range f.Fields {
		parts[i] = f.RenderField(i)
	}
	return strings.Join(parts, "\n")
}

// RenderHelp renders the help text for the form
func (f *InputForm) RenderHelp(submitText string) string {
	var parts []string

	if len(f.Fields) > 1 {
		parts = append(parts, styles.HelpKey.Render("tab")+" "+styles.HelpDesc.Render("next field"))
	}
	if focused := f.Focused(); focused != nil && focused.Multiline() {
		parts = append(parts, styles.HelpKey.Render("ctrl+s")+" "+styles.HelpDesc.Render(submitText))
		parts = append(parts, styles.HelpKey.Render("ctrl+e")+" "+styles.HelpDesc.Render("$EDITOR"))
	} else {
		parts = append(parts, styles.HelpKey.Render("enter")+" "+styles.HelpDesc.Render(submitText))
	}
	if focused := f.Focused(); focused != nil && focused.kind == fieldChoice {
		parts = append(parts, styles.HelpKey.Render("←/→")+" "+styles.HelpDesc.Render("change"))
	}
	parts = append(parts, styles.HelpKey.Render("esc")+" "+styles.HelpDesc.Render("cancel"))

	return strings.Join(parts, "  ")
}

var yesNo = []string{"no", "yes"}
