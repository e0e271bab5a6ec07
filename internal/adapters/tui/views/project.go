package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application/commands"
	"folio/internal/application/draft"
	"folio/internal/domain"
	"folio/internal/ports"
)

// ProjectKeyMap defines key bindings for the project form
type ProjectKeyMap struct {
	Save     key.Binding
	Sections key.Binding
	Tech     key.Binding
	Links    key.Binding
	Remove   key.Binding
	Back     key.Binding
}

var ProjectKeys = ProjectKeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save project"),
	),
	Sections: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "sections"),
	),
	Tech: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "tech stack"),
	),
	Links: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "links"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "remove selected"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// Project form fields
const (
	projectFieldID = iota
	projectFieldTitle
	projectFieldSubtitle
	projectFieldCategory
	projectFieldIcon
	projectFieldDescription
)

// Link form fields
const (
	linkFieldType = iota
	linkFieldURL
	linkFieldLabel
)

type projectZone int

const (
	zoneFields projectZone = iota
	zoneTech
	zoneLinks
)

// SwitchToSectionsMsg opens the section editor for the draft in the form
type SwitchToSectionsMsg struct{}

// BackToProjectMsg returns from the section editor to the form
type BackToProjectMsg struct{}

type draftLoadedMsg struct {
	draft      *draft.Draft
	categories []string
}

// ProjectModel edits one project draft: fields, tech stack and links. The
// sections are edited in SectionsModel over the same draft.
type ProjectModel struct {
	ViewState
	repo       ports.PortfolioRepository
	draft      *draft.Draft
	categories []string
	form       *InputForm
	zone       projectZone

	techInput  textinput.Model
	techCursor int
	linkForm   *InputForm
	linkCursor int
}

// NewProjectModel creates a new project form
func NewProjectModel(repo ports.PortfolioRepository) *ProjectModel {
	techInput := textinput.New()
	techInput.Placeholder = "Technology, e.g. Go"
	techInput.CharLimit = 60

	linkTypes := make([]string, len(domain.LinkTypes))
	for i, t := range domain.LinkTypes {
		linkTypes[i] = string(t)
	}

	return &ProjectModel{
		repo:      repo,
		techInput: techInput,
		linkForm: NewInputForm(
			NewChoiceField("Type", linkTypes...),
			NewInputField("URL", "https://github.com/you/project", 300),
			NewInputField("Label (optional)", "defaults to the type's label", 60),
		),
	}
}

// Open loads a project (id set) or starts a new one in categoryKey
func (m *ProjectModel) Open(id, categoryKey string) tea.Cmd {
	m.ClearMessage()
	m.draft = nil
	return func() tea.Msg {
		doc, err := m.repo.Load(context.Background())
		if err != nil {
			return errMsg{err}
		}
		var cats []string
		for _, c := range doc.Categories {
			cats = append(cats, c.Key)
		}
		if id == "" {
			return draftLoadedMsg{draft: draft.New(categoryKey), categories: cats}
		}
		d, err := draft.Open(doc, id)
		if err != nil {
			return errMsg{err}
		}
		return draftLoadedMsg{draft: d, categories: cats}
	}
}

// Draft returns the draft being edited
func (m *ProjectModel) Draft() *draft.Draft {
	return m.draft
}

func (m *ProjectModel) load(d *draft.Draft, categories []string) {
	m.draft = d
	m.categories = categories
	if len(categories) == 0 {
		categories = []string{""}
	}
	m.form = NewInputForm(
		NewInputField("Project ID", "task-manager", 60),
		NewInputField("Title", "Task Manager", 100),
		NewInputField("Subtitle", "One-line summary", 150),
		NewChoiceField("Category", categories...),
		NewInputField("Icon", "Image/logo.png or an emoji", 200),
		NewAreaField("Description", "Shown when the project has no sections", 4),
	)
	m.form.SetValue(projectFieldID, d.ID)
	m.form.SetValue(projectFieldTitle, d.Title)
	m.form.SetValue(projectFieldSubtitle, d.Subtitle)
	m.form.SetValue(projectFieldCategory, d.CategoryKey)
	m.form.SetValue(projectFieldIcon, d.Icon)
	m.form.SetValue(projectFieldDescription, d.Description)
	m.form.SetWidth(m.Width - 10)
	m.zone = zoneFields
	m.techCursor, m.linkCursor = 0, 0
}

// sync copies the form into the draft
func (m *ProjectModel) sync() {
	if m.draft == nil || m.form == nil {
		return
	}
	m.draft.ID = m.form.Value(projectFieldID)
	m.draft.Title = m.form.Value(projectFieldTitle)
	m.draft.Subtitle = m.form.Value(projectFieldSubtitle)
	m.draft.CategoryKey = m.form.Value(projectFieldCategory)
	m.draft.Icon = m.form.Value(projectFieldIcon)
	m.draft.Description = m.form.Value(projectFieldDescription)
}

// Init initializes the form
func (m *ProjectModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the project form
func (m *ProjectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftLoadedMsg:
		m.load(msg.draft, msg.categories)
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case ComposedMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
		} else if m.form != nil && msg.Target == "project.description" {
			m.form.SetValue(projectFieldDescription, strings.TrimRight(msg.Text, "\n"))
		}
		return m, nil

	case tea.KeyMsg:
		if m.draft == nil {
			if key.Matches(msg, ProjectKeys.Back) {
				return m, switchTo(SwitchToBrowserMsg{})
			}
			return m, nil
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, ProjectKeys.Save):
			return m, m.save()
		case key.Matches(msg, ProjectKeys.Sections):
			m.sync()
			return m, switchTo(SwitchToSectionsMsg{})
		case key.Matches(msg, ProjectKeys.Tech):
			m.zone = zoneTech
			m.form.Focused().blur()
			return m, m.techInput.Focus()
		case key.Matches(msg, ProjectKeys.Links):
			m.zone = zoneLinks
			m.form.Focused().blur()
			m.techInput.Blur()
			return m, m.linkForm.SetFocus(linkFieldURL)
		}

		switch m.zone {
		case zoneTech:
			return m, m.updateTech(msg)
		case zoneLinks:
			return m, m.updateLinks(msg)
		}

		action, cmd := m.form.Update(msg)
		switch action {
		case FormCancel:
			return m, switchTo(SwitchToBrowserMsg{})
		case FormSubmit:
			return m, m.save()
		case FormCompose:
			return m, switchTo(ComposeMsg{Initial: m.form.RawValue(projectFieldDescription), Ext: ".md", Target: "project.description"})
		}
		return m, cmd
	}

	if m.form != nil && m.zone == zoneFields {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProjectModel) backToFields() tea.Cmd {
	m.zone = zoneFields
	m.techInput.Blur()
	m.linkForm.Focused().blur()
	return m.form.SetFocus(m.form.FocusedField)
}

func (m *ProjectModel) updateTech(msg tea.KeyMsg) tea.Cmd {
	tech := m.draft.TechStack()
	switch {
	case key.Matches(msg, ProjectKeys.Back):
		return m.backToFields()
	case msg.String() == "enter":
		if err := m.draft.AddTech(m.techInput.Value()); err != nil {
			m.SetError(err)
			return nil
		}
		m.techInput.SetValue("")
		m.techCursor = len(m.draft.TechStack()) - 1
		return nil
	case msg.String() == "up":
		m.techCursor = max(0, m.techCursor-1)
		return nil
	case msg.String() == "down":
		m.techCursor = min(len(tech)-1, m.techCursor+1)
		return nil
	case key.Matches(msg, ProjectKeys.Remove):
		if err := m.draft.RemoveTech(m.techCursor); err != nil {
			m.SetError(err)
			return nil
		}
		m.techCursor = max(0, min(m.techCursor, len(tech)-2))
		return nil
	}
	var cmd tea.Cmd
	m.techInput, cmd = m.techInput.Update(msg)
	return cmd
}

func (m *ProjectModel) updateLinks(msg tea.KeyMsg) tea.Cmd {
	links := m.draft.Links()
	switch {
	case key.Matches(msg, ProjectKeys.Back):
		return m.backToFields()
	case msg.String() == "up":
		m.linkCursor = max(0, m.linkCursor-1)
		return nil
	case msg.String() == "down":
		m.linkCursor = min(len(links)-1, m.linkCursor+1)
		return nil
	case key.Matches(msg, ProjectKeys.Remove):
		if err := m.draft.RemoveLink(m.linkCursor); err != nil {
			m.SetError(err)
			return nil
		}
		m.linkCursor = max(0, min(m.linkCursor, len(links)-2))
		return nil
	}

	action, cmd := m.linkForm.Update(msg)
	if action == FormSubmit {
		l := domain.Link{
			Type:  domain.LinkType(m.linkForm.Value(linkFieldType)),
			URL:   m.linkForm.Value(linkFieldURL),
			Label: m.linkForm.Value(linkFieldLabel),
		}
		if err := m.draft.AddLink(l); err != nil {
			m.SetError(err)
			return nil
		}
		m.linkForm.SetValue(linkFieldURL, "")
		m.linkForm.SetValue(linkFieldLabel, "")
		m.linkCursor = len(m.draft.Links()) - 1
		return m.linkForm.SetFocus(linkFieldURL)
	}
	return cmd
}

func (m *ProjectModel) save() tea.Cmd {
	m.sync()
	d := m.draft
	return func() tea.Msg {
		res, err := commands.NewSaveProjectCommand(m.repo, d).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

// View renders the project form
func (m *ProjectModel) View() string {
	if m.draft == nil {
		v := NewViewBuilder().Title("Project")
		if m.Message != "" {
			return v.Message(m.Message, m.MessageErr).Help(ProjectKeys.Back).String()
		}
		return v.Line("Loading...").String()
	}

	title := "Edit Project"
	if m.draft.IsNew() {
		title = "New Project"
	}
	v := NewViewBuilder().Title(title, m.draft.PreviousID)
	if len(m.categories) == 0 {
		v.Line(styles.WarningText.Render("Create a category first (c in the browser)")).BlankLine()
	}

	v.Line(m.form.RenderFields()).BlankLine()
	v.Line(m.renderTech()).BlankLine()
	v.Line(m.renderLinks()).BlankLine()
	v.Line(RenderLabelValue("Sections", fmt.Sprintf("%d (ctrl+o to edit)", m.draft.Sections.Len())))

	v.Message(m.Message, m.MessageErr)
	switch m.zone {
	case zoneTech:
		v.Raw("\n" + styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render("add") + "  " +
			RenderHelpLine(ProjectKeys.Remove, ProjectKeys.Back))
	case zoneLinks:
		v.Raw("\n" + m.linkForm.RenderHelp("add link") + "  " + RenderKeyHelp(ProjectKeys.Remove))
	default:
		v.Raw("\n" + m.form.RenderHelp("save"))
		v.Help(ProjectKeys.Sections, ProjectKeys.Tech, ProjectKeys.Links, ProjectKeys.Save)
	}
	return v.String()
}

func (m *ProjectModel) renderTech() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render("Tech stack"))
	b.WriteString("\n")
	tech := m.draft.TechStack()
	if len(tech) == 0 {
		b.WriteString(styles.MutedText.Render("  none"))
		b.WriteString("\n")
	}
	for i, t := range tech {
		b.WriteString(RenderRow(t, m.zone == zoneTech && i == m.techCursor, m.Width))
		b.WriteString("\n")
	}
	if m.zone == zoneTech {
		b.WriteString(styles.InputFocused.Render(m.techInput.View()))
	}
	return b.String()
}

func (m *ProjectModel) renderLinks() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render("Links"))
	b.WriteString("\n")
	links := m.draft.Links()
	if len(links) == 0 {
		b.WriteString(styles.MutedText.Render("  none"))
		b.WriteString("\n")
	}
	for i, l := range links {
		row := fmt.Sprintf("[%s] %s  %s", l.Type, l.DetailLabel(), l.URL)
		b.WriteString(RenderRow(row, m.zone == zoneLinks && i == m.linkCursor, m.Width))
		b.WriteString("\n")
	}
	if m.zone == zoneLinks {
		b.WriteString(m.linkForm.RenderFields())
	}
	return b.String()
}

// SetSize updates the view dimensions
func (m *ProjectModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	if m.form != nil {
		m.form.SetWidth(width - 10)
	}
	m.linkForm.SetWidth(width - 10)
}
