package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/application/commands"
	"folio/internal/domain"
	"folio/internal/ports"
)

// RecordKeyMap defines key bindings shared by the category and tag lists
type RecordKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Back   key.Binding
}

var RecordKeys = RecordKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// Category form fields
const (
	categoryFieldKey = iota
	categoryFieldTitle
	categoryFieldIcon
	categoryFieldDescription
)

type categoriesLoadedMsg struct {
	categories []domain.Category
}

type recordSavedMsg struct {
	message string
}

// CategoriesModel lists, creates, edits and deletes project categories
type CategoriesModel struct {
	ViewState
	repo       ports.PortfolioRepository
	categories []domain.Category
	cursor     int

	form    *InputForm
	editKey string // empty when creating
}

// NewCategoriesModel creates a new categories view
func NewCategoriesModel(repo ports.PortfolioRepository) *CategoriesModel {
	return &CategoriesModel{repo: repo}
}

// Init initializes the categories view
func (m *CategoriesModel) Init() tea.Cmd {
	return m.Load()
}

// Load reloads the category list
func (m *CategoriesModel) Load() tea.Cmd {
	return func() tea.Msg {
		cats, err := commands.NewListCategoriesCommand(m.repo).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return categoriesLoadedMsg{cats}
	}
}

// Update handles messages for the categories view
func (m *CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		m.categories = msg.categories
		m.cursor = max(0, min(m.cursor, len(m.categories)-1))
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Load()

	case recordSavedMsg:
		m.form = nil
		m.SetMessage(msg.message, false)
		return m, m.Load()

	case tea.KeyMsg:
		if m.form != nil {
			return m, m.updateForm(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, RecordKeys.Back):
			return m, switchTo(SwitchToBrowserMsg{})
		case key.Matches(msg, RecordKeys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, RecordKeys.Down):
			m.cursor = max(0, min(len(m.categories)-1, m.cursor+1))
		case key.Matches(msg, RecordKeys.New):
			return m, m.openForm(domain.Category{}, false)
		case key.Matches(msg, RecordKeys.Edit):
			if c, ok := m.selected(); ok {
				return m, m.openForm(c, true)
			}
		case key.Matches(msg, RecordKeys.Delete):
			if c, ok := m.selected(); ok {
				return m, m.deleteCategory(c)
			}
		}
		return m, nil
	}

	if m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CategoriesModel) selected() (domain.Category, bool) {
	if m.cursor < 0 || m.cursor >= len(m.categories) {
		return domain.Category{}, false
	}
	return m.categories[m.cursor], true
}

func (m *CategoriesModel) openForm(c domain.Category, editing bool) tea.Cmd {
	m.editKey = ""
	if editing {
		m.editKey = c.Key
	}
	m.form = NewInputForm(
		NewInputField("Key", "web", 40),
		NewInputField("Title", "Web Development", 100),
		NewInputField("Icon", "🌐", 20),
		NewAreaField("Description", "Shown under the category heading", 3),
	)
	m.form.SetValue(categoryFieldKey, c.Key)
	m.form.SetValue(categoryFieldTitle, c.Title)
	m.form.SetValue(categoryFieldIcon, c.Icon)
	m.form.SetValue(categoryFieldDescription, c.Description)
	if editing {
		// the key identifies the category; only the other fields change
		return m.form.SetFocus(categoryFieldTitle)
	}
	return m.form.Init()
}

func (m *CategoriesModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		m.form = nil
		return nil
	case FormSubmit:
		create := m.editKey == ""
		c := domain.Category{
			Key:         m.form.Value(categoryFieldKey),
			Title:       m.form.Value(categoryFieldTitle),
			Icon:        m.form.Value(categoryFieldIcon),
			Description: m.form.Value(categoryFieldDescription),
		}
		if !create {
			c.Key = m.editKey
		}
		return func() tea.Msg {
			res, err := commands.NewSaveCategoryCommand(m.repo, c, create).Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return recordSavedMsg{res.Message}
		}
	}
	return cmd
}

func (m *CategoriesModel) deleteCategory(c domain.Category) tea.Cmd {
	detail := fmt.Sprintf("%s %s", c.Key, c.Title)
	return confirmable(SwitchToCategoriesMsg{}, detail, func(confirmed bool) (string, error) {
		res, err := commands.NewDeleteCategoryCommand(m.repo, c.Key, confirmed).Execute(context.Background())
		if err != nil {
			return "", err
		}
		return res.Message, nil
	})
}

// View renders the category list or form
func (m *CategoriesModel) View() string {
	if m.form != nil {
		title := "New Category"
		if m.editKey != "" {
			title = "Edit Category"
		}
		return NewViewBuilder().Title(title, m.editKey).
			Line(m.form.RenderFields()).
			Message(m.Message, m.MessageErr).
			Raw("\n" + m.form.RenderHelp("save category")).
			String()
	}

	v := NewViewBuilder().Title("Categories")
	if len(m.categories) == 0 {
		v.Muted("No categories. Press n to add one.")
	}
	for i, c := range m.categories {
		row := fmt.Sprintf("%s %-12s %s (%d)", c.Icon, c.Key, c.Title, len(c.Projects))
		v.Line(RenderRow(row, i == m.cursor, m.Width))
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(RecordKeys.New, RecordKeys.Edit, RecordKeys.Delete, RecordKeys.Back)
	return v.String()
}
