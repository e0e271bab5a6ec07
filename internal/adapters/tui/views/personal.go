package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/application/commands"
	"folio/internal/domain"
	"folio/internal/ports"
)

// Personal form fields
const (
	personalFieldName = iota
	personalFieldProfession
	personalFieldTagline
	personalFieldBackground
	personalFieldBio
	personalFieldLogo
	personalFieldProfileImage
	personalFieldEmail
	personalFieldGitHub
	personalFieldLinkedIn
	personalFieldSiteURL
	personalFieldDescription
	personalFieldKeywords
)

type personalLoadedMsg struct {
	personal domain.Personal
}

// PersonalModel edits the profile shown on the index page
type PersonalModel struct {
	ViewState
	repo ports.PortfolioRepository
	form *InputForm
}

// NewPersonalModel creates a new personal information view
func NewPersonalModel(repo ports.PortfolioRepository) *PersonalModel {
	return &PersonalModel{
		repo: repo,
		form: NewInputForm(
			NewInputField("Name", "Ada Lovelace", 100),
			NewInputField("Profession", "Software Engineer", 100),
			NewInputField("Tagline", "Building things for the web", 200),
			NewInputField("Background", "Computer Science graduate", 200),
			NewAreaField("Bio", "A few sentences about you", 3),
			NewInputField("Logo", "Image/logo.png", 200),
			NewInputField("Profile image", "Image/profile.jpg", 200),
			NewInputField("Email", "you@example.com", 100),
			NewInputField("GitHub username", "octocat", 60),
			NewInputField("LinkedIn username", "your-name", 60),
			NewInputField("Site URL", "https://you.github.io", 200),
			NewInputField("Meta description", "Portfolio of ...", 300),
			NewInputField("Keywords", "developer, portfolio", 300),
		),
	}
}

// Init initializes the personal view
func (m *PersonalModel) Init() tea.Cmd {
	return m.Load()
}

// Load fills the form from the stored document
func (m *PersonalModel) Load() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.repo.Load(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return personalLoadedMsg{doc.Personal}
	}
}

func (m *PersonalModel) fill(p domain.Personal) {
	m.form.Reset()
	for i, v := range []string{
		p.Name, p.Profession, p.Tagline, p.Background, p.Bio, p.Logo, p.ProfileImage,
		p.Email, p.GitHub, p.LinkedIn, p.SiteURL, p.Description, p.Keywords,
	} {
		m.form.SetValue(i, v)
	}
}

// Personal returns the profile described by the form
func (m *PersonalModel) Personal() domain.Personal {
	return domain.Personal{
		Name:         m.form.Value(personalFieldName),
		Profession:   m.form.Value(personalFieldProfession),
		Tagline:      m.form.Value(personalFieldTagline),
		Background:   m.form.Value(personalFieldBackground),
		Bio:          m.form.Value(personalFieldBio),
		Logo:         m.form.Value(personalFieldLogo),
		ProfileImage: m.form.Value(personalFieldProfileImage),
		Email:        m.form.Value(personalFieldEmail),
		GitHub:       m.form.Value(personalFieldGitHub),
		LinkedIn:     m.form.Value(personalFieldLinkedIn),
		SiteURL:      m.form.Value(personalFieldSiteURL),
		Description:  m.form.Value(personalFieldDescription),
		Keywords:     m.form.Value(personalFieldKeywords),
	}
}

// Update handles messages for the personal view
func (m *PersonalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case personalLoadedMsg:
		m.fill(msg.personal)
		return m, m.form.Init()

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case ComposedMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
		} else if msg.Target == "personal.bio" {
			m.form.SetValue(personalFieldBio, msg.Text)
		}
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		action, cmd := m.form.Update(msg)
		switch action {
		case FormCancel:
			return m, switchTo(SwitchToBrowserMsg{})
		case FormCompose:
			return m, switchTo(ComposeMsg{Initial: m.form.RawValue(personalFieldBio), Ext: ".md", Target: "personal.bio"})
		case FormSubmit:
			p := m.Personal()
			return m, func() tea.Msg {
				message, err := commands.NewSavePersonalCommand(m.repo, p).Execute(context.Background())
				if err != nil {
					return errMsg{err}
				}
				return successMsg{message}
			}
		}
		return m, cmd
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the form in two columns
func (m *PersonalModel) View() string {
	var left, right []string
	for i := range m.form.Fields {
		if i <= personalFieldProfileImage {
			left = append(left, m.form.RenderField(i))
		} else {
			right = append(right, m.form.RenderField(i))
		}
	}
	colWidth := max(m.Width/2-2, 30)
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, left...)),
		lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, right...)),
	)

	return NewViewBuilder().Title("Personal Information", "shown on the home page").
		Raw(columns + "\n").
		Message(m.Message, m.MessageErr).
		Raw("\n" + m.form.RenderHelp("save")).
		String()
}

// SetSize updates the view dimensions
func (m *PersonalModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.form.SetWidth(max(width/2-8, 20))
}
