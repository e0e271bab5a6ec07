package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application/commands"
	"folio/internal/domain"
	"folio/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	New        key.Binding
	Delete     key.Binding
	Timeline   key.Binding
	Categories key.Binding
	Tags       key.Binding
	Personal   key.Binding
	Transfer   key.Binding
	Build      key.Binding
	Open       key.Binding
	Search     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit/toggle"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new project"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Timeline: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "timeline"),
	),
	Categories: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "categories"),
	),
	Tags: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "tags"),
	),
	Personal: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "personal"),
	),
	Transfer: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "import/export"),
	),
	Build: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "build site"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "build & open"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the dashboard home: the category/project tree with a
// summary of the document
type BrowserModel struct {
	ViewState
	repo      ports.PortfolioRepository
	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	cursor    int
	summary   string
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(repo ports.PortfolioRepository) *BrowserModel {
	return &BrowserModel{repo: repo}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

type treeLoadedMsg struct {
	root    *domain.TreeNode
	summary string
}

func (m *BrowserModel) loadTree() tea.Msg {
	ctx := context.Background()
	doc, err := m.repo.Load(ctx)
	if err != nil {
		return errMsg{err}
	}
	name := doc.Personal.Name
	if name == "" {
		name = "Unnamed portfolio"
	}
	summary := fmt.Sprintf("%s · %d projects · %d events · %d tags",
		name, len(doc.AllProjects()), len(doc.Timeline), len(doc.Tags))
	return treeLoadedMsg{root: domain.BuildTree(doc), summary: summary}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case treeLoadedMsg:
		m.setRoot(msg.root)
		m.summary = msg.summary
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Reload()

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flatNodes)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.Type == domain.NodeCategory && node.IsExpanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Type == domain.NodeProject {
					m.selectNode(node.Parent)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right):
			if node := m.selectedNode(); node != nil && node.Type == domain.NodeCategory && !node.IsExpanded {
				node.Expand()
				m.refreshFlatNodes()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			node := m.selectedNode()
			if node == nil {
				return m, nil
			}
			if node.Type == domain.NodeProject {
				return m, switchTo(SwitchToProjectMsg{ProjectID: node.Key})
			}
			node.Toggle()
			m.refreshFlatNodes()
			return m, nil

		case key.Matches(msg, BrowserKeys.New):
			return m, switchTo(SwitchToProjectMsg{CategoryKey: m.selectedCategory()})

		case key.Matches(msg, BrowserKeys.Delete):
			if node := m.selectedNode(); node != nil {
				return m, m.deleteNode(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Timeline):
			return m, switchTo(SwitchToTimelineMsg{})
		case key.Matches(msg, BrowserKeys.Categories):
			return m, switchTo(SwitchToCategoriesMsg{})
		case key.Matches(msg, BrowserKeys.Tags):
			return m, switchTo(SwitchToTagsMsg{})
		case key.Matches(msg, BrowserKeys.Personal):
			return m, switchTo(SwitchToPersonalMsg{})
		case key.Matches(msg, BrowserKeys.Transfer):
			return m, switchTo(SwitchToTransferMsg{})
		case key.Matches(msg, BrowserKeys.Build):
			return m, switchTo(BuildSiteMsg{})
		case key.Matches(msg, BrowserKeys.Open):
			return m, switchTo(BuildSiteMsg{Open: true})
		case key.Matches(msg, BrowserKeys.Search):
			return m, switchTo(SwitchToSearchMsg{})
		case key.Matches(msg, BrowserKeys.Help):
			return m, switchTo(SwitchToHelpMsg{})
		}
	}

	return m, nil
}

func (m *BrowserModel) deleteNode(node *domain.TreeNode) tea.Cmd {
	ctx := context.Background()
	detail := fmt.Sprintf("%s %s", node.Key, node.Name)

	if node.Type == domain.NodeProject {
		return confirmable(SwitchToBrowserMsg{}, detail, func(confirmed bool) (string, error) {
			res, err := commands.NewDeleteProjectCommand(m.repo, node.Key, confirmed).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
	}
	return confirmable(SwitchToBrowserMsg{}, detail, func(confirmed bool) (string, error) {
		res, err := commands.NewDeleteCategoryCommand(m.repo, node.Key, confirmed).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	})
}

// selectedCategory returns the category of the selected node, or the first
// category
func (m *BrowserModel) selectedCategory() string {
	node := m.selectedNode()
	switch {
	case node == nil:
		if m.root != nil && len(m.root.Children) > 0 {
			return m.root.Children[0].Key
		}
		return ""
	case node.Type == domain.NodeProject:
		return node.Parent.Key
	default:
		return node.Key
	}
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *BrowserModel) selectNode(target *domain.TreeNode) {
	for i, n := range m.flatNodes {
		if n == target {
			m.cursor = i
			return
		}
	}
}

// SelectProject moves the cursor to a project, e.g. after a search
func (m *BrowserModel) SelectProject(id string) {
	for i, n := range m.flatNodes {
		if n.Type == domain.NodeProject && n.Key == id {
			m.cursor = i
			return
		}
	}
}

// setRoot replaces the tree, keeping collapsed categories collapsed and the
// cursor on the same node when it still exists
func (m *BrowserModel) setRoot(root *domain.TreeNode) {
	selected := m.selectedNode()
	if m.root != nil {
		collapsed := map[string]bool{}
		for _, c := range m.root.Children {
			collapsed[c.Key] = !c.IsExpanded
		}
		for _, c := range root.Children {
			if collapsed[c.Key] {
				c.Collapse()
			}
		}
	}
	m.root = root
	m.refreshFlatNodes()
	if selected != nil {
		for i, n := range m.flatNodes {
			if n.Type == selected.Type && n.Key == selected.Key {
				m.cursor = i
				break
			}
		}
	}
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	m.cursor = max(0, min(m.cursor, len(m.flatNodes)-1))
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		return "Loading..."
	}

	v := NewViewBuilder().Title("Folio", "Portfolio content dashboard", m.summary)

	if len(m.flatNodes) == 0 {
		v.Muted("No categories yet. Press c to add one, or x to import a data.js file.")
	}
	for i, node := range m.flatNodes {
		v.Line(m.renderNode(node, i == m.cursor))
	}

	v.Message(m.Message, m.MessageErr)
	v.Help(BrowserKeys.Enter, BrowserKeys.New, BrowserKeys.Delete, BrowserKeys.Timeline,
		BrowserKeys.Categories, BrowserKeys.Personal, BrowserKeys.Transfer, BrowserKeys.Build,
		BrowserKeys.Help, BrowserKeys.Quit)
	return v.String()
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	var prefix string
	switch {
	case node.Type == domain.NodeProject:
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := node.Name
	if node.Icon != "" && node.Type == domain.NodeCategory {
		text = node.Icon + " " + text
	}

	var styled string
	switch {
	case selected:
		styled = styles.NodeSelected.Render(text)
	case node.Type == domain.NodeCategory:
		styled = styles.NodeCategory.Render(text) + styles.NodeCount.Render(fmt.Sprintf(" (%d)", node.Count))
	default:
		styled = styles.NodeProject.Render(text) + styles.MutedText.Render("  "+node.Key)
	}

	return indent + styles.TreeBranch.Render(prefix) + styled
}

// Reload reloads the tree from the repository
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadTree
}
