package views

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/application"
	"folio/internal/application/draft"
	"folio/internal/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(update func(tea.Msg), s string) {
	for _, r := range s {
		update(runes(string(r)))
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func TestPaginator_PagesFollowCursor(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for range 3 {
		p.CursorDown()
	}
	if p.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", p.Cursor())
	}
	if p.CurrentPage() != 2 || p.TotalPages() != 3 {
		t.Errorf("page %d/%d, want 2/3", p.CurrentPage(), p.TotalPages())
	}
	if start, end := p.VisibleRange(); start != 3 || end != 6 {
		t.Errorf("visible range = %d..%d, want 3..6", start, end)
	}

	p.CursorUp()
	if p.CurrentPage() != 1 {
		t.Errorf("page after moving up = %d, want 1", p.CurrentPage())
	}
}

func TestInputForm_EnterSubmitsUnlessMultiline(t *testing.T) {
	form := NewInputForm(
		NewInputField("Title", "", 0),
		NewAreaField("Description", "", 3),
	)

	if action, _ := form.Update(tea.KeyMsg{Type: tea.KeyEnter}); action != FormSubmit {
		t.Errorf("enter on a text field = %v, want FormSubmit", action)
	}

	form.NextField()
	if action, _ := form.Update(tea.KeyMsg{Type: tea.KeyEnter}); action != FormNone {
		t.Errorf("enter in a text area = %v, want FormNone", action)
	}
	if action, _ := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); action != FormSubmit {
		t.Errorf("ctrl+s = %v, want FormSubmit", action)
	}
	if action, _ := form.Update(tea.KeyMsg{Type: tea.KeyCtrlE}); action != FormCompose {
		t.Errorf("ctrl+e in a text area = %v, want FormCompose", action)
	}
	if action, _ := form.Update(tea.KeyMsg{Type: tea.KeyEsc}); action != FormCancel {
		t.Errorf("esc = %v, want FormCancel", action)
	}
}

func TestInputForm_SetWidthOnMixedFields(t *testing.T) {
	form := NewInputForm(
		NewInputField("Title", "", 0),
		NewAreaField("Description", "", 3),
		NewChoiceField("Bold", yesNo...),
	)
	form.SetWidth(60)
	form.SetValue(0, "Roadmap")
	form.SetValue(1, "line one")

	if form.Value(0) != "Roadmap" || form.Value(1) != "line one" || form.Bool(2) {
		t.Errorf("values changed by resizing: %q %q %v", form.Value(0), form.Value(1), form.Bool(2))
	}
}

func TestViews_SetSizeWithForms(t *testing.T) {
	ws := application.NewWorkspace(domain.SamplePortfolio())

	sizers := []interface{ SetSize(int, int) }{
		NewPersonalModel(ws),
		NewProjectModel(ws),
		NewTimelineModel(ws),
		NewTransferModel(ws),
		NewSectionsModel(),
	}
	for _, v := range sizers {
		v.SetSize(120, 40)
		v.SetSize(30, 10)
	}

	for _, kind := range domain.BlockKinds {
		form := NewBlockForm(kind, nil)
		form.SetWidth(50)
		if form.Kind() != kind {
			t.Errorf("form kind = %v, want %v", form.Kind(), kind)
		}
	}
}

func TestInputForm_ChoiceCycles(t *testing.T) {
	form := NewInputForm(NewChoiceField("Bold", yesNo...))

	if form.Bool(0) {
		t.Fatal("first option should be the default")
	}
	form.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !form.Bool(0) {
		t.Error("right should select yes")
	}
	form.Update(tea.KeyMsg{Type: tea.KeyRight})
	if form.Bool(0) {
		t.Error("choices should wrap around")
	}

	form.SetValue(0, "YES")
	if !form.Bool(0) {
		t.Error("SetValue should match options case-insensitively")
	}
}

func TestListBuilderModel_Authoring(t *testing.T) {
	m := NewListBuilderModel(nil)
	m.Focus()
	update := func(msg tea.Msg) { m.Update(msg) }

	typeText(update, "Design")
	update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(update, "Build")
	update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(update, "Backend")

	got := m.Items()
	want := []domain.ListItem{
		{Text: "Design", Level: 0},
		{Text: "Build", Level: 0},
		{Text: "Backend", Level: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("items = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// removing the last entry keeps one empty entry to type into
	m = NewListBuilderModel(nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if len(m.Items()) != 0 || m.builder.Len() != 1 {
		t.Errorf("after removing the only entry: %d items, %d entries", len(m.Items()), m.builder.Len())
	}
}

func TestBlockForm_BuildsBlocks(t *testing.T) {
	form := NewBlockForm(domain.KindHeading, nil)
	typeText(func(msg tea.Msg) { form.Update(msg) }, "Overview")
	h, ok := form.Block().(domain.Heading)
	if !ok || h.Text != "Overview" || h.Level != 2 {
		t.Errorf("heading = %+v, want level 2 Overview", form.Block())
	}

	form = NewBlockForm(domain.KindText, domain.Text{Text: "Hello", Bold: true, FontSize: domain.FontLarge})
	txt := form.Block().(domain.Text)
	if txt.Text != "Hello" || !txt.Bold || txt.Italic || txt.FontSize != domain.FontLarge {
		t.Errorf("text block = %+v", txt)
	}

	form = NewBlockForm(domain.KindList, domain.List{Ordered: true, Items: []domain.ListItem{{Text: "one"}}})
	list := form.Block().(domain.List)
	if !list.Ordered || len(list.Items) != 1 || list.Items[0].Text != "one" {
		t.Errorf("list block = %+v", list)
	}

	form = NewBlockForm(domain.KindVideo, nil)
	if v := form.Block().(domain.Video); v.Platform != domain.PlatformYouTube {
		t.Errorf("video platform default = %q, want youtube", v.Platform)
	}
}

func TestBrowser_TreeAndNavigation(t *testing.T) {
	ws := application.NewWorkspace(domain.SamplePortfolio())
	m := NewBrowserModel(ws)
	m.Update(m.loadTree())

	view := m.View()
	for _, want := range []string{"web-portfolio", "task-manager", "fitness-tracker"} {
		if !contains(view, want) {
			t.Errorf("browser view missing %q", want)
		}
	}

	m.Update(runes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on a project should switch views")
	}
	msg, ok := cmd().(SwitchToProjectMsg)
	if !ok || msg.ProjectID != "web-portfolio" {
		t.Errorf("enter produced %#v, want SwitchToProjectMsg for web-portfolio", msg)
	}

	_, cmd = m.Update(runes("n"))
	if msg, ok := cmd().(SwitchToProjectMsg); !ok || msg.ProjectID != "" || msg.CategoryKey != "web" {
		t.Errorf("n produced %#v, want a new project in web", msg)
	}
}

func TestBrowser_DeleteProjectAsksFirst(t *testing.T) {
	ws := application.NewWorkspace(domain.SamplePortfolio())
	m := NewBrowserModel(ws)
	m.Update(m.loadTree())
	m.SelectProject("task-manager")

	_, cmd := m.Update(runes("d"))
	confirm, ok := cmd().(ConfirmMsg)
	if !ok {
		t.Fatalf("delete produced %T, want ConfirmMsg", cmd())
	}
	if doc := ws.Snapshot(); len(doc.AllProjects()) != 3 {
		t.Fatal("nothing should be deleted before confirming")
	}

	if _, ok := confirm.OnConfirm().(successMsg); !ok {
		t.Fatal("confirmed delete should succeed")
	}
	if _, ok := ws.Snapshot().ProjectByID("task-manager"); ok {
		t.Error("task-manager should be gone")
	}
}

func TestSectionsModel_AddAndRemove(t *testing.T) {
	doc := domain.SamplePortfolio()
	d, err := draft.Open(doc, "fitness-tracker")
	if err != nil {
		t.Fatal(err)
	}
	m := NewSectionsModel()
	m.SetSize(120, 40)
	m.SetDraft(d)
	before := d.Sections.Len()
	update := func(msg tea.Msg) { m.Update(msg) }

	update(runes("a"))
	update(tea.KeyMsg{Type: tea.KeyEnter}) // heading is the first kind
	typeText(update, "Roadmap")
	update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if d.Sections.Len() != before+1 {
		t.Fatalf("sections = %d, want %d", d.Sections.Len(), before+1)
	}
	if !contains(m.PreviewHTML(), "Roadmap") {
		t.Errorf("preview should show the new heading, got %q", m.PreviewHTML())
	}

	_, cmd := m.Update(runes("d"))
	confirm, ok := cmd().(ConfirmMsg)
	if !ok {
		t.Fatal("delete should ask for confirmation")
	}
	if d.Sections.Len() != before+1 {
		t.Fatal("nothing should be removed before confirming")
	}
	update(confirm.OnConfirm())
	if d.Sections.Len() != before {
		t.Errorf("sections after delete = %d, want %d", d.Sections.Len(), before)
	}
	if contains(m.PreviewHTML(), "Roadmap") {
		t.Error("preview should drop the removed heading")
	}
}

func TestSectionsModel_Reorder(t *testing.T) {
	doc := domain.SamplePortfolio()
	d, err := draft.Open(doc, "fitness-tracker")
	if err != nil {
		t.Fatal(err)
	}
	m := NewSectionsModel()
	m.SetDraft(d)
	first := d.Sections.Sections()[0].ID

	m.Update(runes("J"))
	if got := d.Sections.Sections()[1].ID; got != first {
		t.Error("J should move the selected section down")
	}
	m.Update(runes("K"))
	if got := d.Sections.Sections()[0].ID; got != first {
		t.Error("K should move it back up")
	}
}

func TestTransfer_ImportFromClipboard(t *testing.T) {
	ws := application.NewWorkspace(domain.NewPortfolio())
	m := NewTransferModel(ws)
	m.clip.read = func() (string, error) {
		return `const portfolioData = {personal: {name: 'Ada'}, projectCategories: {}, timeline: []};`, nil
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // first action
	msg := cmd()
	if _, ok := msg.(successMsg); !ok {
		t.Fatalf("import produced %#v", msg)
	}
	doc, _ := ws.Load(context.Background())
	if doc.Personal.Name != "Ada" {
		t.Errorf("personal name = %q, want Ada", doc.Personal.Name)
	}
}
