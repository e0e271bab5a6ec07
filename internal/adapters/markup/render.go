// Package markup renders content sections into an HTML node tree
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"folio/internal/domain"
)

// EmptyPreview is shown when a project has no sections
const EmptyPreview = "Add sections to see preview..."

// Render converts sections into sibling nodes in sequence order
func Render(sections []domain.Section) []*html.Node {
	nodes := make([]*html.Node, 0, len(sections))
	for _, s := range sections {
		nodes = append(nodes, RenderBlock(s.Block))
	}
	return nodes
}

// RenderBlock converts one block into a node
func RenderBlock(b domain.Block) *html.Node {
	return domain.Match[*html.Node](b, renderer{})
}

// RenderHTML serializes the rendered sections
func RenderHTML(sections []domain.Section) (string, error) {
	var sb strings.Builder
	for _, n := range Render(sections) {
		if err := html.Render(&sb, n); err != nil {
			return "", fmt.Errorf("failed to render section: %w", err)
		}
	}
	return sb.String(), nil
}

// Preview renders sections for the live preview, or the empty-state
// paragraph when there are none
func Preview(sections []domain.Section) (string, error) {
	if len(sections) == 0 {
		p := element(atom.P, "class", "empty-state")
		p.AppendChild(text(EmptyPreview))
		var sb strings.Builder
		if err := html.Render(&sb, p); err != nil {
			return "", err
		}
		return sb.String(), nil
	}
	return RenderHTML(sections)
}

type renderer struct{}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (renderer) Heading(h domain.Heading) *html.Node {
	level := min(max(h.Level, 1), 6)
	n := element(headingAtoms[level-1])
	n.AppendChild(text(h.Text))
	return n
}

func (renderer) Text(t domain.Text) *html.Node {
	n := element(atom.P, "class", TextClass(t))
	for _, c := range LinkifyNodes(t.Text) {
		n.AppendChild(c)
	}
	return n
}

func (renderer) List(l domain.List) *html.Node {
	return NestedList(l.Items, l.Ordered)
}

func (renderer) Code(c domain.Code) *html.Node {
	pre := element(atom.Pre)
	code := element(atom.Code, "class", "language-"+c.Language)
	code.AppendChild(text(c.Text))
	pre.AppendChild(code)
	return pre
}

func (renderer) Image(i domain.Image) *html.Node {
	return element(atom.Img, "src", i.Src, "alt", i.Alt)
}

func (renderer) Video(v domain.Video) *html.Node {
	if v.Platform == domain.PlatformYouTube {
		div := element(atom.Div, "class", "video-container")
		div.AppendChild(element(atom.Iframe,
			"src", "https://www.youtube.com/embed/"+ExtractYouTubeID(v.Src),
			"frameborder", "0",
			"allowfullscreen", "",
		))
		return div
	}
	video := element(atom.Video, "controls", "")
	video.AppendChild(element(atom.Source, "src", v.Src))
	return video
}

// TextClass builds the paragraph class list of a text block
func TextClass(t domain.Text) string {
	class := "font-size-" + string(domain.ParseFontSize(string(t.FontSize)))
	if t.Bold {
		class += " text-bold"
	}
	if t.Italic {
		class += " text-italic"
	}
	return class
}

// element creates an element node with attributes given as key/value pairs
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
