package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"folio/internal/domain"
)

func renderString(t *testing.T, blocks ...domain.Block) string {
	t.Helper()
	var sections []domain.Section
	for _, b := range blocks {
		sections = append(sections, domain.NewSection(b))
	}
	out, err := RenderHTML(sections)
	require.NoError(t, err)
	return out
}

func TestRender_HeadingThenNestedList(t *testing.T) {
	out := renderString(t,
		domain.Heading{Level: 2, Text: "Intro"},
		domain.List{Items: []domain.ListItem{
			{Text: "a", Level: 0},
			{Text: "b", Level: 1},
			{Text: "c", Level: 0},
		}},
	)
	assert.Equal(t, "<h2>Intro</h2><ul><li>a<ul><li>b</li></ul></li><li>c</li></ul>", out)
}

func TestRender_Blocks(t *testing.T) {
	tests := []struct {
		name  string
		block domain.Block
		want  string
	}{
		{
			name:  "heading escapes text",
			block: domain.Heading{Level: 3, Text: "a < b"},
			want:  "<h3>a &lt; b</h3>",
		},
		{
			name:  "heading level clamped",
			block: domain.Heading{Level: 9, Text: "x"},
			want:  "<h6>x</h6>",
		},
		{
			name:  "text classes",
			block: domain.Text{Text: "hi", Bold: true, Italic: true, FontSize: domain.FontLarge},
			want:  `<p class="font-size-large text-bold text-italic">hi</p>`,
		},
		{
			name:  "ordered flat list",
			block: domain.List{Ordered: true, Items: []domain.ListItem{{Text: "one"}, {Text: "two"}}},
			want:  "<ol><li>one</li><li>two</li></ol>",
		},
		{
			name:  "code keeps text verbatim",
			block: domain.Code{Language: "go", Text: "if a < b {\n}"},
			want:  "<pre><code class=\"language-go\">if a &lt; b {\n}</code></pre>",
		},
		{
			name:  "image",
			block: domain.Image{Src: "a.png", Alt: `say "hi"`},
			want:  `<img src="a.png" alt="say &#34;hi&#34;"/>`,
		},
		{
			name:  "youtube embed",
			block: domain.Video{Platform: domain.PlatformYouTube, Src: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10"},
			want:  `<div class="video-container"><iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ" frameborder="0" allowfullscreen=""></iframe></div>`,
		},
		{
			name:  "local video",
			block: domain.Video{Platform: domain.PlatformLocal, Src: "clip.mp4"},
			want:  `<video controls=""><source src="clip.mp4"/></video>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderString(t, tt.block))
		})
	}
}

func TestPreview_Empty(t *testing.T) {
	out, err := Preview(nil)
	require.NoError(t, err)
	assert.Equal(t, `<p class="empty-state">Add sections to see preview...</p>`, out)
}

func TestLinkify(t *testing.T) {
	assert.Equal(t,
		`<a href="b" target="_blank" rel="noopener noreferrer">a</a>`,
		Linkify("[a](b)"))
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", Linkify("<script>alert(1)</script>"))
	assert.Equal(t, "", Linkify(""))
}

func TestLinkifyNodes_AnchorAndNoScript(t *testing.T) {
	nodes := LinkifyNodes("see [docs](https://example.com/a?b=1&c=2) <script>x()</script>")

	var anchors, scripts int
	var href string
	for _, n := range nodes {
		walk(n, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			switch n.DataAtom {
			case atom.A:
				anchors++
				href = attr(n, "href")
			case atom.Script:
				scripts++
			}
		})
	}

	assert.Equal(t, 1, anchors)
	assert.Equal(t, "https://example.com/a?b=1&c=2", href)
	assert.Zero(t, scripts, "script must never become an element")
}

func TestLinkifyNodes_QuoteInURLStaysInAttribute(t *testing.T) {
	out := renderString(t, domain.Text{Text: `[x](a" onclick="evil)`})
	assert.NotContains(t, out, ` onclick="evil"`)
	assert.True(t, strings.HasPrefix(out, `<p class="font-size-medium"><a href="a&#34; onclick=&#34;evil"`), out)
}

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/v/dQw4w9WgXcQ?fs=1", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://example.com/video", "https://example.com/video"},
		{"https://youtu.be/short", "https://youtu.be/short"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractYouTubeID(tt.url))
		})
	}
}

// flatten walks a rendered list back into level-tagged items
func flatten(list *html.Node, level int) []domain.ListItem {
	var items []domain.ListItem
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.DataAtom != atom.Li {
			continue
		}
		var text string
		var sub *html.Node
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				text += c.Data
			case c.DataAtom == atom.Ul || c.DataAtom == atom.Ol:
				sub = c
			}
		}
		items = append(items, domain.ListItem{Text: text, Level: level})
		if sub != nil {
			items = append(items, flatten(sub, level+1)...)
		}
	}
	return items
}

func TestNestedList_RoundTrip(t *testing.T) {
	tests := [][]domain.ListItem{
		{{Text: "a"}},
		{{Text: "a"}, {Text: "b"}, {Text: "c"}},
		{{Text: "a"}, {Text: "b", Level: 1}, {Text: "c", Level: 2}, {Text: "d", Level: 0}},
		{{Text: "a"}, {Text: "b", Level: 1}, {Text: "c", Level: 2}, {Text: "d", Level: 3}, {Text: "e", Level: 1}},
	}

	for _, items := range tests {
		for _, ordered := range []bool{false, true} {
			b := domain.NewListBuilder()
			var ids []string
			for _, item := range items {
				parent := ""
				if item.Level > 0 {
					for j := len(ids) - 1; j >= 0; j-- {
						if e, _ := b.Entry(ids[j]); e.Level == item.Level-1 {
							parent = e.ID
							break
						}
					}
				}
				id, err := b.AddItem(parent, item.Level)
				require.NoError(t, err)
				require.NoError(t, b.SetText(id, item.Text))
				ids = append(ids, id)
			}

			collected := b.Collect()
			got := flatten(NestedList(collected, ordered), 0)
			assert.Equal(t, collected, got)
		}
	}
}

func TestNestedList_ClampsJumps(t *testing.T) {
	list := NestedList([]domain.ListItem{{Text: "a"}, {Text: "b", Level: 3}}, false)
	assert.Equal(t, []domain.ListItem{{Text: "a"}, {Text: "b", Level: 1}}, flatten(list, 0))
}

func TestSummary(t *testing.T) {
	long := strings.Repeat("x", 120)
	assert.Equal(t, "H2 Intro", Summary(domain.Heading{Level: 2, Text: "Intro"}))
	assert.Equal(t, strings.Repeat("x", 100)+"...", Summary(domain.Text{Text: long}))
	assert.Equal(t, "• a, b, c (+1)", Summary(domain.List{Items: []domain.ListItem{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}}}))
	assert.Equal(t, "🖼️ Image: logo", Summary(domain.Image{Src: "a.png", Alt: "logo"}))
	assert.Equal(t, "🎬 Video (youtube)", Summary(domain.Video{Platform: domain.PlatformYouTube}))
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
