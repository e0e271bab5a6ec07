package markup

import (
	"fmt"
	"strings"

	"folio/internal/domain"
)

// Summary returns a one-line description of a block for the section list
func Summary(b domain.Block) string {
	return domain.Match[string](b, summarizer{})
}

type summarizer struct{}

func (summarizer) Heading(h domain.Heading) string {
	return fmt.Sprintf("H%d %s", h.Level, h.Text)
}

func (summarizer) Text(t domain.Text) string {
	return truncate(t.Text, 100)
}

func (summarizer) List(l domain.List) string {
	marker := "•"
	if l.Ordered {
		marker = "1."
	}
	var shown []string
	for i, item := range l.Items {
		if i == 3 {
			break
		}
		shown = append(shown, item.Text)
	}
	s := marker + " " + strings.Join(shown, ", ")
	if len(l.Items) > 3 {
		s += fmt.Sprintf(" (+%d)", len(l.Items)-3)
	}
	return s
}

func (summarizer) Code(c domain.Code) string {
	return fmt.Sprintf("[%s] %s", c.Language, truncate(strings.ReplaceAll(c.Text, "\n", " "), 80))
}

func (summarizer) Image(i domain.Image) string {
	return "🖼️ Image: " + i.Alt
}

func (summarizer) Video(v domain.Video) string {
	return fmt.Sprintf("🎬 Video (%s)", v.Platform)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
