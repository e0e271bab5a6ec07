package markup

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"folio/internal/domain"
)

// NestedList rebuilds the list tree from level-tagged items. Each step down
// opens a sub-list inside the previous item; stepping up closes as many
// lists as levels were left. Jumps of more than one level are clamped.
func NestedList(items []domain.ListItem, ordered bool) *html.Node {
	listAtom := atom.Ul
	if ordered {
		listAtom = atom.Ol
	}

	root := element(listAtom)
	lists := []*html.Node{root} // lists[level] is the open list at that depth
	var lastItem []*html.Node   // lastItem[level] is its most recent item

	for _, item := range domain.ClampLevels(items) {
		depth := len(lists) - 1
		switch {
		case item.Level > depth:
			sub := element(listAtom)
			lastItem[depth].AppendChild(sub)
			lists = append(lists, sub)
		case item.Level < depth:
			lists = lists[:item.Level+1]
		}

		li := element(atom.Li)
		li.AppendChild(text(item.Text))
		lists[item.Level].AppendChild(li)

		lastItem = append(lastItem[:item.Level], li)
	}
	return root
}
