package domain

import "fmt"

// ListItem is one stored list entry. Level is the nesting depth, 0 at the top.
type ListItem struct {
	Text  string
	Level int
}

// ValidateLevels checks that the first item sits at level 0 and that every
// item descends at most one level below its predecessor. Ascending may skip
// any number of levels.
func ValidateLevels(items []ListItem) error {
	prev := -1
	for i, item := range items {
		if item.Level < 0 {
			return &ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("list item %d has negative level %d", i+1, item.Level),
			}
		}
		if item.Level > prev+1 {
			return &ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("list item %d (%q) jumps to level %d; at most level %d is allowed here", i+1, item.Text, item.Level, prev+1),
			}
		}
		prev = item.Level
	}
	return nil
}

// ClampLevels returns a copy of items where every level is limited to one
// deeper than the previous item (and never below zero)
func ClampLevels(items []ListItem) []ListItem {
	out := make([]ListItem, len(items))
	prev := -1
	for i, item := range items {
		level := item.Level
		if level < 0 {
			level = 0
		}
		if level > prev+1 {
			level = prev + 1
		}
		out[i] = ListItem{Text: item.Text, Level: level}
		prev = level
	}
	return out
}

// IsNested reports whether any item sits below the top level
func IsNested(items []ListItem) bool {
	for _, item := range items {
		if item.Level > 0 {
			return true
		}
	}
	return false
}
