package commands

import (
	"context"
	"sort"
	"strings"

	"folio/internal/ports"
)

// SearchResult is a project matching a search query
type SearchResult struct {
	ProjectID   string
	Title       string
	CategoryKey string
	MatchedText string
	Score       int
}

// SearchCommand searches projects with fuzzy matching
type SearchCommand struct {
	repo  ports.PortfolioRepository
	Query string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(repo ports.PortfolioRepository, query string) *SearchCommand {
	return &SearchCommand{
		repo:  repo,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	doc, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []SearchResult
	for _, cat := range doc.Categories {
		for _, p := range cat.Projects {
			fields := []string{p.ID, p.Title, p.Subtitle, strings.Join(p.TechStack, " ")}
			candidates = append(candidates, SearchResult{
				ProjectID:   p.ID,
				Title:       p.Title,
				CategoryKey: cat.Key,
				MatchedText: bestField(fields, c.Query),
			})
		}
	}

	return FuzzySort(candidates, c.Query), nil
}

func bestField(fields []string, query string) string {
	best, bestScore := "", 0
	for _, f := range fields {
		if s := FuzzyScore(f, query); s > bestScore {
			best, bestScore = f, s
		}
	}
	return best
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '-' || target[i-1] == '_') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores candidates against the query, drops non-matches and
// sorts by score descending
func FuzzySort(candidates []SearchResult, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(candidates))

	for _, r := range candidates {
		best := max(FuzzyScore(r.ProjectID, query), FuzzyScore(r.Title, query), FuzzyScore(r.MatchedText, query))
		if best > 0 {
			r.Score = best
			scored = append(scored, r)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
