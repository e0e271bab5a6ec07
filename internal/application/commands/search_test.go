package commands

import (
	"context"
	"testing"

	"folio/internal/application"
	"folio/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Portfolio",
			query:     "Portfolio",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Portfolio Website",
			query:     "Portfolio",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "Personal Portfolio",
			query:     "Portfolio",
			wantScore: 100, // contains only
		},
		{
			name:      "no match",
			target:    "Portfolio",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Portfolio",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "REACT NATIVE",
			query:   "react",
			wantMin: 100,
		},
		{
			name:    "slug match",
			target:  "task-manager",
			query:   "manager",
			wantMin: 100,
		},
		{
			name:    "fuzzy across separators",
			target:  "fitness-tracker",
			query:   "ftr",
			wantMin: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	query := "tracker"

	exactScore := FuzzyScore("tracker", query)
	prefixScore := FuzzyScore("tracker app", query)
	containsScore := FuzzyScore("fitness tracker", query)
	fuzzyScore := FuzzyScore("t-r-a-c-k-e-r", query)

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestFuzzySort(t *testing.T) {
	candidates := []SearchResult{
		{ProjectID: "random", Title: "Random Name", MatchedText: "nothing"},
		{ProjectID: "fitness-tracker", Title: "Fitness Tracking App", MatchedText: "fitness-tracker"},
		{ProjectID: "cooking", Title: "Cooking", MatchedText: "recipes"},
		{ProjectID: "tracker", Title: "Tracker", MatchedText: "tracker"},
	}

	sorted := FuzzySort(candidates, "tracker")
	if len(sorted) != 2 {
		t.Fatalf("expected 2 results, got %+v", sorted)
	}
	if sorted[0].ProjectID != "tracker" {
		t.Errorf("prefix match should rank first, got %s", sorted[0].ProjectID)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestSearchCommand_MatchesTechStack(t *testing.T) {
	repo := application.NewWorkspace(domain.SamplePortfolio())

	results, err := NewSearchCommand(repo, "firebase").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 1 || results[0].ProjectID != "fitness-tracker" || results[0].CategoryKey != "mobile" {
		t.Errorf("unexpected results %+v", results)
	}

	if results, _ := NewSearchCommand(repo, "f").Execute(context.Background()); results != nil {
		t.Errorf("single-character queries should return nothing, got %+v", results)
	}
}
