// Package clipfilter projects a clip collection through filter and sort
// criteria and derives summary statistics.
//
// Project is a pure transformation: it never mutates its input and the same
// collection plus criteria always yields the same projection. All sorts are
// stable so equal keys keep service ordering.
package clipfilter

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"viralclip/internal/clip"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// Sort keys understood by Project. An unrecognized key preserves input order.
const (
	SortByScore    = "score"
	SortByDuration = "duration"
	SortByCategory = "category"
)

// Criteria captures the user's current filter and sort selection. Stateless;
// rebuilt from flags on every invocation.
type Criteria struct {
	Category string
	MinScore int
	SortKey  string
}

// DefaultCriteria matches everything and sorts by score.
func DefaultCriteria() Criteria {
	return Criteria{Category: CategoryAll, MinScore: 0, SortKey: SortByScore}
}

// Stats summarizes a projected collection.
type Stats struct {
	Count       int
	AvgScore    string
	TopCategory string
}

// Project filters, sorts, and summarizes clips according to criteria.
func Project(clips []clip.Clip, criteria Criteria) ([]clip.Clip, Stats) {
	filtered := make([]clip.Clip, 0, len(clips))
	category := strings.TrimSpace(criteria.Category)
	for _, c := range clips {
		if category != "" && category != CategoryAll && c.Category != category {
			continue
		}
		if c.ViralityScore < criteria.MinScore {
			continue
		}
		filtered = append(filtered, c)
	}

	switch criteria.SortKey {
	case SortByScore:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ViralityScore > filtered[j].ViralityScore
		})
	case SortByDuration:
		sort.SliceStable(filtered, func(i, j int) bool {
			return durationOrZero(filtered[i].Duration) < durationOrZero(filtered[j].Duration)
		})
	case SortByCategory:
		// collate.Collator mutates internal iterators during comparisons, so
		// each call gets its own instance; Project runs on concurrent RPC
		// goroutines.
		collator := collate.New(language.English)
		sort.SliceStable(filtered, func(i, j int) bool {
			return collator.CompareString(filtered[i].Category, filtered[j].Category) < 0
		})
	default:
		// Unrecognized keys leave the input order untouched.
	}

	return filtered, computeStats(filtered)
}

func durationOrZero(value string) int {
	seconds, err := clip.DurationSeconds(value)
	if err != nil {
		return 0
	}
	return seconds
}

func computeStats(clips []clip.Clip) Stats {
	if len(clips) == 0 {
		return Stats{Count: 0, AvgScore: "0.0", TopCategory: "None"}
	}

	total := 0
	categories := make([]string, len(clips))
	for i, c := range clips {
		total += c.ViralityScore
		categories[i] = c.Category
	}

	avg := float64(total) / float64(len(clips))
	return Stats{
		Count:       len(clips),
		AvgScore:    fmt.Sprintf("%.1f", avg),
		TopCategory: topCategory(categories),
	}
}

// topCategory reproduces the historical pairwise frequency comparison: walk
// left to right, keeping the incumbent whenever its total frequency is at
// least the challenger's. This is not a true mode for every distribution but
// existing consumers depend on its exact tie-break, so keep it as is.
func topCategory(categories []string) string {
	top := categories[0]
	for _, candidate := range categories[1:] {
		if frequency(categories, top) >= frequency(categories, candidate) {
			continue
		}
		top = candidate
	}
	return top
}

func frequency(values []string, target string) int {
	count := 0
	for _, v := range values {
		if v == target {
			count++
		}
	}
	return count
}
