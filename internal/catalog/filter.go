package catalog

import (
	"sort"
	"strings"

	"github.com/kdimtricp/acholiflixx/internal/models"
)

type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortPopular      SortKey = "popular"
	SortAlphabetical SortKey = "alphabetical"
)

// filmCategories are the categories the legacy "films" key stands for.
var filmCategories = map[string]bool{
	"Drama":      true,
	"Historical": true,
	"Epic":       true,
}

// ParseSortKey maps a query value onto a SortKey. Unknown or empty values
// fall back to SortNewest, the browse default.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortPopular:
		return SortPopular
	case SortAlphabetical:
		return SortAlphabetical
	default:
		return SortNewest
	}
}

// MatchesCategory reports whether item belongs to the category key.
// An empty key matches everything.
func MatchesCategory(item models.ContentItem, key string) bool {
	if key == "" {
		return true
	}
	if item.Category != "" && strings.EqualFold(item.Category, key) {
		return true
	}
	return strings.EqualFold(key, "films") && filmCategories[item.Category]
}

// Filter returns the items matching key, preserving order.
func Filter(items []models.ContentItem, key string) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if MatchesCategory(item, key) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a sorted copy of items. All orderings are stable, so
// SortPopular keeps the catalog order.
func Sort(items []models.ContentItem, key SortKey) []models.ContentItem {
	out := make([]models.ContentItem, len(items))
	copy(out, items)

	switch key {
	case SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].YearValue() > out[j].YearValue()
		})
	}
	return out
}

// Apply filters by category and then sorts.
func Apply(items []models.ContentItem, category string, key SortKey) []models.ContentItem {
	return Sort(Filter(items, category), key)
}
