package app

import (
	"context"
	"sort"
	"strings"

	"hotel_booking/internal/domain"
)

const (
	topLocations     = 8
	maxLocationMatch = 6
)

type LocationSuggester struct {
	catalog *CatalogService
}

func NewLocationSuggester(c *CatalogService) *LocationSuggester { return &LocationSuggester{catalog: c} }

// Suggest ranks locations by hotel count. With a query, prefix matches always come before
// mid-string matches, whatever their counts.
func (l *LocationSuggester) Suggest(ctx context.Context, query string) []domain.LocationSuggestion {
	var order []string
	counts := map[string]int{}
	for _, h := range l.catalog.All(ctx) {
		if _, seen := counts[h.Location]; !seen {
			order = append(order, h.Location)
		}
		counts[h.Location]++
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.LocationSuggestion, 0, len(order))
	for _, name := range order {
		if q == "" || strings.Contains(strings.ToLower(name), q) {
			out = append(out, domain.LocationSuggestion{Name: name, HotelCount: counts[name]})
		}
	}

	limit := topLocations
	if q != "" {
		limit = maxLocationMatch
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q != "" {
			pi := strings.HasPrefix(strings.ToLower(out[i].Name), q)
			pj := strings.HasPrefix(strings.ToLower(out[j].Name), q)
			if pi != pj {
				return pi
			}
		}
		return out[i].HotelCount > out[j].HotelCount
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
