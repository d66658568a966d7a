package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/domain"
)

func ids(hs []domain.Hotel) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestSearch_FiltersCompose(t *testing.T) {
	h := newHarness(t, testCatalog(true))
	ctx := context.Background()

	cases := []struct {
		name string
		q    domain.HotelsQuery
		want []string
	}{
		{"all by rating", domain.HotelsQuery{}, []string{"h2", "h1", "h3"}},
		{"rating and all amenities", domain.HotelsQuery{MinRating: ptr(4.0), Amenities: []string{"wifi", "pool"}}, []string{"h1"}},
		{"any category", domain.HotelsQuery{Categories: []string{"luxury", "resort"}}, []string{"h2", "h1"}},
		{"amenities and categories ignore case", domain.HotelsQuery{Amenities: []string{"WiFi", "POOL"}, Categories: []string{"LUXURY"}}, []string{"h1"}},
		{"location is case-insensitive", domain.HotelsQuery{Location: "LUANDA"}, []string{"h1"}},
		{"location substring", domain.HotelsQuery{Location: "lu"}, []string{"h2", "h1", "h3"}},
		{"location matches hotel name", domain.HotelsQuery{Location: "blue bay"}, []string{"h2"}},
		{"price range inclusive", domain.HotelsQuery{MinPrice: ptr(int64(90000)), MaxPrice: ptr(int64(150000))}, []string{"h2", "h3"}},
		{"guest capacity", domain.HotelsQuery{Guests: 3}, []string{"h1"}},
		{"price ascending", domain.HotelsQuery{Sort: domain.SortPrice}, []string{"h3", "h2", "h1"}},
		{"distance ascending", domain.HotelsQuery{Sort: domain.SortDistance}, []string{"h2", "h1", "h3"}},
		{"no match", domain.HotelsQuery{Amenities: []string{"spa"}}, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, err := h.Catalog.Search(ctx, c.q)
			require.NoError(t, err)
			assert.Equal(t, c.want, ids(page.Items))
			assert.Equal(t, len(c.want), page.Pagination.Total)
		})
	}
}

func TestSearch_Pagination(t *testing.T) {
	h := newHarness(t, testCatalog(true))
	ctx := context.Background()

	page, err := h.Catalog.Search(ctx, domain.HotelsQuery{Page: domain.PageQuery{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"h3"}, ids(page.Items))
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	page, err = h.Catalog.Search(ctx, domain.HotelsQuery{Page: domain.PageQuery{Page: 7, Limit: 2}})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Pagination.Total)

	_, err = h.Catalog.Search(ctx, domain.HotelsQuery{Sort: "stars"})
	requireCode(t, err, domain.CodeValidation)
}

func TestFeaturedAndPopular(t *testing.T) {
	h := newHarness(t, testCatalog(true))
	ctx := context.Background()

	assert.Equal(t, []string{"h2", "h1"}, ids(h.Catalog.Featured(ctx, 2)))
	assert.Equal(t, []string{"h2"}, ids(h.Catalog.Popular(ctx, 10)))
}

func TestGetByID_NotFound(t *testing.T) {
	h := newHarness(t, testCatalog(true))
	_, err := h.Catalog.GetByID(context.Background(), "nope")
	requireCode(t, err, domain.CodeNotFound)
}

func TestCheckAvailability(t *testing.T) {
	h := newHarness(t, testCatalog(true))
	ctx := context.Background()

	a, err := h.Catalog.CheckAvailability(ctx, "h1", "2026-07-01", "2026-07-03", 3)
	require.NoError(t, err)
	require.Len(t, a.Rooms, 2)
	assert.False(t, a.Rooms[0].Available)
	assert.True(t, a.Rooms[1].Available)

	_, err = h.Catalog.CheckAvailability(ctx, "nope", "2026-07-01", "2026-07-03", 1)
	requireCode(t, err, domain.CodeNotFound)
	_, err = h.Catalog.CheckAvailability(ctx, "h1", "", "2026-07-03", 1)
	requireCode(t, err, domain.CodeValidation)
	_, err = h.Catalog.CheckAvailability(ctx, "h1", "2026-07-01", "2026-07-03", 0)
	requireCode(t, err, domain.CodeValidation)
}

func locationCatalog(counts map[string]int, order []string) domain.Catalog {
	var c domain.Catalog
	for _, loc := range order {
		for i := 0; i < counts[loc]; i++ {
			c.Hotels = append(c.Hotels, domain.Hotel{
				ID:       fmt.Sprintf("%s-%d", loc, i),
				Name:     fmt.Sprintf("Hotel %d", i),
				Location: loc,
				Rooms:    []domain.Room{{ID: fmt.Sprintf("%s-%d-r", loc, i), Price: 1, Capacity: 1}},
			})
		}
	}
	return c
}

func TestSuggest_PrefixBeatsCount(t *testing.T) {
	order := []string{"Blue Bay", "Luanda", "Lubango"}
	h := newHarness(t, locationCatalog(map[string]int{"Blue Bay": 30, "Luanda": 12, "Lubango": 1}, order))

	got := h.Locations.Suggest(context.Background(), "lu")
	require.Len(t, got, 3)
	assert.Equal(t, "Luanda", got[0].Name)
	assert.Equal(t, 12, got[0].HotelCount)
	assert.Equal(t, "Lubango", got[1].Name)
	assert.Equal(t, "Blue Bay", got[2].Name, "mid-string match comes after every prefix match")
}

func TestSuggest_EmptyQueryTopEightByCount(t *testing.T) {
	counts := map[string]int{}
	var order []string
	for i := 0; i < 10; i++ {
		loc := fmt.Sprintf("City%d", i)
		order = append(order, loc)
		counts[loc] = 1
	}
	counts["City9"] = 4
	h := newHarness(t, locationCatalog(counts, order))

	got := h.Locations.Suggest(context.Background(), "")
	require.Len(t, got, 8)
	assert.Equal(t, "City9", got[0].Name)
	assert.Equal(t, "City0", got[1].Name, "ties keep first-seen order")
	assert.Equal(t, "City6", got[7].Name)
}

func TestSuggest_QueryCapsAtSix(t *testing.T) {
	counts := map[string]int{}
	var order []string
	for i := 0; i < 9; i++ {
		loc := fmt.Sprintf("Porto %d", i)
		order = append(order, loc)
		counts[loc] = 1
	}
	h := newHarness(t, locationCatalog(counts, order))
	assert.Len(t, h.Locations.Suggest(context.Background(), "porto"), 6)
}
