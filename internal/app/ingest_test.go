package app_test

import (
	"context"
	"errors"
	"testing"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// ---- fakes ----

type fakeFeed struct {
	hotels  map[string]domain.Hotel
	reviews map[string][]domain.Review
	err     map[string]error
}

func (f *fakeFeed) HotelIDs(ctx context.Context) ([]string, error) {
	var out []string
	for id := range f.hotels {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeFeed) Hotel(ctx context.Context, id string) (domain.Hotel, []domain.Review, error) {
	if err := f.err[id]; err != nil {
		return domain.Hotel{}, nil, err
	}
	return f.hotels[id], f.reviews[id], nil
}

type fakeStore struct {
	hotels  []domain.Hotel
	reviews []domain.Review
	misses  map[string]int
}

func (s *fakeStore) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	s.hotels = append(s.hotels, h)
	return nil
}
func (s *fakeStore) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	s.reviews = append(s.reviews, rs...)
	return nil
}
func (s *fakeStore) LogMiss(ctx context.Context, id string, status int, reason string) error {
	if s.misses == nil {
		s.misses = map[string]int{}
	}
	s.misses[id] = status
	return nil
}

type fakeCache struct {
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	return nil
}

// ---- tests ----

func TestIngestHotel_StoresHotelThenReviews(t *testing.T) {
	feed := &fakeFeed{
		hotels: map[string]domain.Hotel{"h1": {ID: "h1", Name: "Hotel Presidente", Rooms: []domain.Room{{ID: "r1", Price: 1, Capacity: 2}}}},
		reviews: map[string][]domain.Review{"h1": {
			{ID: "rv1", Rating: 5},
			{ID: "rv2", Rating: 9}, // out of range, skipped
		}},
	}
	store := &fakeStore{}
	cache := &fakeCache{}
	ing := app.NewIngestionService(feed, store, cache)

	if err := ing.IngestHotel(context.Background(), "h1"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(store.hotels) != 1 || store.hotels[0].ID != "h1" {
		t.Fatalf("unexpected hotels: %+v", store.hotels)
	}
	if len(store.reviews) != 1 || store.reviews[0].HotelID != "h1" {
		t.Fatalf("reviews must be bound to the hotel: %+v", store.reviews)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != "hotel:h1" {
		t.Fatalf("expected detail cache eviction, got %v", cache.deleted)
	}
}

func TestIngestHotel_MissesAreRecorded(t *testing.T) {
	feed := &fakeFeed{err: map[string]error{
		"gone":   domain.Errorf(domain.CodeNotFound, "feed: not found"),
		"closed": domain.Errorf(domain.CodeUnauthorized, "feed: unauthorized"),
		"broken": errors.New("remote 502"),
	}}
	store := &fakeStore{}
	ing := app.NewIngestionService(feed, store, nil)
	ctx := context.Background()

	if err := ing.IngestHotel(ctx, "gone"); err != nil {
		t.Fatalf("404 is not an error: %v", err)
	}
	if err := ing.IngestHotel(ctx, "closed"); err != nil {
		t.Fatalf("403 is not an error: %v", err)
	}
	if err := ing.IngestHotel(ctx, "broken"); err == nil {
		t.Fatalf("unexpected errors must surface")
	}
	if store.misses["gone"] != 404 || store.misses["closed"] != 403 {
		t.Fatalf("unexpected misses: %v", store.misses)
	}
	if len(store.hotels) != 0 {
		t.Fatalf("nothing should be stored: %+v", store.hotels)
	}
}

func TestStoreHotel_RejectsInvalidRooms(t *testing.T) {
	store := &fakeStore{}
	ing := app.NewIngestionService(nil, store, nil)
	err := ing.StoreHotel(context.Background(), domain.Hotel{ID: "h1", Name: "X", Rooms: []domain.Room{{ID: "r1", Capacity: 0}}}, nil)
	if domain.CodeOf(err) != domain.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(store.hotels) != 0 {
		t.Fatalf("invalid hotel must not be stored")
	}
	if err := ing.IngestHotel(context.Background(), "h1"); err == nil {
		t.Fatalf("ingest without a feed must fail")
	}
}

func TestGroupReviews(t *testing.T) {
	g := app.GroupReviews([]domain.Review{{ID: "a", HotelID: "h1"}, {ID: "b", HotelID: "h2"}, {ID: "c", HotelID: "h1"}})
	if len(g["h1"]) != 2 || len(g["h2"]) != 1 {
		t.Fatalf("unexpected grouping: %+v", g)
	}
}
