package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// IngestionService copies hotels from a feed or a fixture into the catalog store.
type IngestionService struct {
	feed  domain.CatalogFeed // nil when seeding from a file
	store domain.CatalogStore
	cache domain.Cache // optional
}

func NewIngestionService(f domain.CatalogFeed, s domain.CatalogStore, c domain.Cache) *IngestionService {
	return &IngestionService{feed: f, store: s, cache: c}
}

// IngestHotel pulls one hotel from the feed. Hotels the feed no longer serves are recorded
// as misses and evicted from the cache; that is not an error.
func (s *IngestionService) IngestHotel(ctx context.Context, id string) error {
	if s.feed == nil {
		return fmt.Errorf("no feed configured")
	}
	h, reviews, err := s.feed.Hotel(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			_ = s.store.LogMiss(ctx, id, 404, "not found")
			s.evict(ctx, id)
			return nil
		case errors.Is(err, domain.ErrUnauthorized):
			_ = s.store.LogMiss(ctx, id, 403, "inactive")
			s.evict(ctx, id)
			return nil
		}
		return err
	}
	if h.ID == "" {
		h.ID = id
	}
	return s.StoreHotel(ctx, h, reviews)
}

// StoreHotel upserts a hotel before its reviews, since reviews reference it.
func (s *IngestionService) StoreHotel(ctx context.Context, h domain.Hotel, reviews []domain.Review) error {
	if h.ID == "" || h.Name == "" {
		return domain.Errorf(domain.CodeValidation, "hotel id and name are required")
	}
	for _, r := range h.Rooms {
		if r.ID == "" || r.Capacity <= 0 || r.Price < 0 {
			return domain.Errorf(domain.CodeValidation, "hotel %s has an invalid room %q", h.ID, r.ID)
		}
	}
	if err := s.store.UpsertHotel(ctx, h); err != nil {
		return err
	}
	s.evict(ctx, h.ID)

	valid := reviews[:0:0]
	for _, rv := range reviews {
		if rv.ID == "" || rv.Rating < 1 || rv.Rating > 5 {
			log.Warn().Str("hotel_id", h.ID).Str("review_id", rv.ID).Msg("skipping invalid seed review")
			continue
		}
		rv.HotelID = h.ID
		valid = append(valid, rv)
	}
	if len(valid) > 0 {
		if err := s.store.UpsertReviews(ctx, valid); err != nil {
			return fmt.Errorf("upsert reviews failed for %s: %w", h.ID, err)
		}
	}
	return nil
}

// GroupReviews indexes fixture reviews by hotel for StoreHotel.
func GroupReviews(rs []domain.Review) map[string][]domain.Review {
	out := map[string][]domain.Review{}
	for _, r := range rs {
		out[r.HotelID] = append(out[r.HotelID], r)
	}
	return out
}

func (s *IngestionService) evict(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, hotelKey(id))
}
