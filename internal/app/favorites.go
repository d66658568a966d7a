package app

import (
	"context"
	"time"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type FavoritesService struct {
	favorites domain.FavoriteRepository
	catalog   *CatalogService
	now       func() time.Time
}

func NewFavoritesService(r domain.FavoriteRepository, c *CatalogService, now func() time.Time) *FavoritesService {
	return &FavoritesService{favorites: r, catalog: c, now: now}
}

func (s *FavoritesService) Add(ctx context.Context, userID, hotelID string) (domain.FavoriteView, error) {
	h, err := s.catalog.GetByID(ctx, hotelID)
	if err != nil {
		return domain.FavoriteView{}, err
	}
	f := domain.Favorite{UserID: userID, HotelID: hotelID, AddedAt: s.now()}
	if !s.favorites.Add(f) {
		return domain.FavoriteView{}, domain.Errorf(domain.CodeAlreadyExists, "hotel %s is already a favorite", hotelID)
	}
	observability.ObserveDomain("favorite", "added")
	return domain.FavoriteView{HotelSummary: h.Summary(), AddedAt: f.AddedAt}, nil
}

func (s *FavoritesService) Remove(ctx context.Context, userID, hotelID string) error {
	if !s.favorites.Remove(userID, hotelID) {
		return domain.Errorf(domain.CodeNotFound, "hotel %s is not a favorite", hotelID)
	}
	observability.ObserveDomain("favorite", "removed")
	return nil
}

// List joins each favorite with the hotel as it is now. Hotels gone from the catalog are skipped.
func (s *FavoritesService) List(ctx context.Context, userID string) []domain.FavoriteView {
	favs := s.favorites.ForUser(userID)
	out := make([]domain.FavoriteView, 0, len(favs))
	for _, f := range favs {
		h, err := s.catalog.GetByID(ctx, f.HotelID)
		if err != nil {
			continue
		}
		out = append(out, domain.FavoriteView{HotelSummary: h.Summary(), AddedAt: f.AddedAt})
	}
	return out
}
