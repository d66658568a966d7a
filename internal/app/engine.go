package app

import (
	"context"
	"time"

	"hotel_booking/internal/domain"
)

// Deps is everything the engine needs, built once at process start.
type Deps struct {
	Users         domain.UserRepository
	Sessions      domain.SessionRepository
	Hotels        domain.HotelRepository
	Bookings      domain.BookingRepository
	Reviews       domain.ReviewRepository
	Favorites     domain.FavoriteRepository
	Notifications domain.NotificationRepository
	Deals         domain.DealRepository

	Hasher    domain.PasswordHasher
	Locker    domain.Locker
	Cache     domain.Cache     // optional
	Publisher domain.Publisher // optional

	Pricing    PricingPolicy
	SessionTTL time.Duration
	ResetTTL   time.Duration
	CacheTTL   time.Duration
	Now        func() time.Time
}

type Engine struct {
	Sessions      *SessionService
	Catalog       *CatalogService
	Locations     *LocationSuggester
	Bookings      *BookingService
	Reviews       *ReviewService
	Favorites     *FavoritesService
	Notifications *NotificationService
	Deals         *DealsService
}

func New(d Deps) *Engine {
	now := d.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if d.SessionTTL == 0 {
		d.SessionTTL = 24 * time.Hour
	}
	if d.ResetTTL == 0 {
		d.ResetTTL = time.Hour
	}

	sessions := NewSessionService(d.Users, d.Sessions, d.Hasher, d.SessionTTL, d.ResetTTL, now)
	catalog := NewCatalogService(d.Hotels, d.Cache, d.CacheTTL, d.Locker)
	notify := NewNotificationService(d.Notifications, d.Publisher, now)
	bookings := NewBookingService(d.Bookings, catalog, notify, d.Pricing, now)

	return &Engine{
		Sessions:      sessions,
		Catalog:       catalog,
		Locations:     NewLocationSuggester(catalog),
		Bookings:      bookings,
		Reviews:       NewReviewService(d.Reviews, catalog, bookings, notify, sessions, d.Locker, now),
		Favorites:     NewFavoritesService(d.Favorites, catalog, now),
		Notifications: notify,
		Deals:         NewDealsService(d.Deals, now),
	}
}

// Seed loads the catalog and derives every hotel aggregate from the seed reviews.
func (e *Engine) Seed(ctx context.Context, c domain.Catalog) error {
	e.Catalog.Load(c.Hotels)
	return e.Reviews.Import(ctx, c.Reviews)
}
