package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(u User) error // ErrUserExists on a taken email
	ByID(id string) (User, bool)
	ByEmail(email string) (User, bool)
	UpdateSecret(id, hash string) error
}

type SessionRepository interface {
	Put(s Session)
	ByToken(token string) (Session, bool)
	ByRefresh(refresh string) (Session, bool)
	Delete(token string) bool
	DeleteForUser(userID string) int
	PutReset(t ResetToken)
	TakeReset(token string) (ResetToken, bool)
}

type HotelRepository interface {
	All() []Hotel
	ByID(id string) (Hotel, bool)
	Put(h Hotel)
	SetAggregate(id string, rating float64, reviewCount int) error
}

type BookingRepository interface {
	Insert(b Booking)
	ByID(id string) (Booking, bool)
	Update(id string, fn func(*Booking) error) (Booking, error)
	ForUser(userID string) []Booking
}

type ReviewRepository interface {
	Append(r Review)
	ByID(id string) (Review, bool)
	ForHotel(hotelID string) []Review
	IncrementHelpful(id string) (int, bool)
}

type FavoriteRepository interface {
	Add(f Favorite) bool // false if the pair exists
	Remove(userID, hotelID string) bool
	ForUser(userID string) []Favorite
}

type NotificationRepository interface {
	Insert(n Notification)
	ByID(id string) (Notification, bool)
	ForUser(userID string) []Notification
	MarkRead(id string) bool
	MarkAllRead(userID string) int
}

type DealRepository interface {
	Deals() []Deal
	Trending() []TrendingDestination
	LastMinute() []LastMinuteDeal
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Publisher fans domain events out to other processes.
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
	Close() error
}

type PasswordHasher interface {
	Hash(secret string) (string, error)
	Compare(secret, hash string) (bool, error)
}

// CatalogSource supplies the catalog a process boots with.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (Catalog, error)
}

// Catalog is the seed payload: hotels with their rooms and the reviews their aggregates derive from.
type Catalog struct {
	Hotels     []Hotel               `json:"hotels"`
	Reviews    []Review              `json:"reviews"`
	Deals      []Deal                `json:"deals"`
	Trending   []TrendingDestination `json:"trendingDestinations"`
	LastMinute []SeedLastMinute      `json:"lastMinuteDeals"`
}

// SeedLastMinute expresses expiry relative to boot time, since fixtures cannot carry absolute times.
type SeedLastMinute struct {
	LastMinuteDeal
	ExpiresInMinutes int `json:"expiresInMinutes"`
}

func (s SeedLastMinute) At(boot time.Time) LastMinuteDeal {
	d := s.LastMinuteDeal
	if s.ExpiresInMinutes != 0 {
		d.ExpiresAt = boot.Add(time.Duration(s.ExpiresInMinutes) * time.Minute)
	}
	return d
}

// Locker serializes read-modify-write sequences per entity key.
type Locker interface {
	Lock(key string) (unlock func())
}

// CatalogFeed is a partner content source the seeder pulls hotels from.
type CatalogFeed interface {
	HotelIDs(ctx context.Context) ([]string, error)
	Hotel(ctx context.Context, id string) (Hotel, []Review, error)
}

// CatalogStore persists the catalog between processes.
type CatalogStore interface {
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertReviews(ctx context.Context, rs []Review) error
	LogMiss(ctx context.Context, hotelID string, status int, reason string) error
}
