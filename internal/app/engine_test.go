package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotel_booking/internal/adapters/security"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
)

// ---- harness ----

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type harness struct {
	*app.Engine
	clock *clock
	pub   *recordingPublisher
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}
func (p *recordingPublisher) Close() error { return nil }

var start = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newHarness(t *testing.T, c domain.Catalog) *harness {
	t.Helper()
	clk := &clock{t: start}
	pub := &recordingPublisher{}
	e := app.New(app.Deps{
		Users:         memory.NewUsers(),
		Sessions:      memory.NewSessions(),
		Hotels:        memory.NewHotels(),
		Bookings:      memory.NewBookings(),
		Reviews:       memory.NewReviews(),
		Favorites:     memory.NewFavorites(),
		Notifications: memory.NewNotifications(),
		Deals:         memory.NewDeals(c.Deals, c.Trending, nil),
		Hasher:        security.NewArgon2(security.TestParams),
		Locker:        memory.NewKeyLock(),
		Publisher:     pub,
		Pricing:       app.PricingPolicy{ServiceFee: 5000, TaxPercent: 10},
		Now:           clk.Now,
	})
	require.NoError(t, e.Seed(context.Background(), c))
	return &harness{Engine: e, clock: clk, pub: pub}
}

// testCatalog: h1 rated 4.5 (luxury, wifi+pool), h2 rated 5.0 (resort, wifi), h3 rated 3.0 (budget, wifi+pool).
func testCatalog(withReviews bool) domain.Catalog {
	c := domain.Catalog{Hotels: []domain.Hotel{
		{
			ID: "h1", Name: "Hotel Presidente", Location: "Luanda", BasePrice: 220000, Distance: "2.5 km",
			Amenities: []string{"wifi", "pool"}, Category: "luxury", Images: []string{"h1.jpg"},
			Rooms: []domain.Room{
				{ID: "h1-r1", Type: "Standard", Price: 220000, Capacity: 2},
				{ID: "h1-r2", Type: "Suite", Price: 400000, Capacity: 4},
			},
		},
		{
			ID: "h2", Name: "Blue Bay Resort", Location: "Mussulo", BasePrice: 150000, Distance: "0.5 km",
			Amenities: []string{"wifi"}, Category: "resort",
			Rooms: []domain.Room{{ID: "h2-r1", Type: "Bungalow", Price: 150000, Capacity: 2}},
		},
		{
			ID: "h3", Name: "Lubango Inn", Location: "Lubango", BasePrice: 90000, Distance: "10 km",
			Amenities: []string{"wifi", "pool"}, Category: "budget",
			Rooms: []domain.Room{{ID: "h3-r1", Type: "Single", Price: 90000, Capacity: 1}},
		},
	}}
	if withReviews {
		c.Reviews = []domain.Review{
			{ID: "s1", HotelID: "h1", UserID: "seed", Rating: 5},
			{ID: "s2", HotelID: "h1", UserID: "seed", Rating: 4},
			{ID: "s3", HotelID: "h2", UserID: "seed", Rating: 5},
			{ID: "s4", HotelID: "h2", UserID: "seed", Rating: 5},
			{ID: "s5", HotelID: "h3", UserID: "seed", Rating: 3},
		}
	}
	return c
}

func (h *harness) register(t *testing.T, email string) app.AuthResult {
	t.Helper()
	res, err := h.Sessions.Register(context.Background(), app.RegisterInput{
		Name: "Guest " + email, Email: email, Phone: "+244900000000", Password: "s3cret",
	})
	require.NoError(t, err)
	return res
}

func stay(hotelID, roomID, in, out string, guests int) app.CreateBookingInput {
	return app.CreateBookingInput{
		HotelID:       hotelID,
		RoomID:        roomID,
		CheckIn:       in,
		CheckOut:      out,
		Guests:        guests,
		GuestDetails:  domain.GuestDetails{Name: "Ana", Email: "ana@example.com", Phone: "+244900000001"},
		PaymentMethod: "card",
	}
}

func (h *harness) book(t *testing.T, userID string, in app.CreateBookingInput) app.CreateBookingResult {
	t.Helper()
	res, err := h.Bookings.Create(context.Background(), userID, in)
	require.NoError(t, err)
	return res
}

func requireCode(t *testing.T, err error, code domain.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, domain.CodeOf(err), "error: %v", err)
}
