package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/events"
	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/security"
	"hotel_booking/internal/app"
	"hotel_booking/internal/seed"
	"hotel_booking/internal/storage/memory"
)

// ---------- helpers ----------

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"pagination"`
	Meta  json.RawMessage `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.base+path, rdr)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		c.t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return res.StatusCode, env
}

func (c *client) must(status int, method, path string, body any, dst any) envelope {
	c.t.Helper()
	got, env := c.do(method, path, body)
	if got != status {
		c.t.Fatalf("%s %s: status %d, want %d (error=%+v)", method, path, got, status, env.Error)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			c.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return env
}

func (c *client) fail(status int, code, method, path string, body any) {
	c.t.Helper()
	got, env := c.do(method, path, body)
	if got != status || env.Error == nil || env.Error.Code != code {
		c.t.Fatalf("%s %s: got %d %+v, want %d %s", method, path, got, env.Error, status, code)
	}
}

func newAPI(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	c, err := seed.Default()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	boot := time.Now().UTC()
	e := app.New(app.Deps{
		Users:         memory.NewUsers(),
		Sessions:      memory.NewSessions(),
		Hotels:        memory.NewHotels(),
		Bookings:      memory.NewBookings(),
		Reviews:       memory.NewReviews(),
		Favorites:     memory.NewFavorites(),
		Notifications: memory.NewNotifications(),
		Deals:         memory.NewDeals(c.Deals, c.Trending, seed.LastMinute(c, boot)),
		Hasher:        security.NewArgon2(security.TestParams),
		Locker:        memory.NewKeyLock(),
		Publisher:     events.Noop{},
		Pricing:       app.PricingPolicy{ServiceFee: 5000, TaxPercent: 10},
	})
	if err := e.Seed(ctx, c); err != nil {
		t.Fatalf("engine seed: %v", err)
	}
	srv := server.New(server.Options{Timeout: 5 * time.Second})
	srv.MountHandlers(&server.Handlers{E: e, Env: "test"})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts.URL
}

type authData struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

func register(t *testing.T, base, email string) *client {
	t.Helper()
	c := &client{t: t, base: base}
	var a authData
	c.must(http.StatusCreated, "POST", "/auth/register", map[string]string{
		"name": "Guest", "email": email, "phone": "+244900000000", "password": "s3cret",
	}, &a)
	c.token = a.Token
	return c
}

// ---------- the tests ----------

func TestHTTP_EndToEnd_BookingLifecycle(t *testing.T) {
	base := newAPI(t)
	ana := register(t, base, "ana@example.com")
	rui := register(t, base, "rui@example.com")

	// literal routes win over /hotels/{id}
	var featured []struct {
		ID     string  `json:"id"`
		Rating float64 `json:"rating"`
	}
	ana.must(http.StatusOK, "GET", "/hotels/featured?limit=3", nil, &featured)
	if len(featured) != 3 || featured[0].Rating < featured[2].Rating {
		t.Fatalf("unexpected featured: %+v", featured)
	}

	var hotel struct {
		ID    string `json:"id"`
		Rooms []struct {
			ID    string `json:"id"`
			Price int64  `json:"price"`
		} `json:"rooms"`
	}
	ana.must(http.StatusOK, "GET", "/hotels/"+featured[0].ID, nil, &hotel)
	room := hotel.Rooms[0]

	checkIn := time.Now().UTC().AddDate(0, 1, 0)
	in, out := checkIn.Format("2006-01-02"), checkIn.AddDate(0, 0, 3).Format("2006-01-02")
	var created struct {
		BookingID        string `json:"bookingId"`
		ConfirmationCode string `json:"confirmationCode"`
		Booking          struct {
			Status  string `json:"status"`
			Pricing struct {
				Subtotal, ServiceFee, Tax, Total int64
			} `json:"pricing"`
		} `json:"booking"`
	}
	ana.must(http.StatusCreated, "POST", "/bookings", map[string]any{
		"hotelId": hotel.ID, "roomId": room.ID, "checkIn": in, "checkOut": out, "guests": 1,
		"guestDetails":  map[string]string{"name": "Ana", "email": "ana@example.com", "phone": "+244900000000"},
		"paymentMethod": "card",
	}, &created)
	p := created.Booking.Pricing
	if p.Subtotal != 3*room.Price || p.Total != p.Subtotal+p.ServiceFee+p.Tax || p.ServiceFee != 5000 {
		t.Fatalf("unexpected pricing: %+v", p)
	}
	if !strings.HasPrefix(created.ConfirmationCode, "CNF-") || created.Booking.Status != "confirmed" {
		t.Fatalf("unexpected booking: %+v", created)
	}

	rui.fail(http.StatusForbidden, "FORBIDDEN", "GET", "/bookings/"+created.BookingID, nil)
	rui.fail(http.StatusForbidden, "FORBIDDEN", "PATCH", "/bookings/"+created.BookingID+"/cancel", nil)
	rui.fail(http.StatusForbidden, "FORBIDDEN", "POST", "/hotels/"+hotel.ID+"/reviews",
		map[string]any{"bookingId": created.BookingID, "rating": 5})

	var review struct {
		ReviewID    string `json:"reviewId"`
		Status      string `json:"status"`
		ReviewCount int    `json:"reviewCount"`
	}
	ana.must(http.StatusCreated, "POST", "/hotels/"+hotel.ID+"/reviews",
		map[string]any{"bookingId": created.BookingID, "rating": 5, "comment": "Lovely"}, &review)
	if review.Status != "published" {
		t.Fatalf("unexpected review: %+v", review)
	}
	var helpful struct {
		HelpfulCount int `json:"helpfulCount"`
	}
	rui.must(http.StatusOK, "PATCH", "/reviews/"+review.ReviewID+"/helpful", nil, &helpful)
	if helpful.HelpfulCount != 1 {
		t.Fatalf("unexpected helpful count: %d", helpful.HelpfulCount)
	}

	env := ana.must(http.StatusOK, "GET", "/hotels/"+hotel.ID+"/reviews?limit=1", nil, nil)
	if env.Pagination == nil || env.Pagination.Total != review.ReviewCount {
		t.Fatalf("review total %+v, want %d", env.Pagination, review.ReviewCount)
	}

	var cancelled struct {
		Refund struct {
			Amount int64  `json:"amount"`
			Status string `json:"status"`
		} `json:"refund"`
	}
	ana.must(http.StatusOK, "PATCH", "/bookings/"+created.BookingID+"/cancel", nil, &cancelled)
	if cancelled.Refund.Amount != p.Subtotal || cancelled.Refund.Status != "Processing" {
		t.Fatalf("unexpected refund: %+v", cancelled)
	}
	ana.fail(http.StatusConflict, "INVALID_STATUS", "PATCH", "/bookings/"+created.BookingID+"/cancel", nil)

	var list []struct {
		ID string `json:"id"`
	}
	ana.must(http.StatusOK, "GET", "/users/bookings?status=cancelled", nil, &list)
	if len(list) != 1 || list[0].ID != created.BookingID {
		t.Fatalf("unexpected cancelled list: %+v", list)
	}

	var meta struct {
		UnreadCount int `json:"unreadCount"`
	}
	env = ana.must(http.StatusOK, "GET", "/users/notifications", nil, nil)
	_ = json.Unmarshal(env.Meta, &meta)
	if meta.UnreadCount != 3 {
		t.Fatalf("expected confirmed, review and cancelled notifications, got %d", meta.UnreadCount)
	}
	ana.must(http.StatusOK, "PATCH", "/users/notifications/read-all", nil, nil)
}

func TestHTTP_FavoritesAndSessions(t *testing.T) {
	base := newAPI(t)
	ana := register(t, base, "ana@example.com")

	ana.must(http.StatusCreated, "POST", "/users/favorites/h-001", nil, nil)
	ana.fail(http.StatusConflict, "ALREADY_EXISTS", "POST", "/users/favorites/h-001", nil)
	ana.fail(http.StatusNotFound, "NOT_FOUND", "POST", "/users/favorites/nope", nil)

	var favs []struct {
		ID string `json:"id"`
	}
	ana.must(http.StatusOK, "GET", "/users/favorites", nil, &favs)
	if len(favs) != 1 || favs[0].ID != "h-001" {
		t.Fatalf("unexpected favorites: %+v", favs)
	}
	ana.must(http.StatusOK, "DELETE", "/users/favorites/h-001", nil, nil)
	ana.fail(http.StatusNotFound, "NOT_FOUND", "DELETE", "/users/favorites/h-001", nil)

	anon := &client{t: t, base: base}
	anon.fail(http.StatusUnauthorized, "UNAUTHORIZED", "GET", "/users/me", nil)
	anon.fail(http.StatusUnauthorized, "INVALID_CREDENTIALS", "POST", "/auth/login",
		map[string]string{"email": "ana@example.com", "password": "wrong"})
	anon.fail(http.StatusConflict, "USER_EXISTS", "POST", "/auth/register",
		map[string]string{"name": "A", "email": "ana@example.com", "phone": "1", "password": "x"})

	ana.must(http.StatusOK, "GET", "/users/me", nil, nil)
	ana.must(http.StatusOK, "POST", "/auth/logout", nil, nil)
	ana.fail(http.StatusUnauthorized, "UNAUTHORIZED", "GET", "/users/me", nil)
}

func TestHTTP_CatalogReads(t *testing.T) {
	base := newAPI(t)
	anon := &client{t: t, base: base}

	var hotels []struct {
		Category string `json:"category"`
	}
	env := anon.must(http.StatusOK, "GET", "/hotels?categories=luxury,resort&limit=2", nil, &hotels)
	if len(hotels) > 2 || env.Pagination == nil || env.Pagination.Total < len(hotels) {
		t.Fatalf("unexpected page: %+v %+v", hotels, env.Pagination)
	}
	for _, h := range hotels {
		if h.Category != "luxury" && h.Category != "resort" {
			t.Fatalf("unexpected category %q", h.Category)
		}
	}
	var empty []any
	anon.must(http.StatusOK, "GET", "/hotels?page=99", nil, &empty)
	if len(empty) != 0 {
		t.Fatalf("out-of-range page must be empty")
	}
	anon.fail(http.StatusBadRequest, "VALIDATION_ERROR", "GET", "/hotels?page=abc", nil)
	anon.fail(http.StatusNotFound, "NOT_FOUND", "GET", "/hotels/nope", nil)

	var dests []struct {
		Name string `json:"name"`
	}
	anon.must(http.StatusOK, "GET", "/destinations?q=lu", nil, &dests)
	if len(dests) == 0 || dests[0].Name != "Luanda" {
		t.Fatalf("unexpected destinations: %+v", dests)
	}

	var lm []struct {
		TimeRemaining string `json:"timeRemaining"`
	}
	anon.must(http.StatusOK, "GET", "/last-minute-deals", nil, &lm)
	for _, d := range lm {
		if strings.HasPrefix(d.TimeRemaining, "-") {
			t.Fatalf("negative remaining time %q", d.TimeRemaining)
		}
	}
	anon.must(http.StatusOK, "GET", "/deals", nil, nil)
	anon.must(http.StatusOK, "GET", "/trending-destinations", nil, nil)
}
