package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Timeout     time.Duration
	CORSOrigins []string
	AuthRPS     float64 // per client IP on the credential endpoints; 0 disables
	AuthBurst   int
}

type Server struct {
	mux  *chi.Mux
	opts Options
}

func New(o Options) *Server {
	if o.Timeout == 0 {
		o.Timeout = 15 * time.Second
	}
	if len(o.CORSOrigins) == 0 {
		o.CORSOrigins = []string{"*"}
	}
	m := chi.NewRouter()

	// All middlewares go here, before any routes are added.
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(cors.Handler(cors.Options{
		AllowedOrigins:   o.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	m.Use(Timeout(o.Timeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m, opts: o}
}

func (s *Server) Mux() http.Handler { return s.mux }

// MountHandlers registers the full API. Literal segments such as /hotels/featured
// win over /hotels/{id} in chi's tree no matter the order below.
func (s *Server) MountHandlers(h *Handlers) {
	auth := RequireSession(h.E.Sessions)
	limit := RateLimit(s.opts.AuthRPS, s.opts.AuthBurst)

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/auth", func(r chi.Router) {
		r.With(limit).Post("/register", h.register)
		r.With(limit).Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Post("/refresh", h.refresh)
		r.With(limit).Post("/forgot-password", h.forgotPassword)
		r.Post("/reset-password", h.resetPassword)
	})

	s.mux.Route("/hotels", func(r chi.Router) {
		r.Get("/", h.searchHotels)
		r.Get("/{id}", h.getHotel)
		r.Get("/featured", h.featuredHotels)
		r.Get("/popular", h.popularHotels)
		r.Get("/{id}/rooms/availability", h.availability)
		r.Get("/{id}/reviews", h.listReviews)
		r.With(auth).Post("/{id}/reviews", h.createReview)
	})
	s.mux.Get("/destinations", h.destinations)

	s.mux.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/bookings", h.createBooking)
		r.Get("/bookings/{id}", h.getBooking)
		r.Patch("/bookings/{id}/cancel", h.cancelBooking)
		r.Patch("/reviews/{id}/helpful", h.markHelpful)

		r.Get("/users/me", h.me)
		r.Get("/users/bookings", h.listBookings)
		r.Get("/users/favorites", h.listFavorites)
		r.Post("/users/favorites/{hotelId}", h.addFavorite)
		r.Delete("/users/favorites/{hotelId}", h.removeFavorite)
		r.Get("/users/notifications", h.listNotifications)
		r.Patch("/users/notifications/read-all", h.markAllRead)
		r.Patch("/users/notifications/{id}/read", h.markRead)
	})

	s.mux.Get("/deals", h.deals)
	s.mux.Get("/deals/{id}", h.deal)
	s.mux.Get("/trending-destinations", h.trending)
	s.mux.Get("/trending-destinations/{id}", h.trendingByID)
	s.mux.Get("/last-minute-deals", h.lastMinute)
	s.mux.Get("/last-minute-deals/{id}", h.lastMinuteByID)

	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, domainErr("NOT_FOUND", "route not found"))
	})
	s.mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, domainErr("NOT_FOUND", "route not found"))
	})
}
