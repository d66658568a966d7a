package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotel_booking/internal/domain"
)

const popularMinRating = 4.7

type CatalogService struct {
	hotels   domain.HotelRepository
	cache    domain.Cache // optional
	cacheTTL time.Duration
	locks    domain.Locker
	group    singleflight.Group
}

func NewCatalogService(r domain.HotelRepository, c domain.Cache, ttl time.Duration, l domain.Locker) *CatalogService {
	return &CatalogService{hotels: r, cache: c, cacheTTL: ttl, locks: l}
}

// Load stores hotels as given. Their aggregates are set when reviews are imported.
func (s *CatalogService) Load(hotels []domain.Hotel) {
	for _, h := range hotels {
		s.hotels.Put(h)
	}
}

func hotelKey(id string) string { return fmt.Sprintf("hotel:%s", id) }

func (s *CatalogService) GetByID(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	if s.cache != nil {
		var h domain.Hotel
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		// the fill holds the hotel lock so an aggregate write cannot land between read and Set
		if s.cache != nil {
			unlock := s.locks.Lock(key)
			defer unlock()
		}
		h, ok := s.hotels.ByID(id)
		if !ok {
			return domain.Hotel{}, domain.Errorf(domain.CodeNotFound, "hotel %s not found", id)
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds())); err != nil {
				log.Warn().Err(err).Str("hotel_id", id).Msg("hotel cache set failed")
			}
		}
		return h, nil
	})
	if err != nil {
		return domain.Hotel{}, err
	}
	return v.(domain.Hotel).Clone(), nil
}

// All is the full catalog in load order.
func (s *CatalogService) All(ctx context.Context) []domain.Hotel { return s.hotels.All() }

// UpdateRating stores a recomputed aggregate and evicts the cached detail view.
// Callers hold the hotel lock.
func (s *CatalogService) UpdateRating(ctx context.Context, id string, rating float64, count int) error {
	if err := s.hotels.SetAggregate(id, rating, count); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, hotelKey(id)); err != nil {
			log.Warn().Err(err).Str("hotel_id", id).Msg("hotel cache evict failed")
		}
	}
	return nil
}

func (s *CatalogService) Search(ctx context.Context, q domain.HotelsQuery) (domain.Page[domain.Hotel], error) {
	switch q.Sort {
	case "", domain.SortRating, domain.SortPrice, domain.SortDistance:
	default:
		return domain.Page[domain.Hotel]{}, domain.Errorf(domain.CodeValidation, "sortBy must be one of price, rating, distance")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return domain.Page[domain.Hotel]{}, domain.Errorf(domain.CodeValidation, "minPrice must not exceed maxPrice")
	}

	var out []domain.Hotel
	for _, h := range s.hotels.All() {
		if matches(h, q) {
			out = append(out, h)
		}
	}
	sortHotels(out, q.Sort)
	return domain.Paginate(out, q.Page), nil
}

func matches(h domain.Hotel, q domain.HotelsQuery) bool {
	if loc := strings.ToLower(strings.TrimSpace(q.Location)); loc != "" {
		if !strings.Contains(strings.ToLower(h.Name), loc) && !strings.Contains(strings.ToLower(h.Location), loc) {
			return false
		}
	}
	if q.MinPrice != nil && h.BasePrice < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && h.BasePrice > *q.MaxPrice {
		return false
	}
	if q.MinRating != nil && h.Rating < *q.MinRating {
		return false
	}
	for _, a := range q.Amenities {
		if !h.HasAmenity(a) {
			return false
		}
	}
	if len(q.Categories) > 0 {
		found := false
		for _, c := range q.Categories {
			if strings.EqualFold(c, h.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Guests > 0 {
		fits := false
		for _, r := range h.Rooms {
			if r.Capacity >= q.Guests {
				fits = true
				break
			}
		}
		if !fits {
			return false
		}
	}
	return true
}

func sortHotels(hs []domain.Hotel, by domain.SortBy) {
	switch by {
	case domain.SortPrice:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].BasePrice < hs[j].BasePrice })
	case domain.SortDistance:
		sort.SliceStable(hs, func(i, j int) bool { return parseDistance(hs[i].Distance) < parseDistance(hs[j].Distance) })
	default:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Rating > hs[j].Rating })
	}
}

// parseDistance reads the leading number of strings like "2.5 km". Unparsable values sort last.
func parseDistance(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == ',') {
		end++
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s[:end], ",", "."), 64)
	if err != nil {
		return math.Inf(1)
	}
	return f
}

func (s *CatalogService) Featured(ctx context.Context, limit int) []domain.Hotel {
	return topByRating(s.hotels.All(), limit, 0)
}

func (s *CatalogService) Popular(ctx context.Context, limit int) []domain.Hotel {
	return topByRating(s.hotels.All(), limit, popularMinRating)
}

func topByRating(hs []domain.Hotel, limit int, minRating float64) []domain.Hotel {
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	out := make([]domain.Hotel, 0, len(hs))
	for _, h := range hs {
		if h.Rating >= minRating {
			out = append(out, h)
		}
	}
	sortHotels(out, domain.SortRating)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CheckAvailability has no inventory tracking: a room is available when it fits the guests.
func (s *CatalogService) CheckAvailability(ctx context.Context, hotelID, checkIn, checkOut string, guests int) (domain.Availability, error) {
	h, err := s.GetByID(ctx, hotelID)
	if err != nil {
		return domain.Availability{}, err
	}
	if checkIn == "" || checkOut == "" || guests <= 0 {
		return domain.Availability{}, domain.Errorf(domain.CodeValidation, "checkIn, checkOut and guests are required")
	}
	in, out, err := parseStay(checkIn, checkOut)
	if err != nil {
		return domain.Availability{}, err
	}
	a := domain.Availability{
		HotelID:  h.ID,
		CheckIn:  in.Format(domain.DateLayout),
		CheckOut: out.Format(domain.DateLayout),
		Guests:   guests,
		Rooms:    make([]domain.RoomAvailability, 0, len(h.Rooms)),
	}
	for _, r := range h.Rooms {
		a.Rooms = append(a.Rooms, domain.RoomAvailability{Room: r, Available: r.Capacity >= guests})
	}
	return a, nil
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(domain.DateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Errorf(domain.CodeValidation, "checkIn must be YYYY-MM-DD")
	}
	out, err := time.Parse(domain.DateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Errorf(domain.CodeValidation, "checkOut must be YYYY-MM-DD")
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, domain.Errorf(domain.CodeValidation, "checkOut must be after checkIn")
	}
	return in, out, nil
}
