package app

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type ReviewService struct {
	reviews  domain.ReviewRepository
	catalog  *CatalogService
	bookings *BookingService
	notify   *NotificationService
	names    interface{ DisplayName(userID string) string }
	locks    domain.Locker
	now      func() time.Time
}

func NewReviewService(
	r domain.ReviewRepository,
	c *CatalogService,
	b *BookingService,
	n *NotificationService,
	names interface{ DisplayName(userID string) string },
	l domain.Locker,
	now func() time.Time,
) *ReviewService {
	return &ReviewService{reviews: r, catalog: c, bookings: b, notify: n, names: names, locks: l, now: now}
}

type CreateReviewInput struct {
	BookingID string   `json:"bookingId"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	Images    []string `json:"images,omitempty"`
}

type CreateReviewResult struct {
	ReviewID    string  `json:"reviewId"`
	Status      string  `json:"status"`
	HotelRating float64 `json:"hotelRating"`
	ReviewCount int     `json:"reviewCount"`
}

type ReviewList struct {
	domain.Page[domain.Review]
	Distribution domain.Distribution
	Rating       float64
	ReviewCount  int
}

func (s *ReviewService) Create(ctx context.Context, userID, hotelID string, in CreateReviewInput) (CreateReviewResult, error) {
	if _, err := s.catalog.GetByID(ctx, hotelID); err != nil {
		return CreateReviewResult{}, err
	}
	if in.BookingID == "" {
		return CreateReviewResult{}, domain.Errorf(domain.CodeValidation, "bookingId is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return CreateReviewResult{}, domain.Errorf(domain.CodeValidation, "rating must be an integer from 1 to 5")
	}
	b, err := s.bookings.ForReview(ctx, userID, in.BookingID)
	if err != nil {
		return CreateReviewResult{}, err
	}
	if b.HotelID != hotelID {
		return CreateReviewResult{}, domain.Errorf(domain.CodeValidation, "booking %s is not for hotel %s", b.ID, hotelID)
	}

	rv := domain.Review{
		ID:        uuid.NewString(),
		HotelID:   hotelID,
		UserID:    userID,
		BookingID: b.ID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		Images:    in.Images,
		CreatedAt: s.now(),
	}
	if s.names != nil {
		rv.UserName = s.names.DisplayName(userID)
	}

	rating, count, err := s.appendAndRecompute(ctx, rv)
	if err != nil {
		return CreateReviewResult{}, err
	}
	observability.ObserveDomain("review", "published")
	log.Info().Str("review_id", rv.ID).Str("hotel_id", hotelID).Float64("rating", rating).Int("review_count", count).Msg("review published")

	s.notify.Emit(ctx, userID, domain.NotifyReviewPublished, "Review published",
		"Thanks for reviewing your stay.", map[string]any{"reviewId": rv.ID, "hotelId": hotelID})
	return CreateReviewResult{ReviewID: rv.ID, Status: domain.ReviewPublished, HotelRating: rating, ReviewCount: count}, nil
}

// appendAndRecompute is the per-hotel transaction: the append and the aggregate write
// happen under one lock, so concurrent reviews cannot publish a stale count.
func (s *ReviewService) appendAndRecompute(ctx context.Context, rv domain.Review) (float64, int, error) {
	unlock := s.locks.Lock(hotelKey(rv.HotelID))
	defer unlock()
	s.reviews.Append(rv)
	return s.recompute(ctx, rv.HotelID)
}

func (s *ReviewService) recompute(ctx context.Context, hotelID string) (float64, int, error) {
	all := s.reviews.ForHotel(hotelID)
	rating := Aggregate(all)
	if err := s.catalog.UpdateRating(ctx, hotelID, rating, len(all)); err != nil {
		return 0, 0, err
	}
	return rating, len(all), nil
}

// Aggregate is the mean rating rounded to one decimal, or 0 without reviews.
func Aggregate(rs []domain.Review) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(rs))*10) / 10
}

// Import loads seed reviews and recomputes the aggregate of every hotel in the catalog.
func (s *ReviewService) Import(ctx context.Context, rs []domain.Review) error {
	for _, rv := range rs {
		if rv.ID == "" {
			rv.ID = uuid.NewString()
		}
		s.reviews.Append(rv)
	}
	for _, h := range s.catalog.All(ctx) {
		unlock := s.locks.Lock(hotelKey(h.ID))
		_, _, err := s.recompute(ctx, h.ID)
		unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// MarkHelpful counts every mark; repeated marks by one user are not collapsed.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) (int, error) {
	n, ok := s.reviews.IncrementHelpful(reviewID)
	if !ok {
		return 0, domain.Errorf(domain.CodeNotFound, "review %s not found", reviewID)
	}
	return n, nil
}

func (s *ReviewService) ListForHotel(ctx context.Context, hotelID string, pg domain.PageQuery, by domain.ReviewSort) (ReviewList, error) {
	h, err := s.catalog.GetByID(ctx, hotelID)
	if err != nil {
		return ReviewList{}, err
	}
	all := s.reviews.ForHotel(hotelID)

	dist := domain.Distribution{}
	for star := 1; star <= 5; star++ {
		dist[strconv.Itoa(star)] = 0
	}
	for _, r := range all {
		dist[strconv.Itoa(r.Rating)]++
	}

	newer := func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) }
	switch by {
	case "", domain.ReviewSortRecent:
		sort.SliceStable(all, newer)
	case domain.ReviewSortRating:
		sort.SliceStable(all, func(i, j int) bool {
			if all[i].Rating != all[j].Rating {
				return all[i].Rating > all[j].Rating
			}
			return newer(i, j)
		})
	case domain.ReviewSortHelpful:
		sort.SliceStable(all, func(i, j int) bool {
			if all[i].HelpfulCount != all[j].HelpfulCount {
				return all[i].HelpfulCount > all[j].HelpfulCount
			}
			return newer(i, j)
		})
	default:
		return ReviewList{}, domain.Errorf(domain.CodeValidation, "sortBy must be one of recent, rating, helpful")
	}

	return ReviewList{
		Page:         domain.Paginate(all, pg),
		Distribution: dist,
		Rating:       h.Rating,
		ReviewCount:  h.ReviewCount,
	}, nil
}
