package app

import (
	"context"
	"crypto/rand"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type BookingService struct {
	bookings domain.BookingRepository
	catalog  *CatalogService
	notify   *NotificationService
	pricing  PricingPolicy
	now      func() time.Time
}

func NewBookingService(r domain.BookingRepository, c *CatalogService, n *NotificationService, p PricingPolicy, now func() time.Time) *BookingService {
	return &BookingService{bookings: r, catalog: c, notify: n, pricing: p, now: now}
}

type CreateBookingInput struct {
	HotelID       string              `json:"hotelId"`
	RoomID        string              `json:"roomId"`
	CheckIn       string              `json:"checkIn"`
	CheckOut      string              `json:"checkOut"`
	Guests        int                 `json:"guests"`
	GuestDetails  domain.GuestDetails `json:"guestDetails"`
	PaymentMethod string              `json:"paymentMethod"`
	Pricing       *domain.Pricing     `json:"pricing,omitempty"`
}

type CreateBookingResult struct {
	BookingID        string             `json:"bookingId"`
	ConfirmationCode string             `json:"confirmationCode"`
	Booking          domain.BookingView `json:"booking"`
}

type CancelResult struct {
	BookingID string        `json:"bookingId"`
	Status    string        `json:"status"`
	Refund    domain.Refund `json:"refund"`
}

func (in CreateBookingInput) validate() error {
	var missing []string
	if in.HotelID == "" {
		missing = append(missing, "hotelId")
	}
	if in.RoomID == "" {
		missing = append(missing, "roomId")
	}
	if in.CheckIn == "" {
		missing = append(missing, "checkIn")
	}
	if in.CheckOut == "" {
		missing = append(missing, "checkOut")
	}
	if in.Guests <= 0 {
		missing = append(missing, "guests")
	}
	if in.GuestDetails.Name == "" || in.GuestDetails.Email == "" || in.GuestDetails.Phone == "" {
		missing = append(missing, "guestDetails")
	}
	if in.PaymentMethod == "" {
		missing = append(missing, "paymentMethod")
	}
	if len(missing) > 0 {
		return domain.Errorf(domain.CodeValidation, "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *BookingService) Create(ctx context.Context, userID string, in CreateBookingInput) (CreateBookingResult, error) {
	if err := in.validate(); err != nil {
		return CreateBookingResult{}, err
	}
	checkIn, checkOut, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return CreateBookingResult{}, err
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if checkIn.Before(today) {
		return CreateBookingResult{}, domain.Errorf(domain.CodeValidation, "checkIn must not be in the past")
	}

	h, err := s.catalog.GetByID(ctx, in.HotelID)
	if err != nil {
		return CreateBookingResult{}, err
	}
	room, ok := h.Room(in.RoomID)
	if !ok {
		return CreateBookingResult{}, domain.Errorf(domain.CodeNotFound, "room %s not found in hotel %s", in.RoomID, h.ID)
	}
	if in.Guests > room.Capacity {
		return CreateBookingResult{}, domain.Errorf(domain.CodeValidation, "room %s holds at most %d guests", room.ID, room.Capacity)
	}

	nights := domain.Nights(checkIn, checkOut)
	price := s.pricing.Quote(nights, room.Price)
	if in.Pricing != nil && *in.Pricing != price {
		return CreateBookingResult{}, domain.Errorf(domain.CodeValidation,
			"pricing mismatch: expected subtotal=%d serviceFee=%d tax=%d total=%d",
			price.Subtotal, price.ServiceFee, price.Tax, price.Total)
	}

	code, err := confirmationCode()
	if err != nil {
		return CreateBookingResult{}, err
	}
	b := domain.Booking{
		ID:               uuid.NewString(),
		UserID:           userID,
		HotelID:          h.ID,
		RoomID:           room.ID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Nights:           nights,
		Guests:           in.Guests,
		GuestDetails:     in.GuestDetails,
		PaymentMethod:    in.PaymentMethod,
		Pricing:          price,
		Status:           domain.StatusConfirmed,
		ConfirmationCode: code,
		CreatedAt:        now,
	}
	s.bookings.Insert(b)
	observability.ObserveDomain("booking", "created")
	log.Info().Str("booking_id", b.ID).Str("hotel_id", b.HotelID).Str("user_id", userID).Int64("total", price.Total).Msg("booking created")

	s.notify.Emit(ctx, userID, domain.NotifyBookingConfirmed, "Booking confirmed",
		"Your stay at "+h.Name+" is confirmed. Code "+code+".",
		map[string]any{"bookingId": b.ID, "hotelId": h.ID, "confirmationCode": code})

	view := b.View(now)
	sum := h.Summary()
	view.Hotel = &sum
	return CreateBookingResult{BookingID: b.ID, ConfirmationCode: code, Booking: view}, nil
}

// owned loads a booking and enforces that userID owns it.
func (s *BookingService) owned(userID, id string) (domain.Booking, error) {
	b, ok := s.bookings.ByID(id)
	if !ok {
		return domain.Booking{}, domain.Errorf(domain.CodeNotFound, "booking %s not found", id)
	}
	if b.UserID != userID {
		return domain.Booking{}, domain.ErrForbidden
	}
	return b, nil
}

func (s *BookingService) GetByID(ctx context.Context, userID, id string) (domain.BookingView, error) {
	b, err := s.owned(userID, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	return s.view(ctx, b), nil
}

func (s *BookingService) Cancel(ctx context.Context, userID, id string) (CancelResult, error) {
	if _, err := s.owned(userID, id); err != nil {
		return CancelResult{}, err
	}
	now := s.now()
	b, err := s.bookings.Update(id, func(b *domain.Booking) error {
		switch b.EffectiveStatus(now) {
		case domain.StatusCancelled:
			return domain.Errorf(domain.CodeInvalidStatus, "booking is already cancelled")
		case domain.StatusCompleted:
			return domain.Errorf(domain.CodeInvalidStatus, "completed bookings cannot be cancelled")
		}
		b.Status = domain.StatusCancelled
		b.CancelledAt = &now
		return nil
	})
	if err != nil {
		return CancelResult{}, err
	}
	observability.ObserveDomain("booking", "cancelled")
	log.Info().Str("booking_id", b.ID).Str("user_id", userID).Msg("booking cancelled")

	refund := domain.Refund{Amount: b.Pricing.Subtotal, Status: domain.RefundProcessing}
	s.notify.Emit(ctx, userID, domain.NotifyBookingCancelled, "Booking cancelled",
		"Your booking "+b.ConfirmationCode+" was cancelled. A refund is being processed.",
		map[string]any{"bookingId": b.ID, "refundAmount": refund.Amount})
	return CancelResult{BookingID: b.ID, Status: string(domain.StatusCancelled), Refund: refund}, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID string, filter domain.BookingFilter, pg domain.PageQuery) (domain.Page[domain.BookingView], error) {
	switch filter {
	case domain.FilterAll, domain.FilterUpcoming, domain.FilterCompleted, domain.FilterCancelled:
	default:
		return domain.Page[domain.BookingView]{}, domain.Errorf(domain.CodeValidation, "status must be one of upcoming, completed, cancelled")
	}
	now := s.now()
	all := s.bookings.ForUser(userID)
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	var picked []domain.Booking
	for _, b := range all {
		st := b.EffectiveStatus(now)
		switch filter {
		case domain.FilterUpcoming:
			if b.Status != domain.StatusConfirmed || !b.CheckIn.After(now) {
				continue
			}
		case domain.FilterCompleted:
			// a past stay counts whatever its stored status, cancelled included
			if !b.CheckOut.Before(now) && st != domain.StatusCompleted {
				continue
			}
		case domain.FilterCancelled:
			if st != domain.StatusCancelled {
				continue
			}
		}
		picked = append(picked, b)
	}

	page := domain.Paginate(picked, pg)
	views := make([]domain.BookingView, 0, len(page.Items))
	for _, b := range page.Items {
		views = append(views, s.view(ctx, b))
	}
	return domain.Page[domain.BookingView]{Items: views, Pagination: page.Pagination}, nil
}

// ForReview returns an owned booking for the review flow.
func (s *BookingService) ForReview(ctx context.Context, userID, id string) (domain.Booking, error) {
	return s.owned(userID, id)
}

func (s *BookingService) view(ctx context.Context, b domain.Booking) domain.BookingView {
	v := b.View(s.now())
	if h, err := s.catalog.GetByID(ctx, b.HotelID); err == nil {
		sum := h.Summary()
		v.Hotel = &sum
	}
	return v
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// confirmationCode returns CNF- followed by 8 random base36 characters.
func confirmationCode() (string, error) {
	var sb strings.Builder
	sb.WriteString("CNF-")
	max := big.NewInt(int64(len(base36)))
	for i := 0; i < 8; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36[n.Int64()])
	}
	return sb.String(), nil
}
