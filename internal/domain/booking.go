package domain

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// DateLayout is the wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

type GuestDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Pricing struct {
	Subtotal   int64 `json:"subtotal"`
	ServiceFee int64 `json:"serviceFee"`
	Tax        int64 `json:"tax"`
	Total      int64 `json:"total"`
}

type Booking struct {
	ID               string        `json:"id"`
	UserID           string        `json:"userId"`
	HotelID          string        `json:"hotelId"`
	RoomID           string        `json:"roomId"`
	CheckIn          time.Time     `json:"-"`
	CheckOut         time.Time     `json:"-"`
	Nights           int           `json:"nights"`
	Guests           int           `json:"guests"`
	GuestDetails     GuestDetails  `json:"guestDetails"`
	PaymentMethod    string        `json:"paymentMethod"`
	Pricing          Pricing       `json:"pricing"`
	Status           BookingStatus `json:"status"`
	ConfirmationCode string        `json:"confirmationCode"`
	CreatedAt        time.Time     `json:"createdAt"`
	CancelledAt      *time.Time    `json:"cancelledAt,omitempty"`
}

// EffectiveStatus derives Completed from a Confirmed booking whose check-out has passed.
// Nothing is stored for that transition.
func (b Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == StatusConfirmed && b.CheckOut.Before(now) {
		return StatusCompleted
	}
	return b.Status
}

// Nights counts started days between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n
}

type BookingFilter string

const (
	FilterAll       BookingFilter = ""
	FilterUpcoming  BookingFilter = "upcoming"
	FilterCompleted BookingFilter = "completed"
	FilterCancelled BookingFilter = "cancelled"
)

type Refund struct {
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

const RefundProcessing = "Processing"

// BookingView is the wire shape of a booking, with dates as YYYY-MM-DD and the effective status.
type BookingView struct {
	Booking
	CheckIn  string        `json:"checkIn"`
	CheckOut string        `json:"checkOut"`
	Status   BookingStatus `json:"status"`
	Hotel    *HotelSummary `json:"hotel,omitempty"`
}

func (b Booking) View(now time.Time) BookingView {
	return BookingView{
		Booking:  b,
		CheckIn:  b.CheckIn.Format(DateLayout),
		CheckOut: b.CheckOut.Format(DateLayout),
		Status:   b.EffectiveStatus(now),
	}
}
