package domain

import "time"

type Deal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Discount    int        `json:"discount"`
	HotelID     string     `json:"hotelId,omitempty"`
	Image       string     `json:"image,omitempty"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"`
}

// Active reports whether the deal is still on offer. No ValidUntil means always active.
func (d Deal) Active(now time.Time) bool {
	return d.ValidUntil == nil || !d.ValidUntil.Before(now)
}

type TrendingDestination struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Country    string     `json:"country"`
	Image      string     `json:"image,omitempty"`
	HotelCount int        `json:"hotelCount"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
}

func (t TrendingDestination) Active(now time.Time) bool {
	return t.ValidUntil == nil || !t.ValidUntil.Before(now)
}

type LastMinuteDeal struct {
	ID            string    `json:"id"`
	HotelID       string    `json:"hotelId"`
	HotelName     string    `json:"hotelName"`
	Location      string    `json:"location"`
	OriginalPrice int64     `json:"originalPrice"`
	DealPrice     int64     `json:"dealPrice"`
	Image         string    `json:"image,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// LastMinuteView is a LastMinuteDeal with its remaining time derived at read time.
type LastMinuteView struct {
	LastMinuteDeal
	TimeRemaining string `json:"timeRemaining"`
}
