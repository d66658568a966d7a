package domain

import "time"

type Review struct {
	ID           string    `json:"id"`
	HotelID      string    `json:"hotelId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName,omitempty"`
	BookingID    string    `json:"bookingId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Images       []string  `json:"images,omitempty"`
	HelpfulCount int       `json:"helpfulCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewSort string

const (
	ReviewSortRecent  ReviewSort = "recent"
	ReviewSortRating  ReviewSort = "rating"
	ReviewSortHelpful ReviewSort = "helpful"
)

const ReviewPublished = "published"

// Distribution counts reviews per star value, keyed "1".."5".
type Distribution map[string]int
