package domain

import "time"

const (
	NotifyBookingConfirmed = "booking_confirmed"
	NotifyBookingCancelled = "booking_cancelled"
	NotifyReviewPublished  = "review_published"
)

type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
	Data      map[string]any `json:"data,omitempty"`
}
