package domain

import "time"

type Favorite struct {
	UserID  string    `json:"userId"`
	HotelID string    `json:"hotelId"`
	AddedAt time.Time `json:"addedAt"`
}

// FavoriteView joins a favorite with the hotel as it is at read time.
type FavoriteView struct {
	HotelSummary
	AddedAt time.Time `json:"addedAt"`
}
