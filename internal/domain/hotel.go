package domain

import "strings"

type Room struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Price    int64  `json:"price"`
	Capacity int    `json:"capacity"`
}

type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Rating      float64  `json:"rating"`      // derived from reviews
	ReviewCount int      `json:"reviewCount"` // derived from reviews
	BasePrice   int64    `json:"price"`
	Distance    string   `json:"distance"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Rooms       []Room   `json:"rooms"`
}

// Room returns the room with the given id, if the hotel owns one.
func (h Hotel) Room(id string) (Room, bool) {
	for _, r := range h.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// HasAmenity matches amenity names case-insensitively.
func (h Hotel) HasAmenity(a string) bool {
	for _, x := range h.Amenities {
		if strings.EqualFold(x, a) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with h.
func (h Hotel) Clone() Hotel {
	out := h
	out.Amenities = append([]string(nil), h.Amenities...)
	out.Images = append([]string(nil), h.Images...)
	out.Rooms = append([]Room(nil), h.Rooms...)
	return out
}

type HotelSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Price       int64   `json:"price"`
	Image       string  `json:"image,omitempty"`
}

func (h Hotel) Summary() HotelSummary {
	s := HotelSummary{
		ID:          h.ID,
		Name:        h.Name,
		Location:    h.Location,
		Rating:      h.Rating,
		ReviewCount: h.ReviewCount,
		Price:       h.BasePrice,
	}
	if len(h.Images) > 0 {
		s.Image = h.Images[0]
	}
	return s
}

type SortBy string

const (
	SortRating   SortBy = "rating"
	SortPrice    SortBy = "price"
	SortDistance SortBy = "distance"
)

// HotelsQuery holds the optional search filters. Nil or empty means unset.
type HotelsQuery struct {
	Location   string
	MinPrice   *int64
	MaxPrice   *int64
	MinRating  *float64
	Amenities  []string
	Categories []string
	Guests     int
	Sort       SortBy
	Page       PageQuery
}

type RoomAvailability struct {
	Room
	Available bool `json:"available"`
}

type Availability struct {
	HotelID  string             `json:"hotelId"`
	CheckIn  string             `json:"checkIn"`
	CheckOut string             `json:"checkOut"`
	Guests   int                `json:"guests"`
	Rooms    []RoomAvailability `json:"rooms"`
}

type LocationSuggestion struct {
	Name       string `json:"name"`
	HotelCount int    `json:"hotelCount"`
}
