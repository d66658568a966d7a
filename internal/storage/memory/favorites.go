package memory

import (
	"sort"
	"sync"

	"hotel_booking/internal/domain"
)

type Favorites struct {
	mu     sync.Mutex
	byUser map[string]map[string]domain.Favorite
}

func NewFavorites() *Favorites {
	return &Favorites{byUser: map[string]map[string]domain.Favorite{}}
}

func (r *Favorites) Add(f domain.Favorite) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.byUser[f.UserID]
	if !ok {
		set = map[string]domain.Favorite{}
		r.byUser[f.UserID] = set
	}
	if _, dup := set[f.HotelID]; dup {
		return false
	}
	set[f.HotelID] = f
	return true
}

func (r *Favorites) Remove(userID, hotelID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.byUser[userID]
	if _, ok := set[hotelID]; !ok {
		return false
	}
	delete(set, hotelID)
	return true
}

// ForUser returns the user's favorites, most recently added first.
func (r *Favorites) ForUser(userID string) []domain.Favorite {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Favorite, 0, len(r.byUser[userID]))
	for _, f := range r.byUser[userID] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].HotelID < out[j].HotelID
		}
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}
