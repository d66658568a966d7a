package memory

import (
	"sync"

	"hotel_booking/internal/domain"
)

// Hotels keeps insertion order so scans are deterministic.
type Hotels struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Hotel
}

func NewHotels() *Hotels { return &Hotels{byID: map[string]domain.Hotel{}} }

func (r *Hotels) All() []domain.Hotel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Hotel, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

func (r *Hotels) ByID(id string) (domain.Hotel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byID[id]
	if !ok {
		return domain.Hotel{}, false
	}
	return h.Clone(), true
}

func (r *Hotels) Put(h domain.Hotel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[h.ID]; !ok {
		r.order = append(r.order, h.ID)
	}
	r.byID[h.ID] = h.Clone()
}

func (r *Hotels) SetAggregate(id string, rating float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byID[id]
	if !ok {
		return domain.Errorf(domain.CodeNotFound, "hotel %s not found", id)
	}
	h.Rating = rating
	h.ReviewCount = reviewCount
	r.byID[id] = h
	return nil
}
