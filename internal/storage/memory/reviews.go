package memory

import (
	"sync"

	"hotel_booking/internal/domain"
)

type Reviews struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Review
	byHotel map[string][]*domain.Review
}

func NewReviews() *Reviews {
	return &Reviews{byID: map[string]*domain.Review{}, byHotel: map[string][]*domain.Review{}}
}

func (r *Reviews) Append(rv domain.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &rv
	r.byID[rv.ID] = p
	r.byHotel[rv.HotelID] = append(r.byHotel[rv.HotelID], p)
}

func (r *Reviews) ByID(id string) (domain.Review, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return domain.Review{}, false
	}
	return *p, true
}

func (r *Reviews) ForHotel(hotelID string) []domain.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byHotel[hotelID]
	out := make([]domain.Review, len(list))
	for i, p := range list {
		out[i] = *p
	}
	return out
}

func (r *Reviews) IncrementHelpful(id string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return 0, false
	}
	p.HelpfulCount++
	return p.HelpfulCount, true
}
