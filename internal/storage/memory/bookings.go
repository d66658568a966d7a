package memory

import (
	"sync"

	"hotel_booking/internal/domain"
)

type Bookings struct {
	mu     sync.RWMutex
	byID   map[string]domain.Booking
	byUser map[string][]string
}

func NewBookings() *Bookings {
	return &Bookings{byID: map[string]domain.Booking{}, byUser: map[string][]string{}}
}

func (r *Bookings) Insert(b domain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID] = b
	r.byUser[b.UserID] = append(r.byUser[b.UserID], b.ID)
}

func (r *Bookings) ByID(id string) (domain.Booking, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	return b, ok
}

// Update applies fn to a copy and stores it only if fn returns nil.
func (r *Bookings) Update(id string, fn func(*domain.Booking) error) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return domain.Booking{}, domain.Errorf(domain.CodeNotFound, "booking %s not found", id)
	}
	if err := fn(&b); err != nil {
		return domain.Booking{}, err
	}
	r.byID[id] = b
	return b, nil
}

func (r *Bookings) ForUser(userID string) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byUser[userID]
	out := make([]domain.Booking, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out
}
