package memory

import (
	"sync"

	"hotel_booking/internal/domain"
)

type Notifications struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Notification
	byUser map[string][]*domain.Notification
}

func NewNotifications() *Notifications {
	return &Notifications{byID: map[string]*domain.Notification{}, byUser: map[string][]*domain.Notification{}}
}

func (r *Notifications) Insert(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &n
	r.byID[n.ID] = p
	r.byUser[n.UserID] = append(r.byUser[n.UserID], p)
}

func (r *Notifications) ByID(id string) (domain.Notification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return domain.Notification{}, false
	}
	return *p, true
}

// ForUser returns notifications in insertion order.
func (r *Notifications) ForUser(userID string) []domain.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byUser[userID]
	out := make([]domain.Notification, len(list))
	for i, p := range list {
		out[i] = *p
	}
	return out
}

func (r *Notifications) MarkRead(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return false
	}
	p.Read = true
	return true
}

func (r *Notifications) MarkAllRead(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.byUser[userID] {
		if !p.Read {
			p.Read = true
			n++
		}
	}
	return n
}
