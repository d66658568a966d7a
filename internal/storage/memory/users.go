package memory

import (
	"strings"
	"sync"

	"hotel_booking/internal/domain"
)

type Users struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // lowercased email -> id
}

func NewUsers() *Users {
	return &Users{byID: map[string]domain.User{}, byEmail: map[string]string{}}
}

func (r *Users) Create(u domain.User) error {
	key := strings.ToLower(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[key]; ok {
		return domain.ErrUserExists
	}
	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return nil
}

func (r *Users) ByID(id string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	return u, ok
}

func (r *Users) ByEmail(email string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, false
	}
	return r.byID[id], true
}

func (r *Users) UpdateSecret(id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.Errorf(domain.CodeNotFound, "user not found")
	}
	u.SecretHash = hash
	r.byID[id] = u
	return nil
}
