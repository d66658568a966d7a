package memory

import (
	"sync"

	"hotel_booking/internal/domain"
)

type Sessions struct {
	mu        sync.Mutex
	byToken   map[string]domain.Session
	byRefresh map[string]string // refresh -> token
	resets    map[string]domain.ResetToken
}

func NewSessions() *Sessions {
	return &Sessions{
		byToken:   map[string]domain.Session{},
		byRefresh: map[string]string{},
		resets:    map[string]domain.ResetToken{},
	}
}

func (r *Sessions) Put(s domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byToken[s.Token] = s
	r.byRefresh[s.RefreshToken] = s.Token
}

func (r *Sessions) ByToken(token string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byToken[token]
	return s, ok
}

func (r *Sessions) ByRefresh(refresh string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tok, ok := r.byRefresh[refresh]
	if !ok {
		return domain.Session{}, false
	}
	s, ok := r.byToken[tok]
	return s, ok
}

func (r *Sessions) Delete(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byToken[token]
	if !ok {
		return false
	}
	delete(r.byToken, token)
	delete(r.byRefresh, s.RefreshToken)
	return true
}

func (r *Sessions) DeleteForUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for tok, s := range r.byToken {
		if s.UserID == userID {
			delete(r.byToken, tok)
			delete(r.byRefresh, s.RefreshToken)
			n++
		}
	}
	return n
}

func (r *Sessions) PutReset(t domain.ResetToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets[t.Token] = t
}

// TakeReset removes and returns the reset token, so each grant is used once.
func (r *Sessions) TakeReset(token string) (domain.ResetToken, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.resets[token]
	if ok {
		delete(r.resets, token)
	}
	return t, ok
}
