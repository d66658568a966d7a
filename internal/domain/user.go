package domain

import "time"

type Preferences struct {
	Language             string `json:"language"`
	Currency             string `json:"currency"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

type User struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	SecretHash  string
	Avatar      string
	Preferences Preferences
	CreatedAt   time.Time
}

// PublicUser is the view of a user that leaves the engine.
type PublicUser struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Avatar      string      `json:"avatar,omitempty"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Avatar:      u.Avatar,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
	}
}

type Session struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	UserID       string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// ResetToken is a single-use password reset grant.
type ResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
