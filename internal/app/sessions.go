package app

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type SessionService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	hasher   domain.PasswordHasher
	ttl      time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewSessionService(u domain.UserRepository, s domain.SessionRepository, h domain.PasswordHasher, ttl, resetTTL time.Duration, now func() time.Time) *SessionService {
	return &SessionService{users: u, sessions: s, hasher: h, ttl: ttl, resetTTL: resetTTL, now: now}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResult struct {
	User         domain.PublicUser `json:"user"`
	Token        string            `json:"token"`
	RefreshToken string            `json:"refreshToken"`
	ExpiresAt    time.Time         `json:"expiresAt"`
}

func (s *SessionService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return AuthResult{}, domain.Errorf(domain.CodeValidation, "name, email, phone and password are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return AuthResult{}, domain.Errorf(domain.CodeValidation, "email is invalid")
	}
	if _, taken := s.users.ByEmail(in.Email); taken {
		return AuthResult{}, domain.ErrUserExists
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, err
	}
	u := domain.User{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		SecretHash:  hash,
		Preferences: domain.Preferences{Language: "pt", Currency: "AOA", NotificationsEnabled: true},
		CreatedAt:   s.now(),
	}
	// Create re-checks the email under the repository lock.
	if err := s.users.Create(u); err != nil {
		return AuthResult{}, err
	}
	log.Info().Str("user_id", u.ID).Msg("user registered")
	return s.issue(u), nil
}

func (s *SessionService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthResult{}, domain.Errorf(domain.CodeValidation, "email and password are required")
	}
	u, ok := s.users.ByEmail(email)
	if !ok {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	match, err := s.hasher.Compare(password, u.SecretHash)
	if err != nil {
		return AuthResult{}, err
	}
	if !match {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	return s.issue(u), nil
}

// Logout destroys the session behind token. An unknown token means it is already gone.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrUnauthorized
	}
	s.sessions.Delete(token)
	return nil
}

// Refresh rotates the pair: the old token and refresh token stop working.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if refreshToken == "" {
		return AuthResult{}, domain.Errorf(domain.CodeValidation, "refreshToken is required")
	}
	old, ok := s.sessions.ByRefresh(refreshToken)
	if !ok || !s.sessions.Delete(old.Token) {
		return AuthResult{}, domain.ErrInvalidToken
	}
	u, ok := s.users.ByID(old.UserID)
	if !ok {
		return AuthResult{}, domain.ErrInvalidToken
	}
	return s.issue(u), nil
}

// Resolve returns the user id owning a live token.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	sess, ok := s.sessions.ByToken(token)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	// an expired session stays stored so its refresh token can still rotate it
	if sess.Expired(s.now()) {
		return "", domain.ErrUnauthorized
	}
	return sess.UserID, nil
}

func (s *SessionService) Me(ctx context.Context, userID string) (domain.PublicUser, error) {
	u, ok := s.users.ByID(userID)
	if !ok {
		return domain.PublicUser{}, domain.ErrUnauthorized
	}
	return u.Public(), nil
}

// DisplayName is used to label reviews.
func (s *SessionService) DisplayName(userID string) string {
	if u, ok := s.users.ByID(userID); ok {
		return u.Name
	}
	return ""
}

// ForgotPassword never reveals whether the email exists. The token is empty for unknown emails.
func (s *SessionService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.Errorf(domain.CodeValidation, "email is required")
	}
	u, ok := s.users.ByEmail(email)
	if !ok {
		return "", nil
	}
	t := domain.ResetToken{Token: uuid.NewString(), UserID: u.ID, ExpiresAt: s.now().Add(s.resetTTL)}
	s.sessions.PutReset(t)
	log.Info().Str("user_id", u.ID).Msg("password reset issued")
	return t.Token, nil
}

func (s *SessionService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return domain.Errorf(domain.CodeValidation, "token and password are required")
	}
	t, ok := s.sessions.TakeReset(token)
	if !ok || !s.now().Before(t.ExpiresAt) {
		return domain.ErrInvalidToken
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdateSecret(t.UserID, hash); err != nil {
		return domain.ErrInvalidToken
	}
	n := s.sessions.DeleteForUser(t.UserID)
	log.Info().Str("user_id", t.UserID).Int("revoked_sessions", n).Msg("password reset")
	return nil
}

func (s *SessionService) issue(u domain.User) AuthResult {
	sess := domain.Session{
		Token:        uuid.NewString(),
		RefreshToken: uuid.NewString(),
		UserID:       u.ID,
		ExpiresAt:    s.now().Add(s.ttl),
	}
	s.sessions.Put(sess)
	return AuthResult{User: u.Public(), Token: sess.Token, RefreshToken: sess.RefreshToken, ExpiresAt: sess.ExpiresAt}
}
