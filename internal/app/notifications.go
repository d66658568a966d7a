package app

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type NotificationService struct {
	repo domain.NotificationRepository
	pub  domain.Publisher // optional
	now  func() time.Time
}

func NewNotificationService(r domain.NotificationRepository, p domain.Publisher, now func() time.Time) *NotificationService {
	return &NotificationService{repo: r, pub: p, now: now}
}

type NotificationList struct {
	domain.Page[domain.Notification]
	UnreadCount int
}

func (s *NotificationService) Append(ctx context.Context, userID, typ, title, message string, data map[string]any) (domain.Notification, error) {
	if userID == "" || typ == "" {
		return domain.Notification{}, domain.Errorf(domain.CodeValidation, "userId and type are required")
	}
	n := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
		Data:      data,
	}
	s.repo.Insert(n)
	if s.pub != nil {
		if err := s.pub.Publish(ctx, "notifications."+typ, n); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID).Msg("notification publish failed")
		}
	}
	return n, nil
}

// Emit appends a notification on behalf of another operation. A failure is logged,
// never returned, so the operation that triggered it still succeeds.
func (s *NotificationService) Emit(ctx context.Context, userID, typ, title, message string, data map[string]any) {
	if _, err := s.Append(ctx, userID, typ, title, message, data); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("type", typ).Msg("notification append failed")
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, pg domain.PageQuery) NotificationList {
	all := s.repo.ForUser(userID)
	unread := 0
	items := make([]domain.Notification, 0, len(all))
	// newest first: the repository returns insertion order
	for i := len(all) - 1; i >= 0; i-- {
		n := all[i]
		if !n.Read {
			unread++
		} else if unreadOnly {
			continue
		}
		items = append(items, n)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return NotificationList{Page: domain.Paginate(items, pg), UnreadCount: unread}
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (domain.Notification, error) {
	n, ok := s.repo.ByID(id)
	if !ok {
		return domain.Notification{}, domain.Errorf(domain.CodeNotFound, "notification %s not found", id)
	}
	if n.UserID != userID {
		return domain.Notification{}, domain.ErrForbidden
	}
	s.repo.MarkRead(id)
	n.Read = true
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) int {
	return s.repo.MarkAllRead(userID)
}
