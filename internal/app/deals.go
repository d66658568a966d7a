package app

import (
	"context"
	"fmt"
	"time"

	"hotel_booking/internal/domain"
)

type DealsService struct {
	repo domain.DealRepository
	now  func() time.Time
}

func NewDealsService(r domain.DealRepository, now func() time.Time) *DealsService {
	return &DealsService{repo: r, now: now}
}

func (s *DealsService) Deals(ctx context.Context) []domain.Deal {
	now := s.now()
	out := []domain.Deal{}
	for _, d := range s.repo.Deals() {
		if d.Active(now) {
			out = append(out, d)
		}
	}
	return out
}

func (s *DealsService) Deal(ctx context.Context, id string) (domain.Deal, error) {
	for _, d := range s.Deals(ctx) {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Deal{}, domain.Errorf(domain.CodeNotFound, "deal %s not found", id)
}

func (s *DealsService) Trending(ctx context.Context) []domain.TrendingDestination {
	now := s.now()
	out := []domain.TrendingDestination{}
	for _, t := range s.repo.Trending() {
		if t.Active(now) {
			out = append(out, t)
		}
	}
	return out
}

func (s *DealsService) TrendingByID(ctx context.Context, id string) (domain.TrendingDestination, error) {
	for _, t := range s.Trending(ctx) {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.TrendingDestination{}, domain.Errorf(domain.CodeNotFound, "destination %s not found", id)
}

// LastMinute drops expired deals and derives the remaining time at read time.
func (s *DealsService) LastMinute(ctx context.Context) []domain.LastMinuteView {
	now := s.now()
	out := []domain.LastMinuteView{}
	for _, d := range s.repo.LastMinute() {
		if !d.ExpiresAt.After(now) {
			continue
		}
		out = append(out, domain.LastMinuteView{LastMinuteDeal: d, TimeRemaining: Remaining(d.ExpiresAt.Sub(now))})
	}
	return out
}

func (s *DealsService) LastMinuteByID(ctx context.Context, id string) (domain.LastMinuteView, error) {
	for _, d := range s.LastMinute(ctx) {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.LastMinuteView{}, domain.Errorf(domain.CodeNotFound, "last-minute deal %s not found", id)
}

// Remaining formats d as "<H>h <M>m", truncating to whole minutes.
func Remaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", h, m)
}
