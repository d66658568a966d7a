package memory

import "hotel_booking/internal/domain"

// Deals is read-only after construction.
type Deals struct {
	deals      []domain.Deal
	trending   []domain.TrendingDestination
	lastMinute []domain.LastMinuteDeal
}

func NewDeals(d []domain.Deal, t []domain.TrendingDestination, lm []domain.LastMinuteDeal) *Deals {
	return &Deals{deals: d, trending: t, lastMinute: lm}
}

func (r *Deals) Deals() []domain.Deal {
	return append([]domain.Deal(nil), r.deals...)
}

func (r *Deals) Trending() []domain.TrendingDestination {
	return append([]domain.TrendingDestination(nil), r.trending...)
}

func (r *Deals) LastMinute() []domain.LastMinuteDeal {
	return append([]domain.LastMinuteDeal(nil), r.lastMinute...)
}
