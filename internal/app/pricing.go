package app

import "hotel_booking/internal/domain"

// PricingPolicy holds the server-side fee schedule. Amounts are whole currency units.
type PricingPolicy struct {
	ServiceFee int64
	TaxPercent int64
}

func (p PricingPolicy) Quote(nights int, roomPrice int64) domain.Pricing {
	subtotal := int64(nights) * roomPrice
	tax := (subtotal*p.TaxPercent + 50) / 100
	return domain.Pricing{
		Subtotal:   subtotal,
		ServiceFee: p.ServiceFee,
		Tax:        tax,
		Total:      subtotal + p.ServiceFee + tax,
	}
}
