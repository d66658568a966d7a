package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher sends JSON events on the subject the caller names, unchanged.
type NATSPublisher struct {
	conn conn
}

func NewNATS(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("hotel-booking-api"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	log.Debug().Str("subject", subject).Int("bytes", len(payload)).Msg("publishing event")
	return p.conn.Publish(subject, payload)
}

func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close() error                               { return nil }
