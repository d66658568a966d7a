// Package seed ships the default catalog a fresh process boots with.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"hotel_booking/internal/domain"
)

//go:embed catalog.json
var embedded []byte

// Source reads a catalog from a JSON file, or from the embedded fixture when Path is empty.
type Source struct {
	Path string
}

func (s Source) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	raw := embedded
	if s.Path != "" {
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

func Parse(raw []byte) (domain.Catalog, error) {
	var c domain.Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	for i, h := range c.Hotels {
		if h.ID == "" {
			return domain.Catalog{}, fmt.Errorf("hotel #%d has no id", i)
		}
	}
	return c, nil
}

// Default returns the embedded fixture.
func Default() (domain.Catalog, error) { return Parse(embedded) }

// LastMinute resolves relative expiries against boot.
func LastMinute(c domain.Catalog, boot time.Time) []domain.LastMinuteDeal {
	out := make([]domain.LastMinuteDeal, 0, len(c.LastMinute))
	for _, s := range c.LastMinute {
		out = append(out, s.At(boot))
	}
	return out
}
