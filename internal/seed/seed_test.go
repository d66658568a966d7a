package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotel_booking/internal/seed"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c, err := seed.Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.Hotels)

	ids := map[string]bool{}
	for _, h := range c.Hotels {
		require.False(t, ids[h.ID], "duplicate hotel id %s", h.ID)
		ids[h.ID] = true
		require.NotEmpty(t, h.Rooms, "hotel %s has no rooms", h.ID)
	}
	for _, r := range c.Reviews {
		require.True(t, ids[r.HotelID], "review %s points at unknown hotel", r.ID)
		require.GreaterOrEqual(t, r.Rating, 1)
		require.LessOrEqual(t, r.Rating, 5)
	}
}

func TestLastMinuteResolvesAgainstBoot(t *testing.T) {
	c, err := seed.Default()
	require.NoError(t, err)
	boot := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	lm := seed.LastMinute(c, boot)
	require.Len(t, lm, len(c.LastMinute))
	require.Equal(t, boot.Add(time.Duration(c.LastMinute[0].ExpiresInMinutes)*time.Minute), lm[0].ExpiresAt)
}

func TestSourceReadsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"hotels":[{"id":"x","name":"X","rooms":[]}]}`), 0o600))

	c, err := seed.Source{Path: p}.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Hotels, 1)

	_, err = seed.Source{Path: filepath.Join(t.TempDir(), "missing.json")}.LoadCatalog(context.Background())
	require.Error(t, err)
}
