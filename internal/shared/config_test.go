package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SERVICE_FEE", "")

	c := Load()
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, int64(5000), c.ServiceFee)
	assert.Equal(t, int64(10), c.TaxPercent)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, time.Hour, c.ResetTTL)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
}

func TestLoad_EnvThenFileOverlay(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Cleanup(func() { _ = os.Unsetenv("HTTP_ADDR") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_ADDR=:7000\n"), 0o600))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
service_fee: 7500
session_ttl_hours: 2
cors_origins: ["https://app.example.com"]
`), 0o600))

	t.Setenv("CONFIG_FILE", cfgPath)
	t.Setenv("SERVICE_FEE", "6000")
	t.Setenv("TAX_RATE_PERCENT", "14")
	t.Setenv("CORS_ORIGINS", "")

	c := Load()
	assert.Equal(t, ":7000", c.HTTPAddr, ".env value")
	assert.Equal(t, int64(14), c.TaxPercent, "env value")
	assert.Equal(t, int64(7500), c.ServiceFee, "file wins over env")
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
	assert.Equal(t, []string{"https://app.example.com"}, c.CORSOrigins)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
