package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string `yaml:"app_env"`
	HTTPAddr    string `yaml:"http_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	MySQLDSN    string `yaml:"mysql_dsn"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisDB     int    `yaml:"redis_db"`
	RedisPass   string `yaml:"redis_password"`
	NATSURL     string `yaml:"nats_url"`

	CacheTTL       time.Duration `yaml:"-"`
	SessionTTL     time.Duration `yaml:"-"`
	ResetTTL       time.Duration `yaml:"-"`
	RequestTimeout time.Duration `yaml:"-"`

	ServiceFee int64 `yaml:"service_fee"`
	TaxPercent int64 `yaml:"tax_rate_percent"`

	AuthRPS     float64  `yaml:"auth_rate_rps"`
	AuthBurst   int      `yaml:"auth_rate_burst"`
	CORSOrigins []string `yaml:"cors_origins"`

	FeedBase    string `yaml:"feed_base_url"`
	FeedKey     string `yaml:"feed_api_key"`
	SeedFile    string `yaml:"seed_file"`
	SeedWorkers int    `yaml:"seed_workers"`
}

// durations is the YAML shape of the duration settings, in whole units.
type durations struct {
	CacheTTLSeconds       int `yaml:"cache_ttl_seconds"`
	SessionTTLHours       int `yaml:"session_ttl_hours"`
	ResetTokenTTLMinutes  int `yaml:"reset_token_ttl_minutes"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// Load reads .env (if present), then the environment, then the YAML file named by CONFIG_FILE.
// Values in the file win over the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		NATSURL:     env("NATS_URL", ""),
		ServiceFee:  int64(atoi("SERVICE_FEE", 5000)),
		TaxPercent:  int64(atoi("TAX_RATE_PERCENT", 10)),
		AuthRPS:     atof("AUTH_RATE_RPS", 1),
		AuthBurst:   atoi("AUTH_RATE_BURST", 5),
		CORSOrigins: splitList(env("CORS_ORIGINS", "*")),
		FeedBase:    env("FEED_BASE_URL", ""),
		FeedKey:     env("FEED_API_KEY", ""),
		SeedFile:    env("SEED_FILE", ""),
		SeedWorkers: atoi("SEED_WORKERS", 8),
	}
	d := durations{
		CacheTTLSeconds:       atoi("CACHE_TTL_SECONDS", 900),
		SessionTTLHours:       atoi("SESSION_TTL_HOURS", 24),
		ResetTokenTTLMinutes:  atoi("RESET_TOKEN_TTL_MINUTES", 60),
		RequestTimeoutSeconds: atoi("REQUEST_TIMEOUT_SECONDS", 15),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlay(path, &c, &d); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("config file")
		}
	}
	c.CacheTTL = time.Duration(d.CacheTTLSeconds) * time.Second
	c.SessionTTL = time.Duration(d.SessionTTLHours) * time.Hour
	c.ResetTTL = time.Duration(d.ResetTokenTTLMinutes) * time.Minute
	c.RequestTimeout = time.Duration(d.RequestTimeoutSeconds) * time.Second

	if c.MySQLDSN == "" {
		log.Info().Msg("MYSQL_DSN is empty, catalog boots from the embedded fixture")
	}
	return c
}

// overlay decodes the YAML file twice, once per target, so only keys present in the file change.
func overlay(path string, c *Config, d *durations) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := yaml.Unmarshal(b, d); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
