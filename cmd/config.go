package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	SnapshotSourceFile     = "file"
	SnapshotSourcePostgres = "postgres"

	// ScheduleDisabled turns a background job off.
	ScheduleDisabled = "off"
)

type Config struct {
	HTTPPort string
	AppEnv   string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SnapshotSource          string
	SnapshotFile            string
	SnapshotRefreshSchedule string
	CacheSweepSchedule      string

	TaxRatePercent  decimal.Decimal
	DomesticCountry string
	WorkerLimit     int
	QuoteCacheTTL   time.Duration
}

// LoadConfig reads the configuration from the environment. Keys are the
// upper-case names, e.g. HTTP_PORT or SNAPSHOT_SOURCE.
func LoadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SNAPSHOT_SOURCE", SnapshotSourceFile)
	v.SetDefault("SNAPSHOT_FILE", "configs/pricing.yaml")
	v.SetDefault("SNAPSHOT_REFRESH_SCHEDULE", "@every 1m")
	v.SetDefault("CACHE_SWEEP_SCHEDULE", "@every 5m")
	v.SetDefault("TAX_RATE_PERCENT", "23")
	v.SetDefault("DOMESTIC_COUNTRY", "PL")
	v.SetDefault("WORKER_LIMIT", 8)
	v.SetDefault("QUOTE_CACHE_TTL", "5m")
	v.AutomaticEnv()

	taxRate, err := decimal.NewFromString(v.GetString("TAX_RATE_PERCENT"))
	if err != nil {
		return Config{}, fmt.Errorf("TAX_RATE_PERCENT: %w", err)
	}

	cfg := Config{
		HTTPPort:                v.GetString("HTTP_PORT"),
		AppEnv:                  strings.ToLower(v.GetString("APP_ENV")),
		LogLevel:                v.GetString("LOG_LEVEL"),
		DBHost:                  v.GetString("DB_HOST"),
		DBPort:                  v.GetString("DB_PORT"),
		DBUser:                  v.GetString("DB_USER"),
		DBPassword:              v.GetString("DB_PASSWORD"),
		DBName:                  v.GetString("DB_NAME"),
		DBSslMode:               v.GetString("DB_SSLMODE"),
		SnapshotSource:          strings.ToLower(v.GetString("SNAPSHOT_SOURCE")),
		SnapshotFile:            v.GetString("SNAPSHOT_FILE"),
		SnapshotRefreshSchedule: v.GetString("SNAPSHOT_REFRESH_SCHEDULE"),
		CacheSweepSchedule:      v.GetString("CACHE_SWEEP_SCHEDULE"),
		TaxRatePercent:          taxRate,
		DomesticCountry:         strings.ToUpper(v.GetString("DOMESTIC_COUNTRY")),
		WorkerLimit:             v.GetInt("WORKER_LIMIT"),
		QuoteCacheTTL:           v.GetDuration("QUOTE_CACHE_TTL"),
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []error
	switch c.SnapshotSource {
	case SnapshotSourceFile:
		if c.SnapshotFile == "" {
			problems = append(problems, errors.New("SNAPSHOT_FILE is required for the file source"))
		}
	case SnapshotSourcePostgres:
		if c.DBName == "" || c.DBUser == "" {
			problems = append(problems, errors.New("DB_NAME and DB_USER are required for the postgres source"))
		}
	default:
		problems = append(problems, fmt.Errorf("SNAPSHOT_SOURCE %q must be %s or %s",
			c.SnapshotSource, SnapshotSourceFile, SnapshotSourcePostgres))
	}
	if c.TaxRatePercent.IsNegative() || c.TaxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		problems = append(problems, fmt.Errorf("TAX_RATE_PERCENT %s is out of range", c.TaxRatePercent))
	}
	if len(c.DomesticCountry) != 2 {
		problems = append(problems, fmt.Errorf("DOMESTIC_COUNTRY %q is not an ISO country code", c.DomesticCountry))
	}
	if c.WorkerLimit <= 0 {
		problems = append(problems, errors.New("WORKER_LIMIT must be positive"))
	}
	if c.QuoteCacheTTL < 0 {
		problems = append(problems, errors.New("QUOTE_CACHE_TTL must not be negative"))
	}
	return errors.Join(problems...)
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

// NewLogger builds the root logger: JSON in production, text elsewhere.
// Unknown levels fall back to info.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
