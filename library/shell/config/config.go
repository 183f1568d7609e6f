package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
)

// Supported values for Database.Adapter.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLXDB  = "sqlx.db"
	AdapterMemory  = "memory"
)

const (
	defaultHTTPAddr   = ":5000"
	defaultCORSOrigin = "http://localhost:3000"
	defaultLogLevel   = "info"
	defaultTableName  = "events"
	defaultTokenTTL   = 24
	defaultSMTPPort   = 587

	defaultRetryMaxAttempts  = 6
	defaultRetryBaseDelayMS  = 10
	defaultRetryJitterFactor = 0.3

	defaultNoticeSweepSeconds = 60

	defaultServiceName          = "biblioteca"
	defaultMetricsExportSeconds = 15
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")

	ErrMissingDatabaseURL  = errors.New("DATABASE_URL is required for a postgres adapter")
	ErrUnknownDBAdapter    = errors.New("unknown DB_ADAPTER")
	ErrMissingJWTSecretKey = errors.New("JWT_SECRET_KEY is required")
	ErrInvalidPolicy       = errors.New("loan policy values must be positive")
	ErrInvalidRetry        = errors.New("retry needs max_attempts > 0, base_delay_ms >= 0 and jitter_factor in [0, 1]")
	ErrInvalidSweep        = errors.New("notifications sweep_interval_seconds must be positive")
)

// Config is the complete service configuration.
type Config struct {
	HTTPAddr   string   `toml:"http_addr"`
	CORSOrigin string   `toml:"cors_origin"`
	LogLevel   string   `toml:"log_level"`
	Database   Database `toml:"database"`
	Auth       Auth     `toml:"auth"`
	SMTP       SMTP     `toml:"smtp"`
	Policy     Policy   `toml:"policy"`

	Retry         Retry         `toml:"retry"`
	Notifications Notifications `toml:"notifications"`
	Observability Observability `toml:"observability"`
}

// Retry configures the backoff of command handlers after concurrency conflicts.
type Retry struct {
	MaxAttempts  int     `toml:"max_attempts"`
	BaseDelayMS  int     `toml:"base_delay_ms"`
	JitterFactor float64 `toml:"jitter_factor"`
}

// Options turns the configured values into retry options for the command handlers.
func (r Retry) Options() []shell.RetryOption {
	return []shell.RetryOption{
		shell.WithMaxAttempts(r.MaxAttempts),
		shell.WithBaseDelay(time.Duration(r.BaseDelayMS) * time.Millisecond),
		shell.WithJitterFactor(r.JitterFactor),
	}
}

// Notifications configures the sweep that tells readers about holds promoted by expiry.
type Notifications struct {
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
}

// SweepInterval is the time between two sweeps.
func (n Notifications) SweepInterval() time.Duration {
	return time.Duration(n.SweepIntervalSeconds) * time.Second
}

// Observability configures the OpenTelemetry exporters. An empty OTLPEndpoint disables exporting.
type Observability struct {
	OTLPEndpoint         string `toml:"otlp_endpoint"`
	ServiceName          string `toml:"service_name"`
	Insecure             bool   `toml:"insecure"`
	MetricsExportSeconds int    `toml:"metrics_export_seconds"`
}

// Enabled is true when telemetry is exported.
func (o Observability) Enabled() bool {
	return strings.TrimSpace(o.OTLPEndpoint) != ""
}

// Database selects the event store engine and its connections.
type Database struct {
	URL        string `toml:"url"`
	ReplicaURL string `toml:"replica_url"`
	Adapter    string `toml:"adapter"`
	TableName  string `toml:"table_name"`
}

// Auth configures token signing.
type Auth struct {
	JWTSecretKey  string `toml:"jwt_secret_key"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// TokenTTL is the lifetime of an access token.
func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// SMTP configures outgoing mail. An empty Host disables sending.
type SMTP struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	User string `toml:"user"`
	Pass string `toml:"pass"`
	From string `toml:"from"`
}

// Enabled is true when mails can be sent.
func (s SMTP) Enabled() bool {
	return strings.TrimSpace(s.Host) != ""
}

// Policy holds the circulation rules in configuration units.
type Policy struct {
	LoanPeriodDays        int     `toml:"loan_period_days"`
	MaxRenewals           int     `toml:"max_renewals"`
	FinePerDay            float64 `toml:"fine_per_day"`
	PickupWindowDays      int     `toml:"pickup_window_days"`
	MaxBooksOut           int     `toml:"max_books_out"`
	MaxActiveReservations int     `toml:"max_active_reservations"`
	DueSoonDays           int     `toml:"due_soon_days"`
}

// ToCore converts the configured values into the domain policy.
func (p Policy) ToCore() core.Policy {
	const day = 24 * time.Hour

	return core.Policy{
		LoanPeriod:            time.Duration(p.LoanPeriodDays) * day,
		MaxRenewals:           p.MaxRenewals,
		FinePerDay:            p.FinePerDay,
		PickupWindow:          time.Duration(p.PickupWindowDays) * day,
		MaxBooksOut:           p.MaxBooksOut,
		MaxActiveReservations: p.MaxActiveReservations,
		DueSoonThreshold:      time.Duration(p.DueSoonDays) * day,
	}
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	policy := core.DefaultPolicy()
	const day = 24 * time.Hour

	return Config{
		HTTPAddr:   defaultHTTPAddr,
		CORSOrigin: defaultCORSOrigin,
		LogLevel:   defaultLogLevel,
		Database: Database{
			Adapter:   AdapterPGXPool,
			TableName: defaultTableName,
		},
		Auth: Auth{TokenTTLHours: defaultTokenTTL},
		SMTP: SMTP{Port: defaultSMTPPort},
		Policy: Policy{
			LoanPeriodDays:        int(policy.LoanPeriod / day),
			MaxRenewals:           policy.MaxRenewals,
			FinePerDay:            policy.FinePerDay,
			PickupWindowDays:      int(policy.PickupWindow / day),
			MaxBooksOut:           policy.MaxBooksOut,
			MaxActiveReservations: policy.MaxActiveReservations,
			DueSoonDays:           int(policy.DueSoonThreshold / day),
		},
		Retry: Retry{
			MaxAttempts:  defaultRetryMaxAttempts,
			BaseDelayMS:  defaultRetryBaseDelayMS,
			JitterFactor: defaultRetryJitterFactor,
		},
		Notifications: Notifications{SweepIntervalSeconds: defaultNoticeSweepSeconds},
		Observability: Observability{
			ServiceName:          defaultServiceName,
			Insecure:             true,
			MetricsExportSeconds: defaultMetricsExportSeconds,
		},
	}
}

// Load builds the configuration from the defaults, the TOML file at configPath (skipped if empty),
// the .env file at dotEnvPath (skipped if empty or missing) and the environment.
func Load(configPath string, dotEnvPath string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(configPath) != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		if err = toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if strings.TrimSpace(dotEnvPath) != "" {
		if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotEnvPath, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values the service cannot start without.
func (c Config) Validate() error {
	var errs []error

	switch c.Database.Adapter {
	case AdapterPGXPool, AdapterSQLDB, AdapterSQLXDB:
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, ErrMissingDatabaseURL)
		}
	case AdapterMemory:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDBAdapter, c.Database.Adapter))
	}

	if strings.TrimSpace(c.Auth.JWTSecretKey) == "" {
		errs = append(errs, ErrMissingJWTSecretKey)
	}

	p := c.Policy
	if p.LoanPeriodDays <= 0 || p.PickupWindowDays <= 0 || p.MaxBooksOut <= 0 ||
		p.MaxActiveReservations <= 0 || p.FinePerDay < 0 || p.MaxRenewals < 0 {

		errs = append(errs, ErrInvalidPolicy)
	}

	r := c.Retry
	if r.MaxAttempts <= 0 || r.BaseDelayMS < 0 || r.JitterFactor < 0 || r.JitterFactor > 1 {
		errs = append(errs, ErrInvalidRetry)
	}

	if c.Notifications.SweepIntervalSeconds <= 0 {
		errs = append(errs, ErrInvalidSweep)
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.CORSOrigin, "CORS_ORIGIN")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.ReplicaURL, "DATABASE_REPLICA_URL")
	setString(&cfg.Database.Adapter, "DB_ADAPTER")
	setString(&cfg.Database.TableName, "EVENTS_TABLE")

	setString(&cfg.Auth.JWTSecretKey, "JWT_SECRET_KEY")

	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setString(&cfg.SMTP.User, "SMTP_USER")
	setString(&cfg.SMTP.Pass, "SMTP_PASS")
	setString(&cfg.SMTP.From, "SMTP_FROM")

	setString(&cfg.Observability.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Observability.ServiceName, "OTEL_SERVICE_NAME")

	return errors.Join(
		setInt(&cfg.Auth.TokenTTLHours, "TOKEN_TTL_HOURS"),
		setInt(&cfg.SMTP.Port, "SMTP_PORT"),
		setInt(&cfg.Policy.LoanPeriodDays, "LOAN_PERIOD_DAYS"),
		setInt(&cfg.Policy.MaxRenewals, "MAX_RENEWALS"),
		setFloat(&cfg.Policy.FinePerDay, "FINE_PER_DAY"),
		setInt(&cfg.Policy.PickupWindowDays, "PICKUP_WINDOW_DAYS"),
		setInt(&cfg.Policy.MaxBooksOut, "MAX_BOOKS_OUT"),
		setInt(&cfg.Policy.MaxActiveReservations, "MAX_ACTIVE_RESERVATIONS"),
		setInt(&cfg.Policy.DueSoonDays, "DUE_SOON_DAYS"),
		setInt(&cfg.Retry.MaxAttempts, "RETRY_MAX_ATTEMPTS"),
		setInt(&cfg.Retry.BaseDelayMS, "RETRY_BASE_DELAY_MS"),
		setFloat(&cfg.Retry.JitterFactor, "RETRY_JITTER_FACTOR"),
		setInt(&cfg.Notifications.SweepIntervalSeconds, "NOTICE_SWEEP_SECONDS"),
		setBool(&cfg.Observability.Insecure, "OTEL_EXPORTER_OTLP_INSECURE"),
	)
}

func setString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func setInt(target *int, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	*target = parsed

	return nil
}

func setFloat(target *float64, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	*target = parsed

	return nil
}

func setBool(target *bool, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	*target = parsed

	return nil
}
