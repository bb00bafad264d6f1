package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SURGI_DATABASE_PASSWORD
const EnvPrefix = "SURGI"

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
	// DefaultCompany owns credit limit rows created by the facility assigner
	DefaultCompany string `mapstructure:"default_company"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres, sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	Path            string `mapstructure:"path"` // sqlite file path or ":memory:"
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	BalanceTTL time.Duration `mapstructure:"balance_ttl"` // how long a fetched balance is served from cache
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"`
	MaxBodySize       int64         `mapstructure:"max_body_size"`
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	RateLimitBurst    int           `mapstructure:"rate_limit_burst"`
	CORSAllowOrigins  []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods  []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders  []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies    []string      `mapstructure:"trusted_proxies"`
}

// RulesConfig holds the timing knobs of the credit and receipt rules
type RulesConfig struct {
	ReceiptDebounce time.Duration `mapstructure:"receipt_debounce"` // coalescing window for receipt line edits
	LookupTimeout   time.Duration `mapstructure:"lookup_timeout"`   // bound on each ledger lookup
	AdvisoryWait    time.Duration `mapstructure:"advisory_wait"`    // 0 waits for the lock lookup to resolve
	SessionTTL      time.Duration `mapstructure:"session_ttl"`      // idle expiry of document edit sessions
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
}

// TelemetryConfig holds OpenTelemetry metrics configuration
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"` // OTLP gRPC endpoint, e.g. localhost:4317
	ServiceName       string        `mapstructure:"service_name"`
	Insecure          bool          `mapstructure:"insecure"` // plaintext gRPC, development only
	ExportInterval    time.Duration `mapstructure:"export_interval"`
}

// defaults doubles as the list of keys viper resolves from the environment
var defaults = map[string]any{
	"app.name":            "surgishop-backend",
	"app.env":             "development",
	"app.port":            "8080",
	"app.default_company": "SurgiShop",

	"database.driver":             "postgres",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "surgishop",
	"database.sslmode":            "disable",
	"database.path":               "surgishop.db",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.enabled":     false,
	"redis.host":        "localhost",
	"redis.port":        6379,
	"redis.password":    "",
	"redis.db":          0,
	"redis.balance_ttl": 30 * time.Second,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":        15 * time.Second,
	"http.write_timeout":       15 * time.Second,
	"http.idle_timeout":        time.Minute,
	"http.max_header_bytes":    1 << 20,
	"http.max_body_size":       1 << 20,
	"http.rate_limit_enabled":  false,
	"http.rate_limit_requests": 100,
	"http.rate_limit_window":   time.Minute,
	"http.rate_limit_burst":    20,
	// no cross-origin requests until origins are configured
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},

	"rules.receipt_debounce": 150 * time.Millisecond,
	"rules.lookup_timeout":   5 * time.Second,
	"rules.advisory_wait":    2 * time.Second,
	"rules.session_ttl":      30 * time.Minute,
	"rules.sweep_interval":   time.Minute,

	"telemetry.enabled":            false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.service_name":       "surgishop-backend",
	"telemetry.insecure":           false,
	"telemetry.export_interval":    time.Minute,
}

// Load reads config.toml from the working directory or /app, then applies
// SURGI_ environment overrides on top of the built-in defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return errors.New("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns must be between 0 and max_open_conns (%d), got %d",
			c.Database.MaxOpenConns, c.Database.MaxIdleConns)
	}

	for name, d := range map[string]time.Duration{
		"rules.receipt_debounce": c.Rules.ReceiptDebounce,
		"rules.lookup_timeout":   c.Rules.LookupTimeout,
		"rules.advisory_wait":    c.Rules.AdvisoryWait,
		"rules.session_ttl":      c.Rules.SessionTTL,
	} {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	if c.HTTP.RateLimitEnabled && (c.HTTP.RateLimitRequests <= 0 || c.HTTP.RateLimitWindow <= 0) {
		return errors.New("http.rate_limit_requests and http.rate_limit_window must be positive when rate limiting is enabled")
	}

	if c.App.Env != "production" {
		return nil
	}
	switch {
	case c.Database.Driver == "sqlite":
		return errors.New("database.driver sqlite is not allowed in production")
	case c.Database.Password == "":
		return errors.New("database.password is required in production")
	case c.Database.SSLMode == "disable":
		return errors.New("database.sslmode cannot be 'disable' in production")
	case slices.Contains(c.HTTP.CORSAllowOrigins, "*"):
		return errors.New("http.cors_allow_origins cannot contain '*' in production")
	}
	return nil
}

// DSN returns the driver connection string; credentials are URL-escaped
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr returns the Redis host:port
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
