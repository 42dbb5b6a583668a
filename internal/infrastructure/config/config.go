package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// Supported storage drivers
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Default session keys are only acceptable outside production.
const (
	defaultSessionAuthKey = "pimify-dev-session-authentication-key-change-me"
	defaultSessionEncKey  = "pimify-dev-enc-key-32-bytes-long"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Storage   StorageConfig
	Exchange  ExchangeConfig
	APIKey    APIKeyConfig
	Log       LogConfig
	Telemetry TelemetryConfig
	Docs      DocsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name      string
	Env       string
	Debug     bool
	SecretKey string
	Domain    string // allowed host, also used as the default CORS origin
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	MaxHeaderBytes     int
	MaxBodySize        int64
	RateLimit          RateLimitConfig
	CORSAllowedOrigins []string
	TrustedProxies     []string
}

// RateLimitConfig holds the per-second request budgets
type RateLimitConfig struct {
	Enabled bool
	AnonRPS int // per client IP
	AuthRPS int // per API key or staff user
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres, sqlite, mysql
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	Path            string // sqlite file path or ":memory:"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
	AutoMigrate     bool
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port for the redis client
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig holds staff session cookie settings
type SessionConfig struct {
	CookieName  string
	MaxAge      int // seconds
	Secure      bool
	AuthKey     string
	EncKey      string
	CSRFEnabled bool
}

// StorageConfig holds object storage settings for product images
type StorageConfig struct {
	Driver    string // local, s3
	MediaRoot string
	MediaURL  string
	S3        S3Config
}

// S3Config holds S3 (or MinIO) connection settings
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignExpiry   time.Duration
}

// ExchangeConfig holds exchange-rate provider settings
type ExchangeConfig struct {
	AppID        string
	BaseCurrency string
	URL          string
	CacheTTL     time.Duration
	Timeout      time.Duration
}

// APIKeyConfig holds API key issuing settings
type APIKeyConfig struct {
	Prefix      string
	MaxAttempts int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string
	Insecure          bool // Use insecure (non-TLS) connection (development only)
	MetricsEnabled    bool
	LogsEnabled       bool
	ProfilingEnabled  bool
	PyroscopeAddress  string
	DBSlowQueryThresh time.Duration
}

// DocsConfig holds API documentation settings
type DocsConfig struct {
	Enabled    bool
	AllowedIPs []string // IPs or CIDRs; empty allows every staff client
}

// Load loads configuration from .env, config.toml and environment variables
// Priority (highest to lowest):
// 1. Environment variables with PIM_ prefix (e.g., PIM_DATABASE_PASSWORD)
// 2. .env file (loaded into the environment without overriding it)
// 3. config.toml
// 4. Built-in defaults
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setBoolDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:      v.GetString("app.name"),
			Env:       v.GetString("app.env"),
			Debug:     v.GetBool("app.debug"),
			SecretKey: v.GetString("app.secret_key"),
			Domain:    v.GetString("app.domain"),
		},
		HTTP: HTTPConfig{
			Port:           v.GetString("http.port"),
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			RateLimit: RateLimitConfig{
				Enabled: v.GetBool("http.rate_limit.enabled"),
				AnonRPS: v.GetInt("http.rate_limit.anon_rps"),
				AuthRPS: v.GetInt("http.rate_limit.auth_rps"),
			},
			CORSAllowedOrigins: v.GetStringSlice("http.cors_allowed_origins"),
			TrustedProxies:     v.GetStringSlice("http.trusted_proxies"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.ssl_mode"),
			Path:            v.GetString("database.path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Session: SessionConfig{
			CookieName:  v.GetString("session.cookie_name"),
			MaxAge:      v.GetInt("session.max_age"),
			Secure:      v.GetBool("session.secure"),
			AuthKey:     v.GetString("session.auth_key"),
			EncKey:      v.GetString("session.enc_key"),
			CSRFEnabled: v.GetBool("session.csrf_enabled"),
		},
		Storage: StorageConfig{
			Driver:    v.GetString("storage.driver"),
			MediaRoot: v.GetString("storage.media_root"),
			MediaURL:  v.GetString("storage.media_url"),
			S3: S3Config{
				Endpoint:        v.GetString("storage.s3.endpoint"),
				Region:          v.GetString("storage.s3.region"),
				Bucket:          v.GetString("storage.s3.bucket"),
				AccessKeyID:     v.GetString("storage.s3.access_key_id"),
				SecretAccessKey: v.GetString("storage.s3.secret_access_key"),
				UsePathStyle:    v.GetBool("storage.s3.use_path_style"),
				PresignExpiry:   v.GetDuration("storage.s3.presign_expiry"),
			},
		},
		Exchange: ExchangeConfig{
			AppID:        v.GetString("exchange.app_id"),
			BaseCurrency: v.GetString("exchange.base_currency"),
			URL:          v.GetString("exchange.url"),
			CacheTTL:     v.GetDuration("exchange.cache_ttl"),
			Timeout:      v.GetDuration("exchange.timeout"),
		},
		APIKey: APIKeyConfig{
			Prefix:      v.GetString("api_key.prefix"),
			MaxAttempts: v.GetInt("api_key.max_attempts"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			PyroscopeAddress:  v.GetString("telemetry.pyroscope_address"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
		Docs: DocsConfig{
			Enabled:    v.GetBool("docs.enabled"),
			AllowedIPs: v.GetStringSlice("docs.allowed_ips"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setBoolDefaults registers defaults for flags that are on unless switched off,
// since a zero bool cannot be told apart from an explicit false afterwards.
func setBoolDefaults(v *viper.Viper) {
	v.SetDefault("http.rate_limit.enabled", true)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("docs.enabled", true)
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pimify"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.SecretKey == "" && cfg.App.Env != "production" {
		cfg.App.SecretKey = "pimify-development-secret-key-not-for-production"
	}
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = "8000"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB, enough for image uploads
	}
	if cfg.HTTP.RateLimit.AnonRPS == 0 {
		cfg.HTTP.RateLimit.AnonRPS = 10
	}
	if cfg.HTTP.RateLimit.AuthRPS == 0 {
		cfg.HTTP.RateLimit.AuthRPS = 100
	}
	// No wildcard fallback: cross-origin requests are refused until configured.
	if len(cfg.HTTP.CORSAllowedOrigins) == 0 && cfg.App.Domain != "" {
		cfg.HTTP.CORSAllowedOrigins = []string{"https://" + cfg.App.Domain}
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		switch cfg.Database.Driver {
		case DriverMySQL:
			cfg.Database.Port = 3306
		default:
			cfg.Database.Port = 5432
		}
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "pimify"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "pimify.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "pimify_session"
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = 14 * 24 * 3600 // two weeks
	}
	if cfg.Session.AuthKey == "" {
		cfg.Session.AuthKey = defaultSessionAuthKey
	}
	if cfg.Session.EncKey == "" {
		cfg.Session.EncKey = defaultSessionEncKey
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageLocal
	}
	if cfg.Storage.MediaRoot == "" {
		cfg.Storage.MediaRoot = "media"
	}
	if cfg.Storage.MediaURL == "" {
		cfg.Storage.MediaURL = "/media/"
	}
	if cfg.Storage.S3.Region == "" {
		cfg.Storage.S3.Region = "us-east-1"
	}
	if cfg.Storage.S3.PresignExpiry == 0 {
		cfg.Storage.S3.PresignExpiry = 15 * time.Minute
	}

	if cfg.Exchange.BaseCurrency == "" {
		cfg.Exchange.BaseCurrency = "USD"
	}
	cfg.Exchange.BaseCurrency = strings.ToUpper(cfg.Exchange.BaseCurrency)
	if cfg.Exchange.URL == "" {
		cfg.Exchange.URL = "https://openexchangerates.org/api/latest.json"
	}
	if cfg.Exchange.CacheTTL == 0 {
		cfg.Exchange.CacheTTL = time.Hour
	}
	if cfg.Exchange.Timeout == 0 {
		cfg.Exchange.Timeout = 10 * time.Second
	}

	if cfg.APIKey.Prefix == "" {
		cfg.APIKey.Prefix = "sk"
	}
	if cfg.APIKey.MaxAttempts == 0 {
		cfg.APIKey.MaxAttempts = 5
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.PyroscopeAddress == "" {
		cfg.Telemetry.PyroscopeAddress = "http://localhost:4040"
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("database.driver must be one of postgres, sqlite, mysql, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when storage.driver is s3")
		}
	default:
		return fmt.Errorf("storage.driver must be local or s3, got %q", c.Storage.Driver)
	}

	if c.APIKey.MaxAttempts < 1 {
		return fmt.Errorf("api_key.max_attempts must be at least 1")
	}
	if c.HTTP.RateLimit.AnonRPS < 0 || c.HTTP.RateLimit.AuthRPS < 0 {
		return fmt.Errorf("http.rate_limit budgets cannot be negative")
	}
	// securecookie accepts AES-128/192/256 keys only
	switch len(c.Session.EncKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("session.enc_key must be 16, 24 or 32 bytes, got %d", len(c.Session.EncKey))
	}

	if c.App.Env == "production" {
		if len(c.App.SecretKey) < 32 {
			return fmt.Errorf("app.secret_key must be at least 32 characters in production")
		}
		if c.App.Debug {
			return fmt.Errorf("app.debug must be false in production")
		}
		if c.Session.AuthKey == defaultSessionAuthKey || c.Session.EncKey == defaultSessionEncKey {
			return fmt.Errorf("session.auth_key and session.enc_key must be set in production (run pimctl generate-keys)")
		}
		if !c.Session.Secure {
			return fmt.Errorf("session.secure must be true in production (HTTPS required for secure cookies)")
		}
		if c.Database.Driver == DriverPostgres {
			if c.Database.Password == "" {
				return fmt.Errorf("database.password is required in production")
			}
			if c.Database.SSLMode == "disable" {
				return fmt.Errorf("database.ssl_mode cannot be 'disable' in production")
			}
		}
		for _, origin := range c.HTTP.CORSAllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("http.cors_allowed_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// IsProduction reports whether the app runs with production safeguards
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the driver-specific connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverSQLite:
		return d.Path
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
		mc.DBName = d.Name
		mc.ParseTime = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	default:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
			Path:   d.Name,
		}
		q := u.Query()
		q.Set("sslmode", d.SSLMode)
		u.RawQuery = q.Encode()
		return u.String()
	}
}
