package config

import (
	"SolidarityHospital/database"
	"SolidarityHospital/middlewares"
	"SolidarityHospital/utils"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port         string        `mapstructure:"PORT"`
	Env          string        `mapstructure:"ENV"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	StoreBackend string        `mapstructure:"STORE_BACKEND"`
	StorePrefix  string        `mapstructure:"STORE_PREFIX"`
	DBURL        string        `mapstructure:"DB_URL"`
	DBMaxConns   int           `mapstructure:"DB_MAX_CONNS"`
	DBIdleConns  int           `mapstructure:"DB_IDLE_CONNS"`
	DBConnLife   time.Duration `mapstructure:"DB_CONN_LIFETIME"`
	RedisURL     string        `mapstructure:"REDIS_URL"`
	SymmetricKey string        `mapstructure:"SYMMETRIC_KEY"`
	CORSOrigins  []string      `mapstructure:"CORS_ORIGINS"`
	Timezone     string        `mapstructure:"TIMEZONE"`

	RedisPoolSize     int           `mapstructure:"REDIS_POOL_SIZE"`
	RedisDialTimeout  time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	RedisMinIdleConns int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	RedisReadTimeout  time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	RedisMaxRetries   int           `mapstructure:"REDIS_MAX_RETRIES"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	PaymentDelay time.Duration `mapstructure:"PAYMENT_DELAY"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASS"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "STORE_BACKEND", "STORE_PREFIX",
	"DB_URL", "DB_MAX_CONNS", "DB_IDLE_CONNS", "DB_CONN_LIFETIME",
	"REDIS_URL", "SYMMETRIC_KEY", "CORS_ORIGINS", "TIMEZONE",
	"REDIS_POOL_SIZE", "REDIS_DIAL_TIMEOUT", "REDIS_MIN_IDLE_CONNS", "REDIS_READ_TIMEOUT", "REDIS_MAX_RETRIES",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "PAYMENT_DELAY",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
}

// Load reads the configuration from the environment and an optional .env file.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8930")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", StoreMemory)
	v.SetDefault("STORE_PREFIX", "frontdesk")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_LIFETIME", "1h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("REDIS_POOL_SIZE", 50)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("PAYMENT_DELAY", "2s")
	v.SetDefault("SMTP_PORT", 587)

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// A missing .env file is fine, an unreadable or malformed one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate rejects combinations the server cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis store"))
		}
	case StorePostgres:
		if c.DBURL == "" {
			errs = append(errs, errors.New("DB_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be memory, redis or postgres, got %q", c.StoreBackend))
	}
	if len(c.SymmetricKey) != 32 {
		errs = append(errs, fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long, got %d", len(c.SymmetricKey)))
	}
	if c.PaymentDelay < 0 {
		errs = append(errs, errors.New("PAYMENT_DELAY must not be negative"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// Location is the time zone appointment slots are entered in.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *AppConfig) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		DSN:             c.DBURL,
		MaxOpenConns:    c.DBMaxConns,
		MaxIdleConns:    c.DBIdleConns,
		ConnMaxLifetime: c.DBConnLife,
		Debug:           c.IsDev(),
	}
}

func (c *AppConfig) Redis() database.RedisConfig {
	return database.RedisConfig{
		URL:          c.RedisURL,
		PoolSize:     c.RedisPoolSize,
		DialTimeout:  c.RedisDialTimeout,
		MinIdleConns: c.RedisMinIdleConns,
		ReadTimeout:  c.RedisReadTimeout,
		MaxRetries:   c.RedisMaxRetries,
	}
}

func (c *AppConfig) SMTP() utils.SMTPConfig {
	return utils.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		User:     c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}

func (c *AppConfig) RateLimit() middlewares.RateLimiterConfig {
	return middlewares.RateLimiterConfig{RequestsPerSecond: c.RateLimitRPS, Burst: c.RateLimitBurst}
}

func (c *AppConfig) Cors() middlewares.CorsConfig {
	return middlewares.DefaultCorsConfig(c.CORSOrigins)
}
