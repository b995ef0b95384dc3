package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Auth           AuthConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	Storage        StorageConfig
	Quotes         QuotesConfig
	Cache          CacheConfig
	RateLimit      RateLimitConfig
	Gauge          GaugeConfig
	ReferenceAreas []ReferenceArea
	Logging        LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// DSN builds the pgx connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

// AuthConfig holds access-key session configuration
type AuthConfig struct {
	JWTSecret       string
	SessionDuration time.Duration
}

// RedisConfig holds Redis specific configuration
type RedisConfig struct {
	Enabled       bool
	URL           string
	Password      string
	DB            int
	SessionPrefix string
}

// KafkaConfig holds Kafka specific configuration
type KafkaConfig struct {
	Enabled  bool
	Brokers  []string
	ClientID string
	Topics   map[string]string
}

// StorageConfig holds company logo storage configuration
type StorageConfig struct {
	Type          string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Prefix        string
	PublicBaseURL string
	PresignExpiry time.Duration
}

// QuotesConfig holds live quote configuration
type QuotesConfig struct {
	Enabled bool
	Timeout time.Duration
}

// CacheConfig holds response and snapshot cache configuration
type CacheConfig struct {
	Enabled     bool
	ChartTTL    time.Duration
	SnapshotTTL time.Duration
}

// RateLimitConfig holds login rate limit configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
}

// GaugeConfig holds the Price/Sales gauge range
type GaugeConfig struct {
	Min float64
	Max float64
}

// ReferenceArea is a shaded date band on the price chart
type ReferenceArea struct {
	Label string
	Start string
	End   string
	Color string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables, e.g. DASHBOARD_DATABASE_PASSWORD
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret must be set")
	}
	if c.Gauge.Max <= c.Gauge.Min {
		return fmt.Errorf("gauge.max (%v) must be greater than gauge.min (%v)", c.Gauge.Max, c.Gauge.Min)
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")
	v.SetDefault("database.connectTimeout", "30s")

	// Auth defaults
	v.SetDefault("auth.sessionDuration", "12h")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "localhost:6379")
	v.SetDefault("redis.sessionPrefix", "dashboard-session:")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.clientID", "dashboard")
	v.SetDefault("kafka.topics.login", "dashboard-logins")
	v.SetDefault("kafka.topics.watchlist", "dashboard-watchlists")

	// Storage defaults
	v.SetDefault("storage.type", "public")
	v.SetDefault("storage.presignExpiry", "15m")

	// Quotes defaults
	v.SetDefault("quotes.enabled", false)
	v.SetDefault("quotes.timeout", "5s")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.chartTTL", "5m")
	v.SetDefault("cache.snapshotTTL", "1h")

	// Rate limit defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 10)
	v.SetDefault("rateLimit.burstSize", 5)

	// Gauge defaults
	v.SetDefault("gauge.min", 0)
	v.SetDefault("gauge.max", 50)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
