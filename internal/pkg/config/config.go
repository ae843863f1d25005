package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, accounts, endpoints), security settings
// - default: Values common across all environments (timezone, timeout, commission, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Provider ProviderConfig
	Booking  BookingConfig
	Bank     BankConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// PreferredProtocol is REST or LEGACY; it replaces the old process-wide protocol switch.
type ProviderConfig struct {
	PreferredProtocol string        `envconfig:"PREFERRED_PROTOCOL" default:"REST"`
	CallTimeout       time.Duration `envconfig:"PROVIDER_CALL_TIMEOUT" default:"10s"`
	SearchCacheTTL    time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"30s"`
}

type BookingConfig struct {
	PlatformAccount int64           `envconfig:"PLATFORM_ACCOUNT" required:"true"`
	CommissionRate  decimal.Decimal `envconfig:"COMMISSION_RATE" default:"0.10"`
	HoldSeconds     int             `envconfig:"HOLD_SECONDS" default:"300"`
}

type BankConfig struct {
	BaseURL string        `envconfig:"BANK_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"BANK_TIMEOUT" default:"15s"`
}

type RedisConfig struct {
	Addr            string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password        string        `envconfig:"REDIS_PASSWORD" default:""`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	CheckoutLockTTL time.Duration `envconfig:"CHECKOUT_LOCK_TTL" default:"2m"`
}

type KafkaConfig struct {
	Brokers       []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic         string        `envconfig:"BOOKING_EVENTS_TOPIC" default:"booking-events"`
	RelayInterval time.Duration `envconfig:"OUTBOX_RELAY_INTERVAL" default:"500ms"`
	RelayEnabled  bool          `envconfig:"OUTBOX_RELAY_ENABLED" default:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BookingConfig) HoldDuration() time.Duration {
	if c.HoldSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.HoldSeconds) * time.Second
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Provider: ProviderConfig{
			PreferredProtocol: "REST",
			CallTimeout:       2 * time.Second,
			SearchCacheTTL:    time.Second,
		},
		Booking: BookingConfig{
			PlatformAccount: 1,
			CommissionRate:  decimal.RequireFromString("0.10"),
			HoldSeconds:     300,
		},
		Bank: BankConfig{
			BaseURL: "http://localhost:18080",
			Timeout: 2 * time.Second,
		},
		Redis: RedisConfig{
			Addr:            "localhost:16379",
			CheckoutLockTTL: time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:19092"},
			Topic:         "booking-events-test",
			RelayInterval: 100 * time.Millisecond,
			RelayEnabled:  false,
		},
	}
}
