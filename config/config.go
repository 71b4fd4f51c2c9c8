package config

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer     HttpServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	HttpClient     HttpClientConfig
	CatalogService CatalogServiceConfig
	MessageStream  MessageStreamConfig
	Auth           AuthConfig
	RateLimit      RateLimitConfig
	Booking        BookingConfig
}

type HttpServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_SERVER_WRITE_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DATABASE_HOST" default:"localhost"`
	Port            string        `envconfig:"DATABASE_PORT" default:"5432"`
	User            string        `envconfig:"DATABASE_USER" default:"postgres"`
	Password        string        `envconfig:"DATABASE_PASSWORD" default:"postgres"`
	Name            string        `envconfig:"DATABASE_NAME" default:"court_booking"`
	SSLMode         string        `envconfig:"DATABASE_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"5m"`
	AutoMigrate     bool          `envconfig:"DATABASE_AUTO_MIGRATE" default:"true"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type HttpClientConfig struct {
	// Type selects the breaker: "threshold", "consecutive" or "rate".
	Type             string        `envconfig:"HTTP_CLIENT_TYPE" default:"consecutive"`
	Timeout          time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"5s"`
	Threshold        int64         `envconfig:"HTTP_CLIENT_THRESHOLD" default:"5"`
	Rate             float64       `envconfig:"HTTP_CLIENT_RATE" default:"0.5"`
	MinSamples       int64         `envconfig:"HTTP_CLIENT_MIN_SAMPLES" default:"20"`
	ConsecutiveCount int64         `envconfig:"HTTP_CLIENT_CONSECUTIVE_COUNT" default:"5"`
}

type CatalogServiceConfig struct {
	Host     string        `envconfig:"CATALOG_SERVICE_HOST" default:"localhost"`
	Port     string        `envconfig:"CATALOG_SERVICE_PORT" default:"8081"`
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

type MessageStreamConfig struct {
	Host           string `envconfig:"MESSAGE_STREAM_HOST" default:"localhost"`
	Port           string `envconfig:"MESSAGE_STREAM_PORT" default:"5672"`
	Username       string `envconfig:"MESSAGE_STREAM_USERNAME" default:"guest"`
	Password       string `envconfig:"MESSAGE_STREAM_PASSWORD" default:"guest"`
	MaxRetries     int    `envconfig:"MESSAGE_STREAM_MAX_RETRIES" default:"3"`
	PoisonQueue    string `envconfig:"MESSAGE_STREAM_POISON_QUEUE" default:"poisoned_queue"`
	PrefetchCount  int    `envconfig:"MESSAGE_STREAM_PREFETCH_COUNT" default:"10"`
	DisableConsume bool   `envconfig:"MESSAGE_STREAM_DISABLE_CONSUME" default:"false"`
}

type AuthConfig struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	Issuer    string `envconfig:"AUTH_JWT_ISSUER"`
}

type RateLimitConfig struct {
	Enabled bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Prefix  string        `envconfig:"RATE_LIMIT_PREFIX" default:"ratelimit"`
	Limit   int           `envconfig:"RATE_LIMIT_LIMIT" default:"60"`
	Window  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type BookingConfig struct {
	Timezone          string        `envconfig:"BOOKING_TIMEZONE" default:"Asia/Kolkata"`
	UserCancelCutoff  time.Duration `envconfig:"BOOKING_USER_CANCEL_CUTOFF" default:"24h"`
	StaffCancelCutoff time.Duration `envconfig:"BOOKING_STAFF_CANCEL_CUTOFF" default:"0s"`
	Holidays          []string      `envconfig:"BOOKING_HOLIDAYS"`
	CheckInLead       time.Duration `envconfig:"BOOKING_CHECK_IN_LEAD" default:"30m"`
	DistributedLock   bool          `envconfig:"BOOKING_DISTRIBUTED_LOCK" default:"true"`
	LockExpiry        time.Duration `envconfig:"BOOKING_LOCK_EXPIRY" default:"10s"`
	SweepEnabled      bool          `envconfig:"BOOKING_SWEEP_ENABLED" default:"false"`
	SweepCron         string        `envconfig:"BOOKING_SWEEP_CRON" default:"*/15 * * * *"`
	SweepGrace        time.Duration `envconfig:"BOOKING_SWEEP_GRACE" default:"1h"`
	SweepBatchSize    int           `envconfig:"BOOKING_SWEEP_BATCH_SIZE" default:"100"`
}

// Location falls back to UTC when the configured zone is unknown.
func (b BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (b BookingConfig) HolidayDates() []string {
	out := make([]string, 0, len(b.Holidays))
	for _, h := range b.Holidays {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

var (
	cfg  *Config
	once sync.Once
)

// InitConfig loads .env when present and then the process environment.
func InitConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using environment")
		}

		var c Config
		if err := envconfig.Process("", &c); err != nil {
			log.Fatalf("error load config: %v", err)
		}
		cfg = &c
	})
	return cfg
}
