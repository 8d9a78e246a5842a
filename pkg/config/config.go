package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FRESHMART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Checkout     CheckoutConfig
	Shipping     ShippingConfig
	Sweeper      SweeperConfig
	Outbox       OutboxConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRESHMART_APP_ENV" required:"true"`
	Port         string `envconfig:"FRESHMART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FRESHMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRESHMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"FRESHMART_DB_DSN"`

	Host     string `envconfig:"FRESHMART_DB_HOST"`
	Port     int    `envconfig:"FRESHMART_DB_PORT" default:"5432"`
	User     string `envconfig:"FRESHMART_DB_USER"`
	Password string `envconfig:"FRESHMART_DB_PASSWORD"`
	Name     string `envconfig:"FRESHMART_DB_NAME"`
	SSLMode  string `envconfig:"FRESHMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRESHMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRESHMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRESHMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRESHMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRESHMART_REDIS_URL"`
	Address      string        `envconfig:"FRESHMART_REDIS_ADDR"`
	Password     string        `envconfig:"FRESHMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRESHMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRESHMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRESHMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRESHMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRESHMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRESHMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FRESHMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FRESHMART_JWT_ISSUER" default:"freshmart"`
	ExpirationMinutes int    `envconfig:"FRESHMART_JWT_EXPIRATION_MINUTES" default:"60"`
}

// CheckoutConfig carries the business knobs of order creation.
type CheckoutConfig struct {
	// PaymentWindow is how long a created order may stay unpaid before the
	// sweeper expires it.
	PaymentWindow time.Duration `envconfig:"FRESHMART_CHECKOUT_PAYMENT_WINDOW" default:"24h"`
}

// ShippingConfig parameterizes the distance-based shipping cost curve. Both
// values are business policy, not protocol.
type ShippingConfig struct {
	FreeDistanceKM float64 `envconfig:"FRESHMART_SHIPPING_FREE_DISTANCE_KM" default:"5"`
	RatePerKMCents int64   `envconfig:"FRESHMART_SHIPPING_RATE_PER_KM_CENTS" default:"2000"`
}

type SweeperConfig struct {
	ExpiryInterval      time.Duration `envconfig:"FRESHMART_SWEEPER_EXPIRY_INTERVAL" default:"5m"`
	AutoConfirmInterval time.Duration `envconfig:"FRESHMART_SWEEPER_AUTO_CONFIRM_INTERVAL" default:"1h"`
	AutoConfirmAfter    time.Duration `envconfig:"FRESHMART_SWEEPER_AUTO_CONFIRM_AFTER" default:"168h"`
	BatchSize           int           `envconfig:"FRESHMART_SWEEPER_BATCH_SIZE" default:"100"`
	LockTTL             time.Duration `envconfig:"FRESHMART_SWEEPER_LOCK_TTL" default:"10m"`
	Jitter              time.Duration `envconfig:"FRESHMART_SWEEPER_JITTER" default:"10s"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"FRESHMART_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"FRESHMART_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"FRESHMART_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"FRESHMART_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"FRESHMART_PUBSUB_ORDERS_TOPIC" default:"fm-order-events"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FRESHMART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"FRESHMART_DB_HOST": db.Host,
		"FRESHMART_DB_USER": db.User,
		"FRESHMART_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either FRESHMART_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
