package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Stripe       StripeConfig
	Cron         CronConfig
	RateLimit    RateLimitConfig
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
	Env          string `envconfig:"CREATORVAULT_APP_ENV" required:"true"`
	Port         string `envconfig:"CREATORVAULT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CREATORVAULT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CREATORVAULT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"CREATORVAULT_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"CREATORVAULT_DB_DSN"`
	Driver string `envconfig:"CREATORVAULT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CREATORVAULT_DB_HOST"`
	LegacyPort     int    `envconfig:"CREATORVAULT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CREATORVAULT_DB_USER"`
	LegacyPassword string `envconfig:"CREATORVAULT_DB_PASSWORD"`
	LegacyName     string `envconfig:"CREATORVAULT_DB_NAME"`
	LegacySSLMode  string `envconfig:"CREATORVAULT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CREATORVAULT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CREATORVAULT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CREATORVAULT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CREATORVAULT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CREATORVAULT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CREATORVAULT_REDIS_ADDR"`
	Password     string        `envconfig:"CREATORVAULT_REDIS_PASSWORD"`
	DB           int           `envconfig:"CREATORVAULT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CREATORVAULT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CREATORVAULT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CREATORVAULT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CREATORVAULT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CREATORVAULT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CREATORVAULT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CREATORVAULT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CREATORVAULT_JWT_EXPIRATION_MINUTES" required:"true"`
}

// Expiration returns the access token TTL configured in minutes.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type StripeConfig struct {
	APIKey         string `envconfig:"CREATORVAULT_STRIPE_API_KEY"`
	SigningSecret  string `envconfig:"CREATORVAULT_STRIPE_SIGNING_SECRET"`
	Env            string `envconfig:"CREATORVAULT_STRIPE_ENV" default:"test"`
	DepositSuccess string `envconfig:"CREATORVAULT_STRIPE_DEPOSIT_SUCCESS_URL" default:"https://app.creatorvault.io/campaigns?deposit=success"`
	DepositCancel  string `envconfig:"CREATORVAULT_STRIPE_DEPOSIT_CANCEL_URL" default:"https://app.creatorvault.io/campaigns?deposit=cancelled"`
	ConnectRefresh string `envconfig:"CREATORVAULT_STRIPE_CONNECT_REFRESH_URL" default:"https://app.creatorvault.io/settings/payouts?refresh=true"`
	ConnectReturn  string `envconfig:"CREATORVAULT_STRIPE_CONNECT_RETURN_URL" default:"https://app.creatorvault.io/settings/payouts?onboarded=true"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CronConfig struct {
	TickInterval   time.Duration `envconfig:"CREATORVAULT_CRON_TICK_INTERVAL" default:"1m"`
	LockTTL        time.Duration `envconfig:"CREATORVAULT_CRON_LOCK_TTL" default:"5m"`
	IncomeRunDay   int           `envconfig:"CREATORVAULT_CRON_INCOME_RUN_DAY" default:"1"`
	IncomeBatchLog int           `envconfig:"CREATORVAULT_CRON_INCOME_BATCH_LOG" default:"100"`
}

type RateLimitConfig struct {
	WriteWindow    time.Duration `envconfig:"CREATORVAULT_RATE_LIMIT_WRITE_WINDOW" default:"1m"`
	WriteIPLimit   int           `envconfig:"CREATORVAULT_RATE_LIMIT_WRITE_IP_LIMIT" default:"120"`
	WriteUserLimit int           `envconfig:"CREATORVAULT_RATE_LIMIT_WRITE_USER_LIMIT" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CREATORVAULT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CREATORVAULT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
