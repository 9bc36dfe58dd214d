package config

// EnvPrefix is the envconfig prefix for all application variables.
const EnvPrefix = "CREATORVAULT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "CREATORVAULT_APP_ENV"
	EnvPort     = "CREATORVAULT_APP_PORT"
	EnvLogLevel = "CREATORVAULT_LOG_LEVEL"

	EnvDBDSN      = "CREATORVAULT_DB_DSN"
	EnvDBHost     = "CREATORVAULT_DB_HOST"
	EnvDBPort     = "CREATORVAULT_DB_PORT"
	EnvDBUser     = "CREATORVAULT_DB_USER"
	EnvDBPassword = "CREATORVAULT_DB_PASSWORD"
	EnvDBName     = "CREATORVAULT_DB_NAME"

	EnvRedisURL = "CREATORVAULT_REDIS_URL"

	EnvJWTSecret  = "CREATORVAULT_JWT_SECRET"
	EnvJWTIssuer  = "CREATORVAULT_JWT_ISSUER"
	EnvJWTExpMins = "CREATORVAULT_JWT_EXPIRATION_MINUTES"

	EnvStripeAPIKey        = "CREATORVAULT_STRIPE_API_KEY"
	EnvStripeSigningSecret = "CREATORVAULT_STRIPE_SIGNING_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
