package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWTTTL    = "JWT_TTL"
	EnvJWTIssuer = "JWT_ISSUER"

	EnvBcryptCost = "BCRYPT_COST"

	EnvTimeZone       = "TIMEZONE"
	EnvPurgeAt        = "PURGE_AT"
	EnvPurgeOnStartup = "PURGE_ON_STARTUP"

	EnvPhoneRegion = "PHONE_REGION"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests   = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow     = "RATE_LIMIT_WINDOW"
	EnvRateLimitMaxClients = "RATE_LIMIT_MAX_CLIENTS"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"
)
