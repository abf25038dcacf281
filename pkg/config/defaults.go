package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "futsal"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisDB = 0

	DefaultPort     = "3000"
	DefaultLogLevel = "info"

	DefaultJWTTTL    = 1 * time.Hour
	DefaultJWTIssuer = "futsal"

	DefaultBcryptCost = 10

	DefaultTimeZone       = "UTC"
	DefaultPurgeAt        = "00:00"
	DefaultPurgeOnStartup = true

	DefaultPhoneRegion = "ID"

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests   = 120
	DefaultRateLimitWindow     = 1 * time.Minute
	DefaultRateLimitMaxClients = 10000

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingEventsTopic = "futsal.bookings"
)
