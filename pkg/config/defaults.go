package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roost"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Advisory locks auto-expire so a crashed request cannot wedge a
	// property's admission pipeline.
	DefaultAdmissionLockTTL = 10 * time.Second

	DefaultCompletionInterval = 15 * time.Minute

	DefaultBookingEventsTopic = "roost.booking.events"
	DefaultBookingEventsDLQ   = "roost.booking.events.dlq"

	DefaultPaginationLimit = 100
)
