package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "barberbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTenantHeader = "X-Tenant-ID"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLockBackend = LockBackendMongo
	DefaultLockTTL     = 10 * time.Second
	DefaultLockWait    = 2 * time.Second

	DefaultSlotGranularityMin        = 30
	DefaultServiceDurationMin        = 30
	DefaultScheduleTimeZone          = "UTC"
	DefaultPhoneRegion               = "BR"
	DefaultKafkaEnabled              = false
	DefaultBookingEventsTopic        = "booking-events"
	DefaultBookingEventsDLQTopic     = "booking-events-dlq"
	DefaultAuditConsumerGroup        = "barberbook-audit"
	DefaultPaginationLimit           = 100
	DefaultPaginationLimitOnEmptyArg = 10
)

const (
	LockBackendMongo  = "mongo"
	LockBackendRedis  = "redis"
	LockBackendMemory = "memory"
)
