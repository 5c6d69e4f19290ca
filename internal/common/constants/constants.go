package constants

import "time"

const (
	UsernameMinLength   = 3
	NameMinLength       = 3
	PasswordMinLength   = 6
	PasswordMaxLength   = 72
	IdentifierMinLength = 3
	JWTSecretMinLength  = 32

	DefaultBcryptCost = 10
	DefaultTokenTTL   = time.Hour

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
)
