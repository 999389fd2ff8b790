package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains authentication settings.
// TokenTTLMinutes of 0 means issued tokens never expire.
type AuthConfig struct {
	BcryptCost      int `mapstructure:"bcrypt_cost"       validate:"gte=4,lte=31"`
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" validate:"gte=0"`
}

// RedisConfig contains settings for the Redis-backed rate limiter.
// When Enabled is false the server falls back to the in-process limiter,
// which is fine for a single instance but not shared across replicas.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds the per-minute request limits for each route class.
type RateLimitConfig struct {
	Register      int `mapstructure:"register"      validate:"gte=1"`
	Login         int `mapstructure:"login"         validate:"gte=1"`
	Authenticated int `mapstructure:"authenticated" validate:"gte=1"`
}
