package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Argon2    Argon2Config
	RateLimit RateLimitConfig
	Secure    SecureConfig
	Cookie    CookieConfig
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	// AccessExpiryHours and RefreshExpiryDays are read once at startup and
	// passed into the token issuer; expiry timestamps are computed at
	// mint/refresh time, never at verification time.
	AccessExpiryHours int
	RefreshExpiryDays int
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

type RateLimitConfig struct {
	// Rate per IP ("100-M" = 100/min). Empty disables.
	RatePerIP string
}

type SecureConfig struct {
	IsDevelopment bool
}

type CookieConfig struct {
	Secure bool
}

func Load() (*Config, error) {
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		_ = viper.ReadInConfig()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Mongo: MongoConfig{
			URI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGO_DATABASE", "devtrackr"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret:            os.Getenv("JWT_SECRET"),
			AccessExpiryHours: viper.GetInt("ACCESS_TOKEN_EXPIRY_HOURS"),
			RefreshExpiryDays: viper.GetInt("REFRESH_TOKEN_EXPIRY_DAYS"),
		},
		Argon2: Argon2Config{
			Memory:      uint32(viper.GetInt("ARGON2_MEMORY")),
			Iterations:  uint32(viper.GetInt("ARGON2_ITERATIONS")),
			Parallelism: uint8(viper.GetInt("ARGON2_PARALLELISM")),
		},
		RateLimit: RateLimitConfig{
			RatePerIP: getEnvOrDefault("RATE_LIMIT_PER_IP", "100-M"),
		},
		Secure: SecureConfig{
			IsDevelopment: viper.GetBool("DEV_MODE"),
		},
		Cookie: CookieConfig{
			Secure: viper.GetBool("COOKIE_SECURE"),
		},
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWT.AccessExpiryHours <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRY_HOURS is required and must be a positive integer")
	}
	if cfg.JWT.RefreshExpiryDays <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_EXPIRY_DAYS is required and must be a positive integer")
	}
	if cfg.Argon2.Memory == 0 {
		cfg.Argon2.Memory = 64 * 1024
	}
	if cfg.Argon2.Iterations == 0 {
		cfg.Argon2.Iterations = 3
	}
	if cfg.Argon2.Parallelism == 0 {
		cfg.Argon2.Parallelism = 2
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
