package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Minio    MinioConfig
	Jobs     JobsConfig
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Port     int
	LogLevel string
}

// DatabaseConfig contains the gateway connection string
type DatabaseConfig struct {
	URL string
}

// AuthConfig contains token signing and login throttling settings
type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// RedisConfig contains cache connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinioConfig contains object storage settings for product images
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// JobsConfig contains background job intervals
type JobsConfig struct {
	HealthProbeInterval time.Duration
}

// ErrMissingDatabaseURL is returned when DATABASE_URL is not set
var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TOKEN_TTL", 8*time.Hour)
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", 15*time.Minute)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin") // Default for development
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin") // Default for development
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_BUCKET", "flexgestor")
	v.SetDefault("HEALTH_PROBE_INTERVAL", 30*time.Second)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetInt("PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			TokenTTL:        v.GetDuration("TOKEN_TTL"),
			LoginRateLimit:  v.GetInt("LOGIN_RATE_LIMIT"),
			LoginRateWindow: v.GetDuration("LOGIN_RATE_WINDOW"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		Jobs: JobsConfig{
			HealthProbeInterval: v.GetDuration("HEALTH_PROBE_INTERVAL"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}
