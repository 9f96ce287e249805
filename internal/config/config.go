package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	YouTube   YouTubeConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       LogConfig
	Tracing   TracingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	MetricsPort     int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// YouTubeConfig holds upstream fetch configuration
type YouTubeConfig struct {
	HTTPTimeout      time.Duration
	UserAgent        string
	DefaultLanguages []string
}

// RateLimitConfig holds in-process rate limiting configuration
type RateLimitConfig struct {
	RPS   int
	Burst int
}

// RedisConfig holds Redis configuration for shared rate limiting
// and operational counters
type RedisConfig struct {
	Enabled         bool
	Host            string
	Port            int
	Password        string
	DB              int
	RateLimitWindow time.Duration
	RateLimitMax    int64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// TracingConfig holds distributed tracing configuration
type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	JaegerEndpoint string
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.metricsPort", 9090)
	viper.SetDefault("server.readTimeout", "15s")
	viper.SetDefault("server.writeTimeout", "30s")
	viper.SetDefault("server.shutdownTimeout", "10s")

	// YouTube defaults
	viper.SetDefault("youtube.httpTimeout", "8s")
	viper.SetDefault("youtube.userAgent", "")
	viper.SetDefault("youtube.defaultLanguages", []string{"en"})

	// Rate limit defaults
	viper.SetDefault("ratelimit.rps", 5)
	viper.SetDefault("ratelimit.burst", 10)

	// Redis defaults
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.rateLimitWindow", "1m")
	viper.SetDefault("redis.rateLimitMax", 120)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output", "stdout")

	// Tracing defaults
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.serviceName", "transcript-api")
	viper.SetDefault("tracing.jaegerEndpoint", "http://localhost:14268/api/traces")
}
