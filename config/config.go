package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Render  RenderConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Sweeper SweeperConfig
	App     AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

// Addr is the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type RenderConfig struct {
	Binary        string
	TempDir       string
	FlushDelay    time.Duration
	Timeout       time.Duration
	MaxConcurrent int
	RateLimit     float64
	RateBurst     int
}

// ShutdownGrace is how long shutdown waits for in-flight renders. With a
// bounded timeout every render can finish; otherwise a fixed grace applies and
// the sweeper reclaims whatever is left behind.
func (r RenderConfig) ShutdownGrace() time.Duration {
	const margin = 30 * time.Second
	if r.Timeout <= 0 {
		return margin
	}
	return r.Timeout + r.FlushDelay + margin
}

// RedisConfig is optional; an empty Addr keeps render stats in memory
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SweeperConfig struct {
	Schedule string
	MaxAge   time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "127.0.0.1"),
			Port: getEnv("PORT", "8000"),
		},
		Render: RenderConfig{
			Binary:        getEnv("MANIM_BIN", "manim"),
			TempDir:       getEnv("RENDER_TMP_DIR", ""),
			FlushDelay:    getEnvAsDuration("RENDER_FLUSH_DELAY", 200*time.Millisecond),
			Timeout:       getEnvAsDuration("RENDER_TIMEOUT", 10*time.Minute),
			MaxConcurrent: getEnvAsInt("RENDER_MAX_CONCURRENT", 4),
			RateLimit:     getEnvAsFloat("RENDER_RATE_LIMIT", 0),
			RateBurst:     getEnvAsInt("RENDER_RATE_BURST", 1),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Sweeper: SweeperConfig{
			Schedule: getEnv("SWEEP_SCHEDULE", "@every 10m"),
			MaxAge:   getEnvAsDuration("SWEEP_MAX_AGE", time.Hour),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Server.Port)
	}

	if c.Render.Binary == "" {
		return fmt.Errorf("MANIM_BIN is required")
	}

	if c.Render.FlushDelay < 0 || c.Render.Timeout < 0 {
		return fmt.Errorf("RENDER_FLUSH_DELAY and RENDER_TIMEOUT must not be negative")
	}

	if c.Render.MaxConcurrent < 0 {
		return fmt.Errorf("RENDER_MAX_CONCURRENT must not be negative")
	}

	if c.Render.RateLimit < 0 {
		return fmt.Errorf("RENDER_RATE_LIMIT must not be negative")
	}

	// An enabled sweeper must never reach a workspace whose render can still be running.
	if c.Sweeper.Schedule != "" {
		if c.Sweeper.MaxAge <= 0 {
			return fmt.Errorf("SWEEP_MAX_AGE must be positive when SWEEP_SCHEDULE is set")
		}
		if c.Render.Timeout > 0 && c.Sweeper.MaxAge <= c.Render.Timeout+c.Render.FlushDelay {
			return fmt.Errorf("SWEEP_MAX_AGE (%s) must exceed RENDER_TIMEOUT plus RENDER_FLUSH_DELAY (%s)",
				c.Sweeper.MaxAge, c.Render.Timeout+c.Render.FlushDelay)
		}
	}

	switch c.App.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", c.App.LogLevel)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsDuration accepts Go durations ("30s") and treats a bare "0" as zero
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
