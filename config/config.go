package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	RateLimitBurst    int    `mapstructure:"RATE_LIMIT_BURST"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	BlockedCacheTTL time.Duration `mapstructure:"BLOCKED_CACHE_TTL"`

	// Timeline defaults applied to sessions that do not set them.
	TimelineTicksNumber int    `mapstructure:"TIMELINE_TICKS_NUMBER"`
	TimelineStepMinutes int    `mapstructure:"TIMELINE_STEP_MINUTES"`
	TimelineLocation    string `mapstructure:"TIMELINE_LOCATION"`

	// Interactive sessions idle longer than this are dropped.
	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`
	// MaxSessions bounds the live sessions; zero means unbounded.
	MaxSessions int `mapstructure:"SESSION_MAX"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 1200)
	v.SetDefault("RATE_LIMIT_BURST", 60)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "timerange")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("BLOCKED_CACHE_TTL", 5*time.Minute)
	v.SetDefault("TIMELINE_TICKS_NUMBER", 48)
	v.SetDefault("TIMELINE_STEP_MINUTES", 30)
	v.SetDefault("TIMELINE_LOCATION", "Local")
	v.SetDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	v.SetDefault("SESSION_MAX", 10000)
}

// Load reads config.yaml (from the working directory or ./config) and the
// environment into a Config.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig fills AppConfig from the global viper instance.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Step returns the configured handle step.
func (c Config) Step() time.Duration {
	return time.Duration(c.TimelineStepMinutes) * time.Minute
}

// Location resolves TimelineLocation, falling back to time.Local.
func (c Config) Location() *time.Location {
	switch c.TimelineLocation {
	case "", "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimelineLocation)
	if err != nil {
		log.Printf("Unknown TIMELINE_LOCATION %q, using Local", c.TimelineLocation)
		return time.Local
	}
	return loc
}
