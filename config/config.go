package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Scheduling API (external collaborator that owns slot capacity).
	SchedulingAPIURL        string `mapstructure:"SCHEDULING_API_URL"`
	SchedulingAPITimeoutSec int    `mapstructure:"SCHEDULING_API_TIMEOUT_SEC"`
	SchedulingCityID        string `mapstructure:"SCHEDULING_CITY_ID"`

	// Validation debounce window for the selection coordinator.
	ValidationDebounceMs int `mapstructure:"VALIDATION_DEBOUNCE_MS"`

	// Slot cache configuration. Backend "memory" keeps the session cache
	// in-process; "redis" shares it across instances with an optional TTL.
	SlotCacheBackend string `mapstructure:"SLOT_CACHE_BACKEND"`
	SlotCacheTTLSec  int    `mapstructure:"SLOT_CACHE_TTL_SEC"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SCHEDULING_API_URL", "http://localhost:9000")
	viper.SetDefault("SCHEDULING_API_TIMEOUT_SEC", 10)
	viper.SetDefault("SCHEDULING_CITY_ID", "")
	viper.SetDefault("VALIDATION_DEBOUNCE_MS", 400)
	viper.SetDefault("SLOT_CACHE_BACKEND", "memory")
	viper.SetDefault("SLOT_CACHE_TTL_SEC", 0)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
