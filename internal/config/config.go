package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment     string        `mapstructure:"ENVIRONMENT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	RedisAddress    string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	TokenDuration   time.Duration `mapstructure:"TOKEN_DURATION"`
	InactiveTimeout time.Duration `mapstructure:"INACTIVE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var keys = []string{
	"ENVIRONMENT", "LOG_LEVEL", "DB_SOURCE", "SERVER_ADDRESS",
	"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "TOKEN_DURATION", "INACTIVE_TIMEOUT", "SHUTDOWN_TIMEOUT",
}

// LoadConfig reads configuration from app.env in path, if present, and
// from environment variables, which take precedence.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("INACTIVE_TIMEOUT", 5*time.Minute)
	v.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)

	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	if c.DBSource == "" {
		return errors.New("config: DB_SOURCE is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.InactiveTimeout <= 0 {
		return errors.New("config: INACTIVE_TIMEOUT must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
