package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSessionSecret is the development-only cookie signing key.
const DefaultSessionSecret = "change-me"

// ErrInsecureSessionSecret is returned when production runs without its own SESSION_SECRET.
var ErrInsecureSessionSecret = errors.New("SESSION_SECRET must be set to a non-default value in production")

// Config holds the application configuration.
type Config struct {
	Env         string `mapstructure:"ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBLogLevel  string `mapstructure:"DB_LOG_LEVEL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	CatalogAPIKey   string        `mapstructure:"CATALOG_API_KEY"`
	CatalogBaseURL  string        `mapstructure:"CATALOG_BASE_URL"`
	CatalogTimeout  time.Duration `mapstructure:"CATALOG_TIMEOUT"`
	RedisURL        string        `mapstructure:"REDIS_URL"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	SessionSecret string `mapstructure:"SESSION_SECRET"`
}

var AppConfig *Config

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "reviews.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("CATALOG_API_KEY", "")
	v.SetDefault("CATALOG_BASE_URL", "https://www.giantbomb.com/api")
	v.SetDefault("CATALOG_TIMEOUT", "15s")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CATALOG_CACHE_TTL", "1h")
	v.SetDefault("SESSION_SECRET", DefaultSessionSecret)
}

// Load reads configuration from a .env file in dir (if any) and from the environment.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.IsProduction() && (cfg.SessionSecret == "" || cfg.SessionSecret == DefaultSessionSecret) {
		return nil, ErrInsecureSessionSecret
	}
	return &cfg, nil
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	cfg, err := Load(".")
	if err != nil {
		log.Fatalf("Unable to load configuration, %v", err)
	}
	AppConfig = cfg
}
