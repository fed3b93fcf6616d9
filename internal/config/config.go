package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT" validate:"required,numeric"`
		Mode string `yaml:"mode" env:"SERVER_MODE" validate:"oneof=development production test"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST" validate:"required"`
		Port            string `yaml:"port" env:"DB_PORT" validate:"required,numeric"`
		User            string `yaml:"user" env:"DB_USER" validate:"required"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME" validate:"required"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" validate:"gt=0"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" validate:"duration"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET" validate:"required"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json text"`
	} `yaml:"logging"`

	Planner struct {
		MaxCredits     int    `yaml:"max_credits" env:"PLANNER_MAX_CREDITS" validate:"gt=0,lte=15"`
		MaxCoreCourses int    `yaml:"max_core_courses" env:"PLANNER_MAX_CORE_COURSES" validate:"gt=0"`
		CatalogPath    string `yaml:"catalog_path" env:"PLANNER_CATALOG_PATH"`
	} `yaml:"planner"`

	Recommendation struct {
		Enabled bool   `yaml:"enabled" env:"RECOMMENDATION_ENABLED"`
		BaseURL string `yaml:"base_url" env:"RECOMMENDATION_BASE_URL" validate:"required_if=Enabled true,omitempty,url"`
		Timeout string `yaml:"timeout" env:"RECOMMENDATION_TIMEOUT" validate:"duration"`
	} `yaml:"recommendation"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR" validate:"required_if=Enabled true"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB" validate:"gte=0,lte=15"`
		CacheTTL string `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" validate:"duration"`
	} `yaml:"redis"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; environment variables alone are enough in containers
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "degreeplan"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.Issuer = "degreeplan.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Planner.MaxCredits = 15
	config.Planner.MaxCoreCourses = 3

	config.Recommendation.Timeout = "3s"

	config.Redis.Addr = "localhost:6379"
	config.Redis.CacheTTL = "10m"
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Durations are kept as strings in the file so they read naturally ("3s", "1h")
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.ParseDuration(s)
		return err == nil
	})
	return v
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if err := newValidator().Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// RecommendationTimeout returns the parsed recommendation timeout
func (c *Config) RecommendationTimeout() time.Duration {
	return ParseDuration(c.Recommendation.Timeout, 3*time.Second)
}

// RedisCacheTTL returns the parsed cache TTL
func (c *Config) RedisCacheTTL() time.Duration {
	return ParseDuration(c.Redis.CacheTTL, 10*time.Minute)
}

// ParseDuration parses s, returning fallback when s is empty or malformed
func ParseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
