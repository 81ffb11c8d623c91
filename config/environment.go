package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from the environment and an
// optional config file.
type Config struct {
	Env            string        `mapstructure:"env"`             // current environment (local, production)
	Port           string        `mapstructure:"port"`            // HTTP listen port
	DatabaseURL    string        `mapstructure:"-"`               // Postgres DSN, loaded from environment
	OpenAIAPIKey   string        `mapstructure:"-"`               // OpenAI API key, loaded from environment
	OpenAIModel    string        `mapstructure:"openai_model"`    // chat completion model
	JWTSecretKey   string        `mapstructure:"-"`               // token signing secret, loaded from environment
	TokenLifetime  time.Duration `mapstructure:"token_lifetime"`  // access token TTL
	GenTimeout     time.Duration `mapstructure:"gen_timeout"`     // per-request completion timeout
	AllowedOrigins []string      `mapstructure:"allowed_origins"` // CORS origins
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from an optional config.yaml plus environment
// variables. DATABASE_URL, OPENAI_API_KEY and JWT_SECRET_KEY are required.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("port", "8080")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("token_lifetime", "12h")
	v.SetDefault("gen_timeout", "45s")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "http://localhost:8080"})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("openai_model", "OPENAI_MODEL")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("jwt_secret_key", "JWT_SECRET_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.DatabaseURL = v.GetString("database_url")
	cfg.OpenAIAPIKey = v.GetString("openai_api_key")
	cfg.JWTSecretKey = v.GetString("jwt_secret_key")

	if cfg.DatabaseURL == "" || cfg.OpenAIAPIKey == "" || cfg.JWTSecretKey == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
