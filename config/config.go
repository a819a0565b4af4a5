package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every process-wide setting. It is read once at startup and
// treated as immutable afterwards; changing the environment requires a restart.
type Config struct {
	Port   string `envconfig:"PORT" default:"3000"`
	AppEnv string `envconfig:"APP_ENV" default:"production"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisAddr   string `envconfig:"REDIS_ADDR"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	DeepSeekAPIKey  string        `envconfig:"DEEPSEEK_API_KEY"`
	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	DeepSeekBaseURL string        `envconfig:"DEEPSEEK_BASE_URL" default:"https://api.deepseek.com/v1"`
	OpenAIBaseURL   string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	AITimeout       time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"./static/uploads/contracts"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info(".env file loaded")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UseMockDatabase reports whether the in-memory store should back the facade.
// Mock mode applies when no DATABASE_URL is configured or in development.
func (c *Config) UseMockDatabase() bool {
	return c.DatabaseURL == "" || c.AppEnv == "development"
}

// HasAI reports whether at least one AI provider credential is configured.
func (c *Config) HasAI() bool {
	return c.DeepSeekAPIKey != "" || c.OpenAIAPIKey != ""
}
