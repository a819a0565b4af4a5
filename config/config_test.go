package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.DeepSeekBaseURL)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, "./static/uploads/contracts", cfg.UploadDir)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "placeholder")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestUseMockDatabase(t *testing.T) {
	// No DATABASE_URL means mock regardless of environment.
	cfg := &Config{AppEnv: "production"}
	assert.True(t, cfg.UseMockDatabase())

	// Development forces mock even with a DATABASE_URL.
	cfg = &Config{AppEnv: "development", DatabaseURL: "postgres://localhost/app"}
	assert.True(t, cfg.UseMockDatabase())

	cfg = &Config{AppEnv: "production", DatabaseURL: "postgres://localhost/app"}
	assert.False(t, cfg.UseMockDatabase())
}

func TestHasAI(t *testing.T) {
	assert.False(t, (&Config{}).HasAI())
	assert.True(t, (&Config{DeepSeekAPIKey: "sk-a"}).HasAI())
	assert.True(t, (&Config{OpenAIAPIKey: "sk-b"}).HasAI())
}
