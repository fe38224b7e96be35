package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "ALLOWED_ORIGINS", "FRONTEND_URL", "FRONTEND_URL_2", "POSTGRES_URI", "REDIS_URI", "MONGODB_URI", "MONGO_URI", "GROQ_MODEL", "SMTP_HOST"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.GroqModel)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://codeverse.dev, https://www.codeverse.dev ,")
	cfg := Load()
	assert.Equal(t, []string{"https://codeverse.dev", "https://www.codeverse.dev"}, cfg.AllowedOrigins)
}

func TestLoadOriginsFallBackToFrontendURL(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "https://app.codeverse.dev")
	t.Setenv("FRONTEND_URL_2", "https://staging.codeverse.dev")
	cfg := Load()
	assert.Equal(t, []string{"https://app.codeverse.dev", "https://staging.codeverse.dev"}, cfg.AllowedOrigins)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "  Production ")
	assert.True(t, Load().IsProduction())
}

func TestSMTPFromFallsBackToUsername(t *testing.T) {
	t.Setenv("SMTP_USERNAME", "mailer@codeverse.dev")
	t.Setenv("SMTP_FROM", "")
	assert.Equal(t, "mailer@codeverse.dev", Load().SMTPFrom)
}
