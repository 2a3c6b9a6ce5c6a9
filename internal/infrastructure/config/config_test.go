package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Chat:   ChatConfig{Temperature: 0.7, MaxTokens: 500},
		Analysis: AnalysisConfig{
			Temperature: 0.5,
			MaxTokens:   600,
		},
		Storage: StorageConfig{
			RedisAddr: "localhost:6379",
			KeyPrefix: "belumin",
		},
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validateConfig(validTestConfig()))
	})

	t.Run("missing port fails", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Server.Port = 0
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("enabled openrouter requires api key", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.OpenRouter.Enabled = true
		assert.Error(t, validateConfig(cfg))

		cfg.OpenRouter.APIKey = "sk-or-test"
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("disabled openrouter needs no api key", func(t *testing.T) {
		assert.NoError(t, validateConfig(validTestConfig()))
	})

	t.Run("missing redis address fails", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Storage.RedisAddr = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("missing key prefix fails", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Storage.KeyPrefix = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("non positive token budgets fail", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Chat.MaxTokens = 0
		assert.Error(t, validateConfig(cfg))

		cfg = validTestConfig()
		cfg.Analysis.MaxTokens = -1
		assert.Error(t, validateConfig(cfg))
	})
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-o...wxyz", maskAPIKey("sk-or-v1-abcdwxyz"))
}
