package config

import (
	"fmt"
	"os"
	"time"

	"github.com/greenloop/kerbside/internal/common"
	"github.com/greenloop/kerbside/internal/llm"
	"github.com/greenloop/kerbside/internal/model"
	"github.com/spf13/viper"
)

// Settings are the resolved application settings a command needs beyond its
// own flags.
type Settings struct {
	Address      string
	DatabasePath string
	ReminderTime model.TimeOfDay
}

// Load resolves settings from viper, applying defaults and validating what
// must be present.
func Load() (Settings, error) {
	settings := Settings{
		Address:      viper.GetString("address"),
		DatabasePath: viper.GetString("database.path"),
		ReminderTime: model.DefaultReminderTime,
	}

	if settings.DatabasePath == "" {
		settings.DatabasePath = "$HOME/.local/share/kerbside/kerbside.db"
	}
	settings.DatabasePath = ExpandPath(settings.DatabasePath)

	if raw := viper.GetString("reminders.time"); raw != "" {
		at, err := model.ParseTimeOfDay(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: reminders.time: %v", common.ErrInvalidConfig, err)
		}
		settings.ReminderTime = at
	}

	return settings, nil
}

// RequireAddress returns the configured address or a user-facing error
// explaining how to set one.
func (s Settings) RequireAddress() (string, error) {
	if s.Address == "" {
		return "", common.NewUserError(
			"no address configured; set 'address' in the config file or KERBSIDE_ADDRESS",
			common.ErrMissingConfig)
	}
	return s.Address, nil
}

// ClassifierConfig resolves the classification service settings. The API key
// comes from the environment first, then the config file.
func ClassifierConfig() (llm.Config, error) {
	apiKey := os.Getenv("KERBSIDE_OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = viper.GetString("openai.api_key")
	}
	if apiKey == "" {
		return llm.Config{}, common.NewUserError(
			"no OpenAI API key configured; set KERBSIDE_OPENAI_API_KEY or openai.api_key",
			common.ErrMissingConfig)
	}

	cfg := llm.Config{
		APIKey:            apiKey,
		Model:             viper.GetString("openai.model"),
		Temperature:       viper.GetFloat64("openai.temperature"),
		MaxTokens:         viper.GetInt("openai.max_tokens"),
		RequestsPerMinute: viper.GetInt("openai.requests_per_minute"),
	}
	if ttl := viper.GetString("openai.cache_ttl"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return llm.Config{}, fmt.Errorf("%w: openai.cache_ttl: %v", common.ErrInvalidConfig, err)
		}
		cfg.CacheTTL = parsed
	}

	return cfg, nil
}
