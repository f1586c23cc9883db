package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is read from the environment, optionally overlaid by a config.yaml
// in the working directory.
type Settings struct {
	HTTPAddr      string        `mapstructure:"http_addr"`
	DatabaseDSN   string        `mapstructure:"database_dsn"`
	DBAutoMigrate bool          `mapstructure:"db_auto_migrate"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
	CryptoKey     string        `mapstructure:"crypto_key"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
	CORSOrigins   []string      `mapstructure:"cors_allowed_origins"`

	AIProvider           string        `mapstructure:"ai_provider"`
	GeminiAPIKey         string        `mapstructure:"gemini_api_key"`
	GeminiModel          string        `mapstructure:"gemini_model"`
	AITimeout            time.Duration `mapstructure:"ai_timeout"`
	GenerationStaleAfter time.Duration `mapstructure:"generation_stale_after"`

	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`
	GoogleRedirectURL  string `mapstructure:"google_redirect_url"`
}

var settingKeys = []string{
	"http_addr", "database_dsn", "db_auto_migrate", "jwt_secret", "jwt_expiration",
	"crypto_key", "log_level", "log_format", "cors_allowed_origins",
	"ai_provider", "gemini_api_key", "gemini_model", "ai_timeout", "generation_stale_after",
	"google_client_id", "google_client_secret", "google_redirect_url",
}

func Load() (Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("db_auto_migrate", true)
	v.SetDefault("jwt_expiration", "24h")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("cors_allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("ai_timeout", "5m")
	v.SetDefault("generation_stale_after", "15m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only sees keys viper already knows about.
	for _, k := range settingKeys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	if s.JWTSecret == "" {
		return Settings{}, errors.New("JWT_SECRET must be set")
	}
	if s.CryptoKey != "" && len(s.CryptoKey) != 32 {
		return Settings{}, errors.New("CRYPTO_KEY must be 32 bytes")
	}
	return s, nil
}
