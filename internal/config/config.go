package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App     App     `mapstructure:",squash"`
	Server  Server  `mapstructure:",squash"`
	Dataset Dataset `mapstructure:",squash"`
	Auth    Auth    `mapstructure:",squash"`
	Cases   Cases   `mapstructure:",squash"`
}

type App struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Dataset struct {
	Path          string        `mapstructure:"dataset_path"`
	FetchTimeout  time.Duration `mapstructure:"dataset_fetch_timeout"`
	ReloadEnabled bool          `mapstructure:"dataset_reload_enabled"`
	ReloadCron    string        `mapstructure:"dataset_reload_cron"`
}

type Auth struct {
	Secret       string        `mapstructure:"auth_secret"`
	TokenTTL     time.Duration `mapstructure:"auth_token_ttl"`
	SeedEmail    string        `mapstructure:"auth_seed_email"`
	SeedPassword string        `mapstructure:"auth_seed_password"`
}

type Cases struct {
	PageSize int `mapstructure:"cases_page_size"`
}

// DefaultAuthSecret is only accepted in the local environment.
const DefaultAuthSecret = "change-me"

func SetDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("HOST", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("DATASET_PATH", "Data/fedex_dca_enriched_dataset.csv")
	v.SetDefault("DATASET_FETCH_TIMEOUT", "30s")
	v.SetDefault("DATASET_RELOAD_ENABLED", false)
	v.SetDefault("DATASET_RELOAD_CRON", "*/15 * * * *") // every 15 minutes

	v.SetDefault("AUTH_SECRET", DefaultAuthSecret)
	v.SetDefault("AUTH_TOKEN_TTL", "24h")
	v.SetDefault("AUTH_SEED_EMAIL", "")
	v.SetDefault("AUTH_SEED_PASSWORD", "")

	v.SetDefault("CASES_PAGE_SIZE", 25)
}

// NewConfig loads .env (when present), then environment variables, on top of
// the defaults.
func NewConfig() (*Config, error) {
	loadEnvFile()
	return Load(viper.New())
}

// Load decodes the configuration from v. Every key must have a default so
// AutomaticEnv can see it during Unmarshal.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	for i, origin := range cfg.Server.AllowedOrigins {
		cfg.Server.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	if cfg.Cases.PageSize <= 0 {
		cfg.Cases.PageSize = 25
	}
	if cfg.Dataset.Path == "" {
		return nil, errors.New("DATASET_PATH must not be empty")
	}
	if cfg.Auth.Secret == "" {
		return nil, errors.New("AUTH_SECRET must not be empty")
	}
	if cfg.Auth.Secret == DefaultAuthSecret {
		if cfg.App.Environment != "local" {
			return nil, errors.Errorf("AUTH_SECRET must be set outside the local environment (ENVIRONMENT=%s)", cfg.App.Environment)
		}
		logrus.Warn("AUTH_SECRET is the built-in default, tokens are forgeable; set it before deploying")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (s Server) Addr() string {
	return s.Host + ":" + s.Port
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.WithError(err).Warn("could not resolve working directory")
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}
	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.WithField("path", location).Debug(".env loaded")
			return
		}
	}
	logrus.Debug("no .env file found, using process environment")
}
