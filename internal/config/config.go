package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/scheduler"
	"github.com/wildlifewatch/conservation-hub/pkg/security"
)

const (
	SourceCSV = "csv"
	SourceAPI = "api"

	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Tabs names the spreadsheet tabs
type Tabs struct {
	Organizations string `yaml:"organizations" validate:"required"`
	Fundraising   string `yaml:"fundraising" validate:"required"`
	Highlights    string `yaml:"highlights" validate:"required"`
}

// ProgressConfig selects where visitor progress is persisted
type ProgressConfig struct {
	Driver string `yaml:"driver" validate:"oneof=memory file sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required_unless=Driver memory"`
}

type AnalyticsConfig struct {
	GAID      string `yaml:"gaID,omitempty" validate:"omitempty,ga_id"`
	AdSenseID string `yaml:"adsenseID,omitempty" validate:"omitempty,adsense_id"`
}

// Config represents the application configuration
type Config struct {
	SheetID         string          `yaml:"sheetID" validate:"required"`
	Tabs            Tabs            `yaml:"tabs"`
	Source          string          `yaml:"source" validate:"oneof=csv api"`
	APIKey          string          `yaml:"apiKey,omitempty"`
	CredentialsFile string          `yaml:"credentialsFile,omitempty"`
	ListenAddr      string          `yaml:"listenAddr" validate:"required"`
	CacheTTL        time.Duration   `yaml:"cacheTTL"`
	RefreshCron     string          `yaml:"refreshCron,omitempty"`
	DefaultLocale   model.Locale    `yaml:"defaultLocale" validate:"oneof=zh-TW en"`
	Timezone        string          `yaml:"timezone"`
	Progress        ProgressConfig  `yaml:"progress"`
	Analytics       AnalyticsConfig `yaml:"analytics,omitempty"`
	SiteURL         string          `yaml:"siteURL,omitempty" validate:"omitempty,url"`

	location *time.Location
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("ga_id", func(fl validator.FieldLevel) bool {
		return security.IsValidGAID(fl.Field().String())
	})
	_ = validate.RegisterValidation("adsense_id", func(fl validator.FieldLevel) bool {
		return security.IsValidAdSenseID(fl.Field().String())
	})
}

// Load loads and validates the configuration from conservation_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads conservation_config.<env>.yaml, applying .env files and
// environment overrides. An empty env selects conservation_config.yaml.
func LoadWithEnv(env string) (*Config, error) {
	if env != "" {
		_ = godotenv.Load(".env." + env)
	}
	_ = godotenv.Load()

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the refresh schedule and the timezone
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Source == SourceAPI && cfg.APIKey == "" && cfg.CredentialsFile == "" {
		return fmt.Errorf("config validation failed: source %q needs apiKey or credentialsFile", SourceAPI)
	}

	if cfg.RefreshCron != "" {
		if err := scheduler.Validate(cfg.RefreshCron); err != nil {
			return fmt.Errorf("invalid refreshCron: %w", err)
		}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return nil
}

// Location is the timezone donation windows are evaluated in
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// envOverrides maps environment variables onto config fields
var envOverrides = []struct {
	name  string
	field func(cfg *Config) *string
}{
	{"SHEET_ID", func(cfg *Config) *string { return &cfg.SheetID }},
	{"SHEETS_SOURCE", func(cfg *Config) *string { return &cfg.Source }},
	{"SHEETS_API_KEY", func(cfg *Config) *string { return &cfg.APIKey }},
	{"GOOGLE_APPLICATION_CREDENTIALS", func(cfg *Config) *string { return &cfg.CredentialsFile }},
	{"LISTEN_ADDR", func(cfg *Config) *string { return &cfg.ListenAddr }},
	{"REFRESH_CRON", func(cfg *Config) *string { return &cfg.RefreshCron }},
	{"PROGRESS_DRIVER", func(cfg *Config) *string { return &cfg.Progress.Driver }},
	{"DATABASE_URL", func(cfg *Config) *string { return &cfg.Progress.DSN }},
	{"GA_ID", func(cfg *Config) *string { return &cfg.Analytics.GAID }},
	{"ADSENSE_ID", func(cfg *Config) *string { return &cfg.Analytics.AdSenseID }},
}

func applyEnv(cfg *Config) {
	for _, o := range envOverrides {
		if value, ok := os.LookupEnv(o.name); ok && value != "" {
			*o.field(cfg) = value
		}
	}
	if value := os.Getenv("CACHE_TTL"); value != "" {
		if ttl, err := time.ParseDuration(value); err == nil {
			cfg.CacheTTL = ttl
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Tabs.Organizations == "" {
		cfg.Tabs.Organizations = "organizations"
	}
	if cfg.Tabs.Fundraising == "" {
		cfg.Tabs.Fundraising = "fundraisingData"
	}
	if cfg.Tabs.Highlights == "" {
		cfg.Tabs.Highlights = "highlights"
	}
	if cfg.Source == "" {
		cfg.Source = SourceCSV
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = model.DefaultLocale
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Taipei"
	}
	if cfg.Progress.Driver == "" {
		cfg.Progress.Driver = DriverMemory
	}
}

// findConfigFile searches for the config file in the current directory and home directory.
// A non-empty env is added as an extension, e.g. conservation_config.prod.yaml.
func findConfigFile(env string) (string, error) {
	configFileName := "conservation_config.yaml"
	if env != "" {
		configFileName = "conservation_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
