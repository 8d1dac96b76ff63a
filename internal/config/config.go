// Package config loads tool configuration: built-in defaults, an optional
// ~/.solazyinvoice/config.toml, and SOLAZYINVOICE_* environment variables,
// in increasing precedence. Command flags override all of these.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "SOLAZYINVOICE"
)

// Billing defaults applied when the config file does not set them.
const (
	DefaultHourlyRate  = 50.0
	DefaultMinDuration = 0.25 // hours
)

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal
	// and multi-tenant organisational accounts without registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID. It
	// supports device code flow without a client secret. Replace with your
	// own registered app ID for organisational deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
)

// OutlookConfig holds Microsoft Graph settings for the calendar export.
type OutlookConfig struct {
	TenantID string `mapstructure:"tenant_id"`
	ClientID string `mapstructure:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Asia/Kuala_Lumpur").
	// Empty means UTC.
	Timezone string `mapstructure:"timezone"`
}

// Config is the root configuration.
type Config struct {
	Billing model.Settings `mapstructure:"billing"`
	Outlook OutlookConfig  `mapstructure:"outlook"`
}

// BaseDir returns the root data directory (~/.solazyinvoice), used for the
// config file and the cached OAuth token.
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".solazyinvoice"), nil
}

// Load reads configuration into a Config. A missing config file is not an
// error; zero-value fields are filled with built-in defaults so callers
// always get usable settings. The invoice date defaults to today.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	base, err := BaseDir()
	if err != nil {
		return Config{}, err
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(base)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("billing.rate", DefaultHourlyRate)
	v.SetDefault("billing.min_duration", DefaultMinDuration)
	v.SetDefault("billing.invoice_date", "")
	v.SetDefault("billing.discount", 0.0)
	v.SetDefault("billing.tax", 0.0)
	v.SetDefault("billing.business_details", "")
	v.SetDefault("outlook.tenant_id", DefaultTenantID)
	v.SetDefault("outlook.client_id", DefaultClientID)
	v.SetDefault("outlook.timezone", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Billing.InvoiceDate == "" {
		cfg.Billing.InvoiceDate = time.Now().Format(timecalc.ISODateLayout)
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = DefaultTenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = DefaultClientID
	}

	return cfg, nil
}
