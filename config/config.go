package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config application config
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    EmailConfig    `mapstructure:"email"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Bill     BillConfig     `mapstructure:"bill"`
}

// ServerConfig http server
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig database connection. Driver is "mysql" or "sqlite";
// Path is only used by sqlite.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// JWTConfig session token settings
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// EmailConfig SMTP settings used to deliver bills
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// CurrencyConfig display currency
type CurrencyConfig struct {
	Symbol string `mapstructure:"symbol"`
}

// BillConfig PDF bill settings. FontPath points to a UTF-8 TTF that replaces
// the embedded DejaVu Sans faces.
type BillConfig struct {
	Brand    string `mapstructure:"brand"`
	FontPath string `mapstructure:"font_path"`
}

var (
	// GlobalConfig global config instance
	GlobalConfig *Config
)

// LoadConfig loads the config.
// Precedence: env vars > external config file > embedded defaults.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}
	log.Println("loaded embedded default config")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("warning: cannot read config file %s: %v", configPath, err)
		} else {
			log.Printf("merged config file: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/expo")
		externalViper.AddConfigPath("$HOME/.expo")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("warning: merge external config: %v", err)
			} else {
				log.Printf("merged config file: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// EXPO_DATABASE_DRIVER, EXPO_JWT_SECRET, ...
	v.SetEnvPrefix("EXPO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	GlobalConfig = &cfg

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 24
	}
	c.JWT.ExpireTime = time.Duration(c.JWT.ExpireHours) * time.Hour

	if c.Currency.Symbol == "" {
		c.Currency.Symbol = "₹"
	}
	if c.Bill.Brand == "" {
		c.Bill.Brand = "EXPO"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
}

// MustLoadConfig loads the config or panics
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

// GetConfig returns the global config
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("config not initialised, call LoadConfig first")
	}
	return GlobalConfig
}

// IsRelease reports whether the global config runs in gin release mode
func IsRelease() bool {
	return GlobalConfig != nil && GlobalConfig.Server.Mode == "release"
}

// SafeErrorMessage hides internal error details from clients in release mode
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if IsRelease() {
		return fallback
	}
	return err.Error()
}

// PrintConfig logs the active config without secrets
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("active config:")
	log.Printf("  server: %s (mode: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	if GlobalConfig.Database.Driver == "mysql" {
		log.Printf("  database: mysql %s@%s:%s/%s",
			GlobalConfig.Database.Username,
			GlobalConfig.Database.Host,
			GlobalConfig.Database.Port,
			GlobalConfig.Database.DBName)
	} else {
		log.Printf("  database: sqlite %s", GlobalConfig.Database.Path)
	}
	log.Printf("  email: %v", GlobalConfig.Email.Enabled)
	log.Printf("  currency: %s", GlobalConfig.Currency.Symbol)
}
