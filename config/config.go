// Package config loads goldbook settings from goldbook.yaml, a .env file and
// GOLDBOOK_ environment variables.
//
// Environment variables name the nested keys with underscores, for instance
// GOLDBOOK_PRICE_GOLDAPI_TOKEN sets price.goldapi_token.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/goldbook/cloud"
	"github.com/etnz/goldbook/logging"
	"github.com/etnz/goldbook/notify"
	"github.com/etnz/goldbook/price"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Name of the config file, without extension.
const Name = "goldbook"

// EnvPrefix of the environment variables.
const EnvPrefix = "GOLDBOOK"

// DefaultStore is where the books are kept when nothing else is configured.
const DefaultStore = "goldbook-data"

// Config is the whole configuration.
type Config struct {
	Store  string         `mapstructure:"store"`
	Log    logging.Config `mapstructure:"log"`
	Price  price.Config   `mapstructure:"price"`
	Watch  WatchConfig    `mapstructure:"watch"`
	Cloud  cloud.Config   `mapstructure:"cloud"`
	Mail   notify.Config  `mapstructure:"mail"`
	Server ServerConfig   `mapstructure:"server"`
}

// WatchConfig drives the live price ticker.
type WatchConfig struct {
	Schedule string `mapstructure:"schedule"`
}

// ServerConfig of the local REST API.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	p := price.DefaultConfig()
	v.SetDefault("store", DefaultStore)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("price.currency", p.Currency)
	v.SetDefault("price.goldapi_token", "")
	v.SetDefault("price.timeout", p.Timeout)
	v.SetDefault("price.rates_url", p.RatesURL)
	v.SetDefault("price.goldapi_url", p.GoldAPIURL)
	v.SetDefault("price.scrape_url", p.ScrapeURL)
	v.SetDefault("price.proxy_url", p.ProxyURL)
	v.SetDefault("watch.schedule", price.DefaultSchedule)
	v.SetDefault("cloud.client_id", "")
	v.SetDefault("cloud.client_secret", "")
	v.SetDefault("cloud.redirect_url", "urn:ietf:wg:oauth:2.0:oob")
	v.SetDefault("cloud.refresh_token", "")
	v.SetDefault("cloud.access_token", "")
	v.SetDefault("cloud.base_url", cloud.DefaultBaseURL)
	v.SetDefault("mail.api_key", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.from_name", "Pyramids Gold")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.base_url", "")
	v.SetDefault("mail.shop_label", "Pyramids Gold System")
	v.SetDefault("server.addr", "127.0.0.1:8080")
}

// Load reads the configuration.
//
// envFile is loaded first when it exists; variables already set in the
// environment win. file is the explicit config file; when empty goldbook.yaml
// is looked up in the working directory and the user config directory, and
// is optional.
func Load(file, envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("cannot load %q: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config %q: %w", file, err)
		}
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, Name))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("cannot read config: %w", err)
			}
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
