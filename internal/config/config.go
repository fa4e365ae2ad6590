package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config is the application configuration, loaded once at startup from an
// optional bluejay.yaml plus BLUEJAY_* environment overrides.
type Config struct {
	Environment string `mapstructure:"environment"`

	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`

	Database struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Seed struct {
		CompanyName  string `mapstructure:"company_name"`
		CompanyEmail string `mapstructure:"company_email"`
	} `mapstructure:"seed"`
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load reads configuration with sensible local defaults. A missing config
// file is not an error; unreadable or malformed files are.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("bluejay")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BLUEJAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "bluejay.db")
	v.SetDefault("seed.company_name", "My Company")
	v.SetDefault("seed.company_email", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
