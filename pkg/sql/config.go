package lsql

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/ghodss/yaml"

	lconfig "github.com/vizlab-ci/nbprofiler/pkg/config"
)

type Config struct {
	ConfigSecrets

	Engine         string        `env:"SQL_DB_ENGINE" envDefault:"sqlite"`
	DatabaseName   string        `env:"SQL_DB_NAME" envDefault:"nbprofiler"`
	Address        string        `env:"SQL_DB_ADDRESS" envDefault:""`
	Options        string        `env:"SQL_DB_OPTIONS" envDefault:""`
	MaxLifetime    time.Duration `env:"SQL_DB_MAX_LIFETIME" envDefault:"30m"`
	MaxIdleConns   int           `env:"SQL_DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns   int           `env:"SQL_DB_MAX_OPEN_CONNS" envDefault:"20"`
	ConfigLocation string        `env:"SQL_DB_CONFIG_LOCATION"`
}

type ConfigSecrets struct {
	Username string `env:"SQL_DB_USERNAME"`
	Password string `env:"SQL_DB_PASSWORD"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ConfigLocation != "" {
		err = cfg.loadFile()
		if err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func (cfg *Config) PartialAddress() string {
	switch strings.ToLower(cfg.Engine) {
	case "sqlite":
		if cfg.Address != "" {
			return cfg.Address
		}
		return ":memory:"
	default:
		return ""
	}
}

func (cfg *Config) FullAddress() string {
	switch strings.ToLower(cfg.Engine) {
	case "sqlite":
		if cfg.Address != "" {
			return cfg.Address
		}
		return ":memory:"
	default:
		return ""
	}
}

func (cfg *Config) loadFile() error {
	f, err := os.Open(cfg.ConfigLocation)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &cfg.ConfigSecrets); err != nil {
		return err
	}

	return nil
}
