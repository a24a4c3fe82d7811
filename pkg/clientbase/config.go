package clientbase

import (
	lconfig "github.com/vizlab-ci/nbprofiler/pkg/config"
)

type Config struct {
	UserAgent string `env:"CLIENT_USER_AGENT" envDefault:"nbprofiler"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
