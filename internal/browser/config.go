package browser

import lconfig "github.com/vizlab-ci/nbprofiler/pkg/config"

// The viewport is made very tall so the whole notebook renders without
// scrollbars, which would otherwise interfere with element screenshots.
type Config struct {
	Headless       bool  `env:"BROWSER_HEADLESS" envDefault:"true"`
	ViewportWidth  int64 `env:"BROWSER_VIEWPORT_WIDTH" envDefault:"2000"`
	ViewportHeight int64 `env:"BROWSER_VIEWPORT_HEIGHT" envDefault:"20000"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
