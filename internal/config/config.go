package config

import (
	lconfig "github.com/vizlab-ci/nbprofiler/pkg/config"
)

type Config struct {
	// TemplatePath is the tagged notebook template to expand.
	TemplatePath string `env:"TEMPLATE_PATH,required"`
	// GridPath is the JSON parameter grid file.
	GridPath string `env:"PARAMS_GRID_PATH,required"`
	// OutputDir receives the generated notebook files.
	OutputDir string `env:"OUTPUT_DIR" envDefault:"generated"`
	// MetricsDir receives the CSV reports; empty disables them.
	MetricsDir string `env:"METRICS_DIR"`

	GenerateWorkers int `env:"GENERATE_WORKERS" envDefault:"4"`

	Migrate          bool  `env:"MIGRATE" envDefault:"true"`
	MigrationVersion *uint `env:"MIGRATION_VERSION"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
