package jupyter

import lconfig "github.com/vizlab-ci/nbprofiler/pkg/config"

type Config struct {
	BaseUrl    string `env:"JUPYTERLAB_BASE_URL" envDefault:"http://localhost:8888"`
	Token      string `env:"JUPYTERLAB_TOKEN"`
	KernelName string `env:"JUPYTERLAB_KERNEL_NAME" envDefault:"python3"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
