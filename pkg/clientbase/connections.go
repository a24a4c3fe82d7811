package clientbase

import (
	cbhttp "github.com/vizlab-ci/nbprofiler/pkg/clientbase/http"
)

type Connections struct {
	Cfg        *Config
	HttpClient *cbhttp.Instance
}

func NewConnections(cfg *Config, httpClient *cbhttp.Instance) (*Connections, error) {
	c := &Connections{
		Cfg: cfg,
	}

	c.HttpClient = httpClient

	return c, nil
}

func (c *Connections) Close() {

}
