//go:build wireinject
// +build wireinject

package lsql

import (
	"github.com/google/wire"

	ltest "github.com/vizlab-ci/nbprofiler/pkg/test"
)

func initializeTest(t ltest.T) (*Instance, error) {
	wire.Build(
		TestingWireSet,
	)
	return &Instance{}, nil
}
