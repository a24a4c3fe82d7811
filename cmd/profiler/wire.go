//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/vizlab-ci/nbprofiler/internal/browser"
	"github.com/vizlab-ci/nbprofiler/internal/campaign"
	"github.com/vizlab-ci/nbprofiler/internal/config"
	dbsqlite "github.com/vizlab-ci/nbprofiler/internal/db/sqlite"
	"github.com/vizlab-ci/nbprofiler/internal/jupyter"
	"github.com/vizlab-ci/nbprofiler/internal/profiler"
	"github.com/vizlab-ci/nbprofiler/pkg/app"
	"github.com/vizlab-ci/nbprofiler/pkg/clientbase"
	cbhttp "github.com/vizlab-ci/nbprofiler/pkg/clientbase/http"
	lsql "github.com/vizlab-ci/nbprofiler/pkg/sql"
)

// wire up the dependencies.
func InitializeDependencies() (*dependencies, error) {
	wire.Build(config.NewConfigFromEnv, app.NewInstance,
		cbhttp.NewConfigFromEnv, cbhttp.NewInstance, clientbase.NewConfigFromEnv, clientbase.NewConnections,
		jupyter.NewConfigFromEnv, jupyter.NewLab,
		browser.NewConfigFromEnv, NewDriver,
		profiler.NewConfigFromEnv, NewSampler, NewWatch, NewSleeper, profiler.NewNotebookProfiler,
		NewReportWriter,
		lsql.NewConfigFromEnv, dbsqlite.NewInstance, dbsqlite.NewCampaigns, dbsqlite.NewNotebookRuns,
		dbsqlite.NewMetrics, dbsqlite.NewDatabase, NewMigration,
		campaign.NewStore, campaign.NewRunner,
		newDependencies)
	return &dependencies{}, nil
}
