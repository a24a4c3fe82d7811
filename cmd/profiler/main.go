package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/internal/browser"
	"github.com/vizlab-ci/nbprofiler/internal/campaign"
	"github.com/vizlab-ci/nbprofiler/internal/config"
	"github.com/vizlab-ci/nbprofiler/internal/db"
	sqlitemig "github.com/vizlab-ci/nbprofiler/internal/migrations/sqlite"
	"github.com/vizlab-ci/nbprofiler/internal/profiler"
	"github.com/vizlab-ci/nbprofiler/internal/report"
	"github.com/vizlab-ci/nbprofiler/pkg/app"
	"github.com/vizlab-ci/nbprofiler/pkg/clientbase"
	lsql "github.com/vizlab-ci/nbprofiler/pkg/sql"
	lmigration "github.com/vizlab-ci/nbprofiler/pkg/sql/migration"
	ltime "github.com/vizlab-ci/nbprofiler/pkg/time"
)

type dependencies struct {
	cfg         *config.Config
	app         *app.Instance
	driver      browser.Driver
	connections *clientbase.Connections
	database    db.Database
	migration   *lmigration.Migration
	runner      *campaign.Runner
}

func NewMigration(appCfg *config.Config, cfg *lsql.Config) (*lmigration.Migration, error) {
	if appCfg.Migrate {
		return lmigration.NewMigration(cfg, map[string]lmigration.MigrationSet{"sqlite": lmigration.MigrationSet{AssetNames: sqlitemig.AssetNames, Asset: sqlitemig.Asset}})
	}
	return nil, nil
}

func NewDriver(cfg *browser.Config) (browser.Driver, error) {
	return browser.NewChrome(cfg)
}

func NewSampler() profiler.ClientSampler {
	return profiler.NewHostSampler()
}

func NewWatch() ltime.Watch {
	return ltime.NewWallWatch()
}

func NewSleeper() ltime.Sleeper {
	return ltime.NewWallSleeper()
}

func NewReportWriter(cfg *config.Config, watch ltime.Watch) *report.Writer {
	return report.NewWriter(cfg.MetricsDir, watch)
}

func newDependencies(app *app.Instance, cfg *config.Config, driver browser.Driver,
	connections *clientbase.Connections, database db.Database,
	migration *lmigration.Migration, runner *campaign.Runner) *dependencies {
	return &dependencies{
		cfg:         cfg,
		app:         app,
		driver:      driver,
		connections: connections,
		database:    database,
		migration:   migration,
		runner:      runner,
	}
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetReportCaller(true)
	deps, err := InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	deps.app.AddCloseFunc(deps.driver.Close)
	deps.app.AddCloseFunc(func() error {
		deps.connections.Close()
		return nil
	})

	if deps.cfg.Migrate {
		if err := deps.migration.Run(deps.cfg.MigrationVersion); err != nil {
			panic(err)
		}
	}

	campaignId, err := deps.runner.Run(deps.app.Context())
	if err != nil {
		log.Errorf("campaign failed: %s", err)
	} else {
		log.Infof("campaign %s finished", campaignId)
	}
	deps.app.Stop(err != nil)

	deps.app.WaitForFinish()
}
