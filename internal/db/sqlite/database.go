package sqlite

import (
	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/internal/db"
	lsql "github.com/vizlab-ci/nbprofiler/pkg/sql"
)

type Database struct {
	campaigns    db.CampaignService
	notebookRuns db.NotebookRunService
	metrics      db.MetricsService
}

var _ db.Database = &Database{}

func NewInstance(cfg *lsql.Config) *lsql.Instance {
	log.Printf("Connecting to %s database %s", cfg.Engine, cfg.DatabaseName)
	instance, err := lsql.NewInstance(cfg)
	if err != nil {
		log.Printf("failed to create database instance: %s", err)
	}

	return instance
}

func NewDatabase(campaigns db.CampaignService, runs db.NotebookRunService, metrics db.MetricsService) db.Database {
	return &Database{
		campaigns:    campaigns,
		notebookRuns: runs,
		metrics:      metrics,
	}
}

func (d *Database) Campaigns() db.CampaignService {
	return d.campaigns
}

func (d *Database) NotebookRuns() db.NotebookRunService {
	return d.notebookRuns
}

func (d *Database) Metrics() db.MetricsService {
	return d.metrics
}
