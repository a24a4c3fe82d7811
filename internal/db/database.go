package db

type Database interface {
	Campaigns() CampaignService
	NotebookRuns() NotebookRunService
	Metrics() MetricsService
}
