package sqlite

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizlab-ci/nbprofiler/internal/db"
	sqlitemig "github.com/vizlab-ci/nbprofiler/internal/migrations/sqlite"
	lsql "github.com/vizlab-ci/nbprofiler/pkg/sql"
)

func newTestDatabase(t *testing.T) db.Database {
	cfg, err := lsql.NewTestingConfig(t)
	require.NoError(t, err)
	instance, err := lsql.NewInstance(cfg)
	require.NoError(t, err)

	// Apply the up migrations directly; campaign runs go through the
	// golang-migrate path in main.
	names := sqlitemig.AssetNames()
	sort.Strings(names)
	for _, name := range names {
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		data, err := sqlitemig.Asset(name)
		require.NoError(t, err)
		_, err = instance.ExecContext(context.Background(), string(data))
		require.NoError(t, err)
	}

	return NewDatabase(NewCampaigns(instance), NewNotebookRuns(instance), NewMetrics(instance))
}

func TestCampaignRoundTrip(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	created, err := database.Campaigns().CreateCampaign(ctx, &db.Campaign{
		Id:           "11111111-2222-3333-4444-555555555555",
		TemplatePath: "templates/scenario.ipynb",
		ParamsPath:   "templates/params.json",
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedTs.IsZero())

	listed, err := database.Campaigns().ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.Id, listed[0].Id)
}

func TestNotebookRunRoundTrip(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	_, err := database.Campaigns().CreateCampaign(ctx, &db.Campaign{Id: "c1"})
	require.NoError(t, err)

	run, err := database.NotebookRuns().CreateNotebookRun(ctx, &db.NotebookRun{
		CampaignId:              "c1",
		NotebookFilename:        "scenario-x_value5.ipynb",
		TotalCells:              3,
		ExecutedCells:           3,
		ProfiledCells:           2,
		TotalExecutionTime:      1.5,
		ClientTotalDataReceived: 4,
	})
	require.NoError(t, err)
	assert.Greater(t, run.Id, int64(0))

	runs, err := database.NotebookRuns().ListNotebookRuns(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "scenario-x_value5.ipynb", runs[0].NotebookFilename)
	assert.Equal(t, int64(2), runs[0].ProfiledCells)
}

func TestMetricRoundTrip(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	_, err := database.Campaigns().CreateCampaign(ctx, &db.Campaign{Id: "c1"})
	require.NoError(t, err)
	run, err := database.NotebookRuns().CreateNotebookRun(ctx, &db.NotebookRun{CampaignId: "c1"})
	require.NoError(t, err)

	value := 42.5
	status := "Completed"
	_, err = database.Metrics().CreateMetric(ctx, &db.Metric{
		RunId:        run.Id,
		CellIndex:    1,
		Name:         "client_mean_cpu",
		Type:         db.MetricTypeNumeric,
		ValueNumeric: &value,
	})
	require.NoError(t, err)
	_, err = database.Metrics().CreateMetric(ctx, &db.Metric{
		RunId:     run.Id,
		CellIndex: 1,
		Name:      "execution_status",
		Type:      db.MetricTypeText,
		ValueText: &status,
	})
	require.NoError(t, err)

	metrics, err := database.Metrics().ListMetrics(ctx, run.Id)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, "client_mean_cpu", metrics[0].Name)
	require.NotNil(t, metrics[0].ValueNumeric)
	assert.Equal(t, 42.5, *metrics[0].ValueNumeric)
	assert.Equal(t, db.MetricTypeText, metrics[1].Type)
}
