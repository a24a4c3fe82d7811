package campaign

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vizlab-ci/nbprofiler/internal/db"
	"github.com/vizlab-ci/nbprofiler/internal/profiler"
	"github.com/vizlab-ci/nbprofiler/internal/report"
)

// Store persists profiling results into the results database: one
// notebook_runs row per profiled notebook and one metrics row per
// measured value. Cell index 0 marks notebook-level metrics.
type Store struct {
	database db.Database
}

func NewStore(database db.Database) *Store {
	return &Store{
		database: database,
	}
}

func (s *Store) SaveResult(ctx context.Context, campaignId string, result *report.Result) error {
	run, err := s.database.NotebookRuns().CreateNotebookRun(ctx, &db.NotebookRun{
		CampaignId:              campaignId,
		NotebookFilename:        filepath.Base(result.NotebookPath),
		TotalCells:              int64(result.Notebook.TotalCells),
		ExecutedCells:           int64(result.Notebook.ExecutedCells),
		ProfiledCells:           int64(result.Notebook.ProfiledCells),
		TotalExecutionTime:      result.Notebook.TotalExecutionTime,
		ClientTotalDataReceived: result.Notebook.ClientTotalDataReceived,
	})
	if err != nil {
		return err
	}

	for _, cell := range result.Cells {
		status := string(cell.ExecutionStatus)
		_, err := s.database.Metrics().CreateMetric(ctx, &db.Metric{
			RunId:     run.Id,
			CellIndex: int64(cell.CellIndex),
			Name:      "execution_status",
			Type:      db.MetricTypeText,
			ValueText: &status,
		})
		if err != nil {
			return err
		}
		if err := s.saveBaseMetrics(ctx, run.Id, int64(cell.CellIndex), &cell.BaseMetrics); err != nil {
			return err
		}
	}

	return s.saveBaseMetrics(ctx, run.Id, 0, &result.Notebook.BaseMetrics)
}

func (s *Store) saveBaseMetrics(ctx context.Context, runId int64, cellIndex int64, metrics *profiler.BaseMetrics) error {
	values := map[string]float64{
		"total_execution_time":       metrics.TotalExecutionTime,
		"client_total_data_received": metrics.ClientTotalDataReceived,
	}
	names := []string{"total_execution_time", "client_total_data_received"}
	for _, key := range profiler.SampleKeys() {
		samples := metrics.Samples[key]
		for _, stat := range profiler.Stats {
			name := fmt.Sprintf("%s_%s_%s", key.Source, stat, key.Metric)
			values[name] = samples.StatValue(stat)
			names = append(names, name)
		}
	}

	for _, name := range names {
		value := values[name]
		_, err := s.database.Metrics().CreateMetric(ctx, &db.Metric{
			RunId:        runId,
			CellIndex:    cellIndex,
			Name:         name,
			Type:         db.MetricTypeNumeric,
			ValueNumeric: &value,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
