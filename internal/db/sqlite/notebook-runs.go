package sqlite

import (
	"context"

	"github.com/vizlab-ci/nbprofiler/internal/db"
	lsql "github.com/vizlab-ci/nbprofiler/pkg/sql"
)

type NotebookRuns struct {
	db *lsql.Instance
}

var _ db.NotebookRunService = &NotebookRuns{}

func NewNotebookRuns(instance *lsql.Instance) db.NotebookRunService {
	return &NotebookRuns{
		db: instance,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func NotebookRunInstance(row scanner) (*db.NotebookRun, error) {
	run := &db.NotebookRun{}
	err := row.Scan(
		&run.Id, &run.CampaignId, &run.NotebookFilename,
		&run.TotalCells, &run.ExecutedCells, &run.ProfiledCells,
		&run.TotalExecutionTime, &run.ClientTotalDataReceived, &run.CreatedTs)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (n *NotebookRuns) CreateNotebookRun(ctx context.Context, run *db.NotebookRun) (*db.NotebookRun, error) {
	query := `
	INSERT INTO notebook_runs (campaign_id, notebook_filename, total_cells, executed_cells, profiled_cells, total_execution_time, client_total_data_received)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	args := []interface{}{
		run.CampaignId, run.NotebookFilename,
		run.TotalCells, run.ExecutedCells, run.ProfiledCells,
		run.TotalExecutionTime, run.ClientTotalDataReceived,
	}
	id, err := n.db.ExecAndReturnId(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return n.GetNotebookRunById(ctx, id)
}

func (n *NotebookRuns) GetNotebookRunById(ctx context.Context, id int64) (*db.NotebookRun, error) {
	query := `
	SELECT id, campaign_id, notebook_filename, total_cells, executed_cells, profiled_cells, total_execution_time, client_total_data_received, created_ts
	FROM notebook_runs
	WHERE id = ?
	`
	row := n.db.QueryRowContext(ctx, query, id)

	if response, err := NotebookRunInstance(row); err != nil {
		return nil, err
	} else {
		return response, nil
	}
}

func (n *NotebookRuns) ListNotebookRuns(ctx context.Context, campaignId string) ([]*db.NotebookRun, error) {
	query := `
	SELECT id, campaign_id, notebook_filename, total_cells, executed_cells, profiled_cells, total_execution_time, client_total_data_received, created_ts
	FROM notebook_runs
	WHERE campaign_id = ?
	`
	args := []interface{}{campaignId}
	rows, err := n.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}
	response := make([]*db.NotebookRun, 0)
	for rows.Next() {
		if run, err := NotebookRunInstance(rows); err != nil {
			return nil, err
		} else {
			response = append(response, run)
		}
	}

	return response, nil
}
