package sqlite

import (
	"context"

	"github.com/vizlab-ci/nbprofiler/internal/db"
	lsql "github.com/vizlab-ci/nbprofiler/pkg/sql"
)

type Metrics struct {
	db *lsql.Instance
}

var _ db.MetricsService = &Metrics{}

func NewMetrics(instance *lsql.Instance) db.MetricsService {
	return &Metrics{
		db: instance,
	}
}

func (m *Metrics) CreateMetric(ctx context.Context, metric *db.Metric) (*db.Metric, error) {
	query := `
	INSERT INTO metrics (run_id, cell_index, name, type, value_numeric, value_text)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	args := []interface{}{
		metric.RunId, metric.CellIndex, metric.Name,
		metric.Type, metric.ValueNumeric, metric.ValueText,
	}
	id, err := m.db.ExecAndReturnId(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	created := *metric
	created.Id = id
	return &created, nil
}

func (m *Metrics) ListMetrics(ctx context.Context, runId int64) ([]*db.Metric, error) {
	query := `
	SELECT id, run_id, cell_index, name, type, value_numeric, value_text
	FROM metrics
	WHERE run_id = ?
	ORDER BY cell_index, name
	`
	args := []interface{}{runId}
	rows, err := m.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}
	response := make([]*db.Metric, 0)
	for rows.Next() {
		metric := &db.Metric{}
		err := rows.Scan(
			&metric.Id, &metric.RunId, &metric.CellIndex,
			&metric.Name, &metric.Type, &metric.ValueNumeric, &metric.ValueText)
		if err != nil {
			return nil, err
		}
		response = append(response, metric)
	}

	return response, nil
}
