package db

import (
	"context"
)

type MetricType string

const (
	MetricTypeNumeric MetricType = "numeric"
	MetricTypeText    MetricType = "text"
)

// Metric is one measured value of a notebook run. CellIndex 0 means the
// metric describes the whole notebook rather than a single cell.
type Metric struct {
	Id           int64
	RunId        int64
	CellIndex    int64
	Name         string
	Type         MetricType
	ValueNumeric *float64
	ValueText    *string
}

type MetricsService interface {
	CreateMetric(ctx context.Context, m *Metric) (*Metric, error)
	ListMetrics(ctx context.Context, runId int64) ([]*Metric, error)
}
