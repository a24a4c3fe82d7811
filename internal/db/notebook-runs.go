package db

import (
	"context"
	"time"
)

type NotebookRun struct {
	Id                      int64
	CampaignId              string
	NotebookFilename        string
	TotalCells              int64
	ExecutedCells           int64
	ProfiledCells           int64
	TotalExecutionTime      float64
	ClientTotalDataReceived float64
	CreatedTs               time.Time
}

type NotebookRunService interface {
	CreateNotebookRun(ctx context.Context, run *NotebookRun) (*NotebookRun, error)
	GetNotebookRunById(ctx context.Context, id int64) (*NotebookRun, error)
	ListNotebookRuns(ctx context.Context, campaignId string) ([]*NotebookRun, error)
}
