package db

import (
	"context"
	"fmt"
)

type CampaignsMock struct {
	Items []*Campaign
}

var _ CampaignService = &CampaignsMock{}

func (c *CampaignsMock) CreateCampaign(_ context.Context, campaign *Campaign) (*Campaign, error) {
	c.Items = append(c.Items, campaign)
	return campaign, nil
}

func (c *CampaignsMock) GetCampaign(_ context.Context, id string) (*Campaign, error) {
	for _, campaign := range c.Items {
		if campaign.Id == id {
			return campaign, nil
		}
	}
	return nil, fmt.Errorf("campaign %s not found", id)
}

func (c *CampaignsMock) ListCampaigns(_ context.Context) ([]*Campaign, error) {
	return c.Items, nil
}

type NotebookRunsMock struct {
	Items  []*NotebookRun
	nextId int64
}

var _ NotebookRunService = &NotebookRunsMock{}

func (n *NotebookRunsMock) CreateNotebookRun(_ context.Context, run *NotebookRun) (*NotebookRun, error) {
	n.nextId++
	run.Id = n.nextId
	n.Items = append(n.Items, run)
	return run, nil
}

func (n *NotebookRunsMock) GetNotebookRunById(_ context.Context, id int64) (*NotebookRun, error) {
	for _, run := range n.Items {
		if run.Id == id {
			return run, nil
		}
	}
	return nil, fmt.Errorf("run id %d not found", id)
}

func (n *NotebookRunsMock) ListNotebookRuns(_ context.Context, campaignId string) ([]*NotebookRun, error) {
	var matches []*NotebookRun
	for _, run := range n.Items {
		if run.CampaignId == campaignId {
			matches = append(matches, run)
		}
	}
	return matches, nil
}

type MetricsMock struct {
	Items  []*Metric
	nextId int64
}

var _ MetricsService = &MetricsMock{}

func (m *MetricsMock) CreateMetric(_ context.Context, metric *Metric) (*Metric, error) {
	m.nextId++
	metric.Id = m.nextId
	m.Items = append(m.Items, metric)
	return metric, nil
}

func (m *MetricsMock) ListMetrics(_ context.Context, runId int64) ([]*Metric, error) {
	var matches []*Metric
	for _, metric := range m.Items {
		if metric.RunId == runId {
			matches = append(matches, metric)
		}
	}
	return matches, nil
}

// DatabaseMock bundles the service mocks behind the Database interface.
type DatabaseMock struct {
	CampaignsService    CampaignsMock
	NotebookRunsService NotebookRunsMock
	MetricsService      MetricsMock
}

var _ Database = &DatabaseMock{}

func (d *DatabaseMock) Campaigns() CampaignService       { return &d.CampaignsService }
func (d *DatabaseMock) NotebookRuns() NotebookRunService { return &d.NotebookRunsService }
func (d *DatabaseMock) Metrics() MetricsService          { return &d.MetricsService }
