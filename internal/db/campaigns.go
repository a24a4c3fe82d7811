package db

import (
	"context"
	"time"
)

type Campaign struct {
	Id           string
	TemplatePath string
	ParamsPath   string
	CreatedTs    time.Time
}

type CampaignService interface {
	CreateCampaign(ctx context.Context, campaign *Campaign) (*Campaign, error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context) ([]*Campaign, error)
}
