package sqlite

import (
	"context"

	"github.com/vizlab-ci/nbprofiler/internal/db"
	lsql "github.com/vizlab-ci/nbprofiler/pkg/sql"
)

type Campaigns struct {
	db *lsql.Instance
}

var _ db.CampaignService = &Campaigns{}

func NewCampaigns(instance *lsql.Instance) db.CampaignService {
	return &Campaigns{
		db: instance,
	}
}

func (c *Campaigns) CreateCampaign(ctx context.Context, campaign *db.Campaign) (*db.Campaign, error) {
	query := `
	INSERT INTO campaigns (id, template_path, params_path)
	VALUES (?, ?, ?)
	`
	args := []interface{}{campaign.Id, campaign.TemplatePath, campaign.ParamsPath}
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	return c.GetCampaign(ctx, campaign.Id)
}

func (c *Campaigns) GetCampaign(ctx context.Context, id string) (*db.Campaign, error) {
	query := `
	SELECT id, template_path, params_path, created_ts
	FROM campaigns
	WHERE id = ?
	`
	row := c.db.QueryRowContext(ctx, query, id)

	campaign := &db.Campaign{}
	if err := row.Scan(&campaign.Id, &campaign.TemplatePath, &campaign.ParamsPath, &campaign.CreatedTs); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (c *Campaigns) ListCampaigns(ctx context.Context) ([]*db.Campaign, error) {
	query := `
	SELECT id, template_path, params_path, created_ts
	FROM campaigns
	`
	rows, err := c.db.QueryContext(ctx, query)

	if err != nil {
		return nil, err
	}
	response := make([]*db.Campaign, 0)
	for rows.Next() {
		campaign := &db.Campaign{}
		if err := rows.Scan(&campaign.Id, &campaign.TemplatePath, &campaign.ParamsPath, &campaign.CreatedTs); err != nil {
			return nil, err
		}
		response = append(response, campaign)
	}

	return response, nil
}
