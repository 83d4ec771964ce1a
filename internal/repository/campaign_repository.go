package repository

import (
	"context"
	"strconv"

	"github.com/unclebandit/gapgrabber-web/internal/backend"
	"github.com/unclebandit/gapgrabber-web/internal/model"
)

type CampaignRepositoryInterface interface {
	List(ctx context.Context) ([]model.CampaignSummary, error)
	GetByID(ctx context.Context, id int) (*model.Campaign, error)
}

type CampaignRepository struct {
	Client *backend.Client
}

// List returns the campaign summaries, newest first as the backend orders them.
func (r *CampaignRepository) List(ctx context.Context) ([]model.CampaignSummary, error) {
	var resp model.CampaignsResponse
	if err := r.Client.Get(ctx, "fetch campaigns", "/api/campaigns", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Campaigns == nil {
		return []model.CampaignSummary{}, nil
	}
	return resp.Campaigns, nil
}

// GetByID returns one campaign with its outreach attempts.
func (r *CampaignRepository) GetByID(ctx context.Context, id int) (*model.Campaign, error) {
	var c model.Campaign
	if err := r.Client.Get(ctx, "fetch campaign", "/api/campaigns/"+strconv.Itoa(id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
