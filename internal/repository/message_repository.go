package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/unclebandit/gapgrabber-web/internal/backend"
	"github.com/unclebandit/gapgrabber-web/internal/model"
)

// MessageRepositoryInterface defines methods used by service
type MessageRepositoryInterface interface {
	ListByCustomer(ctx context.Context, customerID int, campaignID *int) ([]model.MessageGroup, error)
}

type MessageRepository struct {
	Client *backend.Client
}

// ListByCustomer fetches message groups for a customer, optionally narrowed
// to the customers of one campaign.
func (r *MessageRepository) ListByCustomer(ctx context.Context, customerID int, campaignID *int) ([]model.MessageGroup, error) {
	q := url.Values{"customer_id": {strconv.Itoa(customerID)}}
	if campaignID != nil {
		q.Set("campaign_id", strconv.Itoa(*campaignID))
	}

	var resp model.MessagesByCustomerResponse
	if err := r.Client.Get(ctx, "fetch messages", "/api/messages", q, &resp); err != nil {
		return nil, err
	}
	return resp.MessagesByCustomer, nil
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)
