package sendinblue

import (
	"context"
	"net/http"
)

// EmailCampaignsAPI covers the /emailCampaigns endpoints.
type EmailCampaignsAPI struct {
	client
}

func NewEmailCampaignsAPI(httpClient HTTPDoer, config Configuration) *EmailCampaignsAPI {
	return &EmailCampaignsAPI{client{httpClient: httpClient, config: config}}
}

// CreateEmailCampaign is not idempotent: every call creates a new campaign.
func (a *EmailCampaignsAPI) CreateEmailCampaign(ctx context.Context, campaign CreateEmailCampaign) (*CreateModel, error) {
	var model CreateModel
	if _, err := a.do(ctx, http.MethodPost, "/emailCampaigns", campaign, &model); err != nil {
		return nil, err
	}

	return &model, nil
}
