package service

import (
	"context"

	"github.com/vibe-gaming/newsletter/internal/config"
	"github.com/vibe-gaming/newsletter/pkg/newsletter"
	"github.com/vibe-gaming/newsletter/pkg/newsletter/sendinblue"
)

type Services struct {
	Newsletter Newsletter
}

type Deps struct {
	Config   *config.Config
	Provider newsletter.Provider
}

func NewServices(deps Deps) *Services {
	return &Services{
		Newsletter: newNewsletterService(deps.Provider, deps.Config.Newsletter.Sender),
	}
}

type Newsletter interface {
	Subscribe(ctx context.Context, input newsletter.SubscribeInput) (newsletter.Subscription, error)
	Unsubscribe(ctx context.Context, email string) (bool, error)
	Resubscribe(ctx context.Context, email string) (bool, error)
	AddToLists(ctx context.Context, email string, listNames []string) (bool, error)
	RemoveFromLists(ctx context.Context, email string, listNames []string) (bool, error)
	SendCampaign(ctx context.Context, input newsletter.CampaignInput) (bool, error)
	UpdateEmailAddress(ctx context.Context, oldEmail, newEmail string) (bool, error)
	GetContact(ctx context.Context, email string) (*newsletter.Contact, error)
	IsSubscribed(ctx context.Context, email, listName string) (bool, error)
	ListNames() []string
	// API returns the provider's raw API clients, when the provider has them.
	API() (sendinblue.API, bool)
}

// APIProvider is implemented by providers that expose their raw API clients.
type APIProvider interface {
	API() sendinblue.API
}
