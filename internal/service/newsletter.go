package service

import (
	"context"

	"github.com/vibe-gaming/newsletter/internal/config"
	"github.com/vibe-gaming/newsletter/pkg/newsletter"
	"github.com/vibe-gaming/newsletter/pkg/newsletter/sendinblue"
)

// NewsletterService forwards every call to the single configured provider.
type NewsletterService struct {
	provider newsletter.Provider
	sender   config.Sender
}

func newNewsletterService(provider newsletter.Provider, sender config.Sender) *NewsletterService {
	return &NewsletterService{
		provider: provider,
		sender:   sender,
	}
}

func (s *NewsletterService) Subscribe(ctx context.Context, input newsletter.SubscribeInput) (newsletter.Subscription, error) {
	return s.provider.Subscribe(ctx, input)
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) (bool, error) {
	return s.provider.Unsubscribe(ctx, email)
}

func (s *NewsletterService) Resubscribe(ctx context.Context, email string) (bool, error) {
	return s.provider.Resubscribe(ctx, email)
}

func (s *NewsletterService) AddToLists(ctx context.Context, email string, listNames []string) (bool, error) {
	return s.provider.AddToLists(ctx, email, listNames)
}

func (s *NewsletterService) RemoveFromLists(ctx context.Context, email string, listNames []string) (bool, error) {
	return s.provider.RemoveFromLists(ctx, email, listNames)
}

// SendCampaign fills sender fields left empty from the configured default
// sender.
func (s *NewsletterService) SendCampaign(ctx context.Context, input newsletter.CampaignInput) (bool, error) {
	if input.FromEmail == "" {
		input.FromEmail = s.sender.Email
	}
	if input.FromName == "" {
		input.FromName = s.sender.Name
	}
	if input.ReplyTo == "" {
		input.ReplyTo = s.sender.ReplyTo
	}

	return s.provider.SendCampaign(ctx, input)
}

func (s *NewsletterService) UpdateEmailAddress(ctx context.Context, oldEmail, newEmail string) (bool, error) {
	return s.provider.UpdateEmailAddress(ctx, oldEmail, newEmail)
}

func (s *NewsletterService) GetContact(ctx context.Context, email string) (*newsletter.Contact, error) {
	return s.provider.GetContact(ctx, email)
}

func (s *NewsletterService) IsSubscribed(ctx context.Context, email, listName string) (bool, error) {
	return s.provider.IsSubscribed(ctx, email, listName)
}

func (s *NewsletterService) ListNames() []string {
	return s.provider.Lists().Names()
}

func (s *NewsletterService) API() (sendinblue.API, bool) {
	p, ok := s.provider.(APIProvider)
	if !ok {
		return sendinblue.API{}, false
	}

	return p.API(), true
}
