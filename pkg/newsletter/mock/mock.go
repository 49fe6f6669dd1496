package mock_newsletter

import (
	"context"

	"github.com/vibe-gaming/newsletter/pkg/newsletter"

	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) Subscribe(ctx context.Context, inp newsletter.SubscribeInput) (newsletter.Subscription, error) {
	args := m.Called(ctx, inp)

	return args.Get(0).(newsletter.Subscription), args.Error(1)
}

func (m *Provider) Unsubscribe(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *Provider) Resubscribe(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *Provider) AddToLists(ctx context.Context, email string, listNames []string) (bool, error) {
	args := m.Called(ctx, email, listNames)

	return args.Bool(0), args.Error(1)
}

func (m *Provider) RemoveFromLists(ctx context.Context, email string, listNames []string) (bool, error) {
	args := m.Called(ctx, email, listNames)

	return args.Bool(0), args.Error(1)
}

func (m *Provider) SendCampaign(ctx context.Context, inp newsletter.CampaignInput) (bool, error) {
	args := m.Called(ctx, inp)

	return args.Bool(0), args.Error(1)
}

func (m *Provider) UpdateEmailAddress(ctx context.Context, oldEmail, newEmail string) (bool, error) {
	args := m.Called(ctx, oldEmail, newEmail)

	return args.Bool(0), args.Error(1)
}

func (m *Provider) GetContact(ctx context.Context, email string) (*newsletter.Contact, error) {
	args := m.Called(ctx, email)

	contact, _ := args.Get(0).(*newsletter.Contact)

	return contact, args.Error(1)
}

func (m *Provider) IsSubscribed(ctx context.Context, email, listName string) (bool, error) {
	args := m.Called(ctx, email, listName)

	return args.Bool(0), args.Error(1)
}

func (m *Provider) Lists() *newsletter.ListCollection {
	args := m.Called()

	lists, _ := args.Get(0).(*newsletter.ListCollection)

	return lists
}
