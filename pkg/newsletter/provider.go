package newsletter

import (
	"context"
	"time"
)

type SubscribeInput struct {
	Email      string
	ListNames  []string
	Attributes map[string]string
}

// Subscription is the result of Subscribe. ContactID is zero when the
// provider updated an existing contact without returning its id.
type Subscription struct {
	Subscribed bool
	ContactID  int64
}

type CampaignInput struct {
	Name        string
	FromEmail   string
	FromName    string
	HTMLContent string
	Subject     string
	ReplyTo     string
	ListNames   []string
	// ScheduledAt defaults to ten minutes from now when zero.
	ScheduledAt time.Time
}

type Contact struct {
	ID               int64
	Email            string
	EmailBlacklisted bool
	ListIDs          []int64
	Attributes       map[string]any
}

// Provider is the newsletter contract. Every method returns a false or zero
// result together with a normalized *Error on failure.
type Provider interface {
	Subscribe(ctx context.Context, input SubscribeInput) (Subscription, error)
	Unsubscribe(ctx context.Context, email string) (bool, error)
	Resubscribe(ctx context.Context, email string) (bool, error)
	AddToLists(ctx context.Context, email string, listNames []string) (bool, error)
	RemoveFromLists(ctx context.Context, email string, listNames []string) (bool, error)
	SendCampaign(ctx context.Context, input CampaignInput) (bool, error)
	UpdateEmailAddress(ctx context.Context, oldEmail, newEmail string) (bool, error)
	GetContact(ctx context.Context, email string) (*Contact, error)
	IsSubscribed(ctx context.Context, email, listName string) (bool, error)
	Lists() *ListCollection
}
