package sendinblue

import (
	"context"
	"slices"
	"time"

	"github.com/vibe-gaming/newsletter/pkg/logger"
	"github.com/vibe-gaming/newsletter/pkg/newsletter"

	"go.uber.org/zap"
)

const (
	defaultScheduleDelay = 10 * time.Minute
	scheduledAtLayout    = "2006-01-02T15:04:05.000Z07:00"

	emailAttribute = "EMAIL"
)

// API groups the low-level clients for calls outside the newsletter contract.
type API struct {
	Contacts  *ContactsAPI
	Campaigns *EmailCampaignsAPI
}

// Provider implements newsletter.Provider on top of the Brevo API.
type Provider struct {
	httpClient HTTPDoer
	config     Configuration
	lists      *newsletter.ListCollection
	now        func() time.Time
}

type Option func(*Provider)

// WithClock overrides the time source used for default campaign schedules.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

func NewProvider(httpClient HTTPDoer, lists *newsletter.ListCollection, config Configuration, opts ...Option) *Provider {
	p := &Provider{
		httpClient: httpClient,
		config:     config,
		lists:      lists,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

var _ newsletter.Provider = (*Provider)(nil)

// API builds fresh clients on every call; they share the transport and
// credentials of the provider.
func (p *Provider) API() API {
	return API{
		Contacts:  p.contactsAPI(),
		Campaigns: p.campaignsAPI(),
	}
}

func (p *Provider) Lists() *newsletter.ListCollection {
	return p.lists
}

func (p *Provider) contactsAPI() *ContactsAPI {
	return NewContactsAPI(p.httpClient, p.config)
}

func (p *Provider) campaignsAPI() *EmailCampaignsAPI {
	return NewEmailCampaignsAPI(p.httpClient, p.config)
}

func (p *Provider) Subscribe(ctx context.Context, input newsletter.SubscribeInput) (newsletter.Subscription, error) {
	listIDs, err := p.lists.ResolveNames(input.ListNames)
	if err != nil {
		return newsletter.Subscription{}, p.fail(newsletter.ErrSubscribeFailed, err, input.Email)
	}

	contact := CreateContact{
		Email:            input.Email,
		ListIDs:          listIDs,
		EmailBlacklisted: false,
		UpdateEnabled:    true,
	}
	if len(input.Attributes) > 0 {
		contact.Attributes = input.Attributes
	}

	model, err := p.contactsAPI().CreateContact(ctx, contact)
	if err != nil {
		return newsletter.Subscription{}, p.fail(newsletter.ErrSubscribeFailed, err, input.Email)
	}

	subscription := newsletter.Subscription{Subscribed: true}
	if model != nil {
		subscription.ContactID = model.ID
	}

	return subscription, nil
}

// Unsubscribe blacklists the contact. The contact and its list memberships
// are kept.
func (p *Provider) Unsubscribe(ctx context.Context, email string) (bool, error) {
	blacklisted := true
	err := p.contactsAPI().UpdateContact(ctx, email, UpdateContact{EmailBlacklisted: &blacklisted})
	if err != nil {
		return false, p.fail(newsletter.ErrUnsubscribeFailed, err, email)
	}

	return true, nil
}

func (p *Provider) Resubscribe(ctx context.Context, email string) (bool, error) {
	blacklisted := false
	err := p.contactsAPI().UpdateContact(ctx, email, UpdateContact{EmailBlacklisted: &blacklisted})
	if err != nil {
		return false, p.fail(newsletter.ErrResubscribeFailed, err, email)
	}

	return true, nil
}

// AddToLists issues one call per list in order and stops at the first
// failure. Lists already joined stay joined.
func (p *Provider) AddToLists(ctx context.Context, email string, listNames []string) (bool, error) {
	listIDs, err := p.lists.ResolveNames(listNames)
	if err != nil {
		return false, p.fail(newsletter.ErrAddToListsFailed, err, email)
	}

	api := p.contactsAPI()
	for _, listID := range listIDs {
		if _, err := api.AddContactToList(ctx, listID, ContactEmails{Emails: []string{email}}); err != nil {
			return false, p.fail(newsletter.ErrAddToListsFailed, err, email, zap.Int64("list_id", listID))
		}
	}

	return true, nil
}

// RemoveFromLists mirrors AddToLists, including its partial failure behaviour.
func (p *Provider) RemoveFromLists(ctx context.Context, email string, listNames []string) (bool, error) {
	listIDs, err := p.lists.ResolveNames(listNames)
	if err != nil {
		return false, p.fail(newsletter.ErrRemoveFromListsFailed, err, email)
	}

	api := p.contactsAPI()
	for _, listID := range listIDs {
		if _, err := api.RemoveContactFromList(ctx, listID, ContactEmails{Emails: []string{email}}); err != nil {
			return false, p.fail(newsletter.ErrRemoveFromListsFailed, err, email, zap.Int64("list_id", listID))
		}
	}

	return true, nil
}

func (p *Provider) SendCampaign(ctx context.Context, input newsletter.CampaignInput) (bool, error) {
	listIDs, err := p.lists.ResolveNames(input.ListNames)
	if err != nil {
		return false, p.fail(newsletter.ErrSendCampaignFailed, err, input.FromEmail, zap.String("campaign", input.Name))
	}

	scheduledAt := input.ScheduledAt
	if scheduledAt.IsZero() {
		// scheduled sends must lie in the future
		scheduledAt = p.now().Add(defaultScheduleDelay)
	}

	_, err = p.campaignsAPI().CreateEmailCampaign(ctx, CreateEmailCampaign{
		Name: input.Name,
		Sender: CampaignSender{
			Email: input.FromEmail,
			Name:  input.FromName,
		},
		Recipients:  CampaignRecipients{ListIDs: listIDs},
		HTMLContent: input.HTMLContent,
		Subject:     input.Subject,
		ReplyTo:     input.ReplyTo,
		ScheduledAt: scheduledAt.UTC().Format(scheduledAtLayout),
	})
	if err != nil {
		return false, p.fail(newsletter.ErrSendCampaignFailed, err, input.FromEmail, zap.String("campaign", input.Name))
	}

	return true, nil
}

// UpdateEmailAddress sets the EMAIL attribute of the contact found by
// oldEmail.
func (p *Provider) UpdateEmailAddress(ctx context.Context, oldEmail, newEmail string) (bool, error) {
	err := p.contactsAPI().UpdateContact(ctx, oldEmail, UpdateContact{
		Attributes: map[string]string{emailAttribute: newEmail},
	})
	if err != nil {
		return false, p.fail(newsletter.ErrUpdateEmailAddressFailed, err, oldEmail, zap.String("new_email", newEmail))
	}

	return true, nil
}

// GetContact returns nil without error when the contact does not exist.
func (p *Provider) GetContact(ctx context.Context, email string) (*newsletter.Contact, error) {
	details, err := p.contactsAPI().GetContactInfo(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, p.fail(newsletter.ErrGetContactFailed, err, email)
	}

	return &newsletter.Contact{
		ID:               details.ID,
		Email:            details.Email,
		EmailBlacklisted: details.EmailBlacklisted,
		ListIDs:          details.ListIDs,
		Attributes:       details.Attributes,
	}, nil
}

// IsSubscribed reports whether the contact exists and is not blacklisted.
// A non-empty listName also requires membership of that list.
func (p *Provider) IsSubscribed(ctx context.Context, email, listName string) (bool, error) {
	var listID int64
	if listName != "" {
		list, err := p.lists.FindByName(listName)
		if err != nil {
			return false, p.fail(newsletter.ErrIsSubscribedFailed, err, email)
		}
		listID = list.ID
	}

	details, err := p.contactsAPI().GetContactInfo(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, p.fail(newsletter.ErrIsSubscribedFailed, err, email)
	}

	if details.EmailBlacklisted {
		return false, nil
	}
	if listName != "" {
		return slices.Contains(details.ListIDs, listID), nil
	}

	return true, nil
}

func (p *Provider) fail(kind, err error, email string, fields ...zap.Field) error {
	nerr := newsletter.Normalize(kind, err)

	fields = append(fields, zap.String("email", email), zap.Error(nerr))
	logger.Error("newsletter provider call failed", fields...)

	return nerr
}
