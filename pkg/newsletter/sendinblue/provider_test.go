package sendinblue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/vibe-gaming/newsletter/pkg/newsletter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	APIKey string
	Body   map[string]any
}

// fakeBrevo records every request and answers with the handler registered
// for "METHOD path", or 200 {} when none is registered.
type fakeBrevo struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter)
}

func newFakeBrevo(t *testing.T) (*fakeBrevo, *httptest.Server) {
	t.Helper()

	f := &fakeBrevo{routes: make(map[string]func(w http.ResponseWriter))}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			APIKey: r.Header.Get("api-key"),
		}
		body, _ := io.ReadAll(r.Body)
		if len(body) > 0 {
			assert.NoError(t, json.Unmarshal(body, &rec.Body))
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		route := f.routes[r.Method+" "+rec.Path]
		f.mu.Unlock()

		if route != nil {
			route(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	return f, server
}

func (f *fakeBrevo) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.routes[method+" "+path] = func(w http.ResponseWriter) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	}
}

func (f *fakeBrevo) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func newTestProvider(server *httptest.Server, opts ...Option) *Provider {
	lists := newsletter.NewListCollection(map[string]int64{"news": 12, "promo": 7})

	return NewProvider(server.Client(), lists, Configuration{APIKey: "test-key", BaseURL: server.URL}, opts...)
}

func TestProvider_Subscribe(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/contacts", http.StatusCreated, `{"id": 42}`)
	provider := newTestProvider(server)

	sub, err := provider.Subscribe(context.Background(), newsletter.SubscribeInput{
		Email:      "a@x.com",
		ListNames:  []string{"news", "promo"},
		Attributes: map[string]string{"FIRSTNAME": "A"},
	})
	require.NoError(t, err)
	assert.Equal(t, newsletter.Subscription{Subscribed: true, ContactID: 42}, sub)

	requests := fake.recorded()
	require.Len(t, requests, 1)

	req := requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/contacts", req.Path)
	assert.Equal(t, "test-key", req.APIKey)
	assert.Equal(t, "a@x.com", req.Body["email"])
	assert.Equal(t, []any{float64(12), float64(7)}, req.Body["listIds"])
	assert.Equal(t, false, req.Body["emailBlacklisted"])
	assert.Equal(t, true, req.Body["updateEnabled"])
	assert.Equal(t, map[string]any{"FIRSTNAME": "A"}, req.Body["attributes"])
}

func TestProvider_Subscribe_UpdatedContactWithoutID(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/contacts", http.StatusNoContent, "")
	provider := newTestProvider(server)

	sub, err := provider.Subscribe(context.Background(), newsletter.SubscribeInput{Email: "a@x.com"})
	require.NoError(t, err)
	assert.True(t, sub.Subscribed)
	assert.Zero(t, sub.ContactID)

	requests := fake.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, []any{}, requests[0].Body["listIds"])
	assert.NotContains(t, requests[0].Body, "attributes")
}

func TestProvider_Subscribe_UnknownList(t *testing.T) {
	fake, server := newFakeBrevo(t)
	provider := newTestProvider(server)

	sub, err := provider.Subscribe(context.Background(), newsletter.SubscribeInput{
		Email:     "a@x.com",
		ListNames: []string{"missing"},
	})
	require.Error(t, err)
	assert.False(t, sub.Subscribed)
	assert.ErrorIs(t, err, newsletter.ErrConfiguration)
	assert.ErrorIs(t, err, newsletter.ErrSubscribeFailed)
	assert.Empty(t, fake.recorded())
}

func TestProvider_Subscribe_APIError(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/contacts", http.StatusBadRequest, `{"code":"invalid_parameter","message":"email is not valid"}`)
	provider := newTestProvider(server)

	sub, err := provider.Subscribe(context.Background(), newsletter.SubscribeInput{Email: "nope"})
	require.Error(t, err)
	assert.False(t, sub.Subscribed)
	assert.ErrorIs(t, err, newsletter.ErrSubscribeFailed)
	assert.Contains(t, err.Error(), "email is not valid")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid_parameter", apiErr.Code)
}

func TestProvider_Unsubscribe(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPut, "/contacts/a@x.com", http.StatusNoContent, "")
	provider := newTestProvider(server)

	ok, err := provider.Unsubscribe(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	requests := fake.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, map[string]any{"emailBlacklisted": true}, requests[0].Body)
}

func TestProvider_Unsubscribe_Failure(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPut, "/contacts/a@x.com", http.StatusNotFound, `{"code":"document_not_found","message":"Contact does not exist"}`)
	provider := newTestProvider(server)

	ok, err := provider.Unsubscribe(context.Background(), "a@x.com")
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrUnsubscribeFailed)
}

func TestProvider_Resubscribe(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPut, "/contacts/a@x.com", http.StatusNoContent, "")
	provider := newTestProvider(server)

	ok, err := provider.Resubscribe(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	requests := fake.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"emailBlacklisted": false}, requests[0].Body)
}

func TestProvider_AddToLists(t *testing.T) {
	fake, server := newFakeBrevo(t)
	provider := newTestProvider(server)

	ok, err := provider.AddToLists(context.Background(), "a@x.com", []string{"news", "promo"})
	require.NoError(t, err)
	assert.True(t, ok)

	requests := fake.recorded()
	require.Len(t, requests, 2)
	assert.Equal(t, "/contacts/lists/12/contacts/add", requests[0].Path)
	assert.Equal(t, "/contacts/lists/7/contacts/add", requests[1].Path)
	assert.Equal(t, []any{"a@x.com"}, requests[0].Body["emails"])
}

func TestProvider_AddToLists_PartialFailure(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/contacts/lists/7/contacts/add", http.StatusBadRequest, `{"code":"invalid_parameter","message":"list is closed"}`)
	provider := newTestProvider(server)

	ok, err := provider.AddToLists(context.Background(), "a@x.com", []string{"news", "promo"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrAddToListsFailed)

	requests := fake.recorded()
	require.Len(t, requests, 2)
	assert.Equal(t, "/contacts/lists/12/contacts/add", requests[0].Path)
	assert.Equal(t, "/contacts/lists/7/contacts/add", requests[1].Path)
}

func TestProvider_AddToLists_StopsAtFirstFailure(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/contacts/lists/12/contacts/add", http.StatusInternalServerError, "")
	provider := newTestProvider(server)

	ok, err := provider.AddToLists(context.Background(), "a@x.com", []string{"news", "promo"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrAddToListsFailed)
	assert.Len(t, fake.recorded(), 1)
}

func TestProvider_AddToLists_UnknownList(t *testing.T) {
	fake, server := newFakeBrevo(t)
	provider := newTestProvider(server)

	ok, err := provider.AddToLists(context.Background(), "a@x.com", []string{"missing"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrConfiguration)
	assert.ErrorIs(t, err, newsletter.ErrAddToListsFailed)
	assert.Empty(t, fake.recorded())
}

func TestProvider_AddToLists_NoLists(t *testing.T) {
	fake, server := newFakeBrevo(t)
	provider := newTestProvider(server)

	ok, err := provider.AddToLists(context.Background(), "a@x.com", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fake.recorded())
}

func TestProvider_RemoveFromLists(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/contacts/lists/7/contacts/remove", http.StatusBadRequest, `{"code":"invalid_parameter","message":"Contact already removed from list"}`)
	provider := newTestProvider(server)

	ok, err := provider.RemoveFromLists(context.Background(), "a@x.com", []string{"news"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = provider.RemoveFromLists(context.Background(), "a@x.com", []string{"news", "promo"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrRemoveFromListsFailed)

	requests := fake.recorded()
	require.Len(t, requests, 3)
	assert.Equal(t, "/contacts/lists/12/contacts/remove", requests[0].Path)
	assert.Equal(t, "/contacts/lists/12/contacts/remove", requests[1].Path)
	assert.Equal(t, "/contacts/lists/7/contacts/remove", requests[2].Path)
}

func TestProvider_RemoveFromLists_UnknownList(t *testing.T) {
	fake, server := newFakeBrevo(t)
	provider := newTestProvider(server)

	ok, err := provider.RemoveFromLists(context.Background(), "a@x.com", []string{"news", "missing"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrConfiguration)
	assert.ErrorIs(t, err, newsletter.ErrRemoveFromListsFailed)
	assert.Empty(t, fake.recorded())
}

func TestProvider_SendCampaign_UnknownList(t *testing.T) {
	fake, server := newFakeBrevo(t)
	provider := newTestProvider(server)

	ok, err := provider.SendCampaign(context.Background(), newsletter.CampaignInput{
		Name:        "March",
		FromEmail:   "news@x.com",
		FromName:    "X News",
		HTMLContent: "<p>hi</p>",
		Subject:     "Hello",
		ListNames:   []string{"missing"},
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrConfiguration)
	assert.ErrorIs(t, err, newsletter.ErrSendCampaignFailed)
	assert.Empty(t, fake.recorded())
}

func TestProvider_SendCampaign(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/emailCampaigns", http.StatusCreated, `{"id": 9}`)
	provider := newTestProvider(server)

	scheduledAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	ok, err := provider.SendCampaign(context.Background(), newsletter.CampaignInput{
		Name:        "March",
		FromEmail:   "news@x.com",
		FromName:    "X News",
		HTMLContent: "<p>hi</p>",
		Subject:     "Hello",
		ReplyTo:     "reply@x.com",
		ListNames:   []string{"promo"},
		ScheduledAt: scheduledAt,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	requests := fake.recorded()
	require.Len(t, requests, 1)
	body := requests[0].Body
	assert.Equal(t, "/emailCampaigns", requests[0].Path)
	assert.Equal(t, "March", body["name"])
	assert.Equal(t, map[string]any{"email": "news@x.com", "name": "X News"}, body["sender"])
	assert.Equal(t, map[string]any{"listIds": []any{float64(7)}}, body["recipients"])
	assert.Equal(t, "<p>hi</p>", body["htmlContent"])
	assert.Equal(t, "Hello", body["subject"])
	assert.Equal(t, "reply@x.com", body["replyTo"])
	assert.Equal(t, "2026-03-01T08:30:00.000Z", body["scheduledAt"])
}

func TestProvider_SendCampaign_DefaultSchedule(t *testing.T) {
	fake, server := newFakeBrevo(t)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	provider := newTestProvider(server, WithClock(func() time.Time { return now }))

	ok, err := provider.SendCampaign(context.Background(), newsletter.CampaignInput{Name: "Now", FromEmail: "news@x.com"})
	require.NoError(t, err)
	assert.True(t, ok)

	requests := fake.recorded()
	require.Len(t, requests, 1)

	scheduled, err := time.Parse(time.RFC3339, requests[0].Body["scheduledAt"].(string))
	require.NoError(t, err)
	assert.True(t, scheduled.After(now))
	assert.True(t, scheduled.Equal(now.Add(10*time.Minute)))
	assert.Equal(t, "2026-10-17T12:10:00.000Z", requests[0].Body["scheduledAt"])
}

func TestProvider_SendCampaign_DefaultScheduleIsInTheFuture(t *testing.T) {
	fake, server := newFakeBrevo(t)
	provider := newTestProvider(server)

	before := time.Now()
	_, err := provider.SendCampaign(context.Background(), newsletter.CampaignInput{Name: "Now"})
	require.NoError(t, err)

	scheduled, err := time.Parse(time.RFC3339, fake.recorded()[0].Body["scheduledAt"].(string))
	require.NoError(t, err)
	assert.True(t, scheduled.After(before))
	assert.Equal(t, time.UTC, scheduled.Location())
}

func TestProvider_SendCampaign_Failure(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/emailCampaigns", http.StatusUnauthorized, `{"code":"unauthorized","message":"Key not found"}`)
	provider := newTestProvider(server)

	ok, err := provider.SendCampaign(context.Background(), newsletter.CampaignInput{Name: "X"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrSendCampaignFailed)
	assert.Contains(t, err.Error(), "Key not found")
}

func TestProvider_UpdateEmailAddress(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPut, "/contacts/old@x.com", http.StatusNoContent, "")
	provider := newTestProvider(server)

	ok, err := provider.UpdateEmailAddress(context.Background(), "old@x.com", "new@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	requests := fake.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"attributes": map[string]any{"EMAIL": "new@x.com"}}, requests[0].Body)

	fake.on(http.MethodPut, "/contacts/old@x.com", http.StatusBadRequest, `{"code":"duplicate_parameter","message":"email is already associated"}`)
	ok, err = provider.UpdateEmailAddress(context.Background(), "old@x.com", "new@x.com")
	assert.False(t, ok)
	assert.ErrorIs(t, err, newsletter.ErrUpdateEmailAddressFailed)
}

func TestProvider_GetContact(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodGet, "/contacts/a@x.com", http.StatusOK,
		`{"id": 42, "email": "a@x.com", "emailBlacklisted": false, "listIds": [12], "attributes": {"FIRSTNAME": "A"}}`)
	fake.on(http.MethodGet, "/contacts/ghost@x.com", http.StatusNotFound, `{"code":"document_not_found","message":"Contact does not exist"}`)
	fake.on(http.MethodGet, "/contacts/broken@x.com", http.StatusInternalServerError, "")
	provider := newTestProvider(server)

	contact, err := provider.GetContact(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.Equal(t, int64(42), contact.ID)
	assert.Equal(t, []int64{12}, contact.ListIDs)
	assert.Equal(t, "A", contact.Attributes["FIRSTNAME"])

	contact, err = provider.GetContact(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Nil(t, contact)

	contact, err = provider.GetContact(context.Background(), "broken@x.com")
	assert.Nil(t, contact)
	assert.ErrorIs(t, err, newsletter.ErrGetContactFailed)
}

func TestProvider_IsSubscribed(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodGet, "/contacts/a@x.com", http.StatusOK, `{"id": 1, "email": "a@x.com", "listIds": [12]}`)
	fake.on(http.MethodGet, "/contacts/blocked@x.com", http.StatusOK, `{"id": 2, "email": "blocked@x.com", "emailBlacklisted": true, "listIds": [12]}`)
	fake.on(http.MethodGet, "/contacts/ghost@x.com", http.StatusNotFound, `{"code":"document_not_found","message":"Contact does not exist"}`)
	provider := newTestProvider(server)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		listName string
		want     bool
	}{
		{name: "any list", email: "a@x.com", want: true},
		{name: "member of list", email: "a@x.com", listName: "news", want: true},
		{name: "not member of list", email: "a@x.com", listName: "promo", want: false},
		{name: "blacklisted", email: "blocked@x.com", listName: "news", want: false},
		{name: "unknown contact", email: "ghost@x.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := provider.IsSubscribed(ctx, tt.email, tt.listName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	calls := len(fake.recorded())
	got, err := provider.IsSubscribed(ctx, "a@x.com", "missing")
	assert.False(t, got)
	assert.ErrorIs(t, err, newsletter.ErrConfiguration)
	assert.ErrorIs(t, err, newsletter.ErrIsSubscribedFailed)
	assert.Len(t, fake.recorded(), calls)
}

func TestProvider_API(t *testing.T) {
	fake, server := newFakeBrevo(t)
	fake.on(http.MethodPost, "/emailCampaigns", http.StatusCreated, `{"id": 5}`)
	provider := newTestProvider(server)

	first := provider.API()
	second := provider.API()
	assert.NotSame(t, first.Contacts, second.Contacts)
	assert.NotSame(t, first.Campaigns, second.Campaigns)

	model, err := first.Campaigns.CreateEmailCampaign(context.Background(), CreateEmailCampaign{Name: "raw"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), model.ID)
	assert.Equal(t, "test-key", fake.recorded()[0].APIKey)
}
