package sendinblue

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ContactsAPI covers the /contacts endpoints.
type ContactsAPI struct {
	client
}

func NewContactsAPI(httpClient HTTPDoer, config Configuration) *ContactsAPI {
	return &ContactsAPI{client{httpClient: httpClient, config: config}}
}

// CreateContact creates a contact, or updates it when UpdateEnabled is set
// and the email already exists. The returned model is nil on update.
func (a *ContactsAPI) CreateContact(ctx context.Context, contact CreateContact) (*CreateUpdateContactModel, error) {
	var model CreateUpdateContactModel
	status, err := a.do(ctx, http.MethodPost, "/contacts", contact, &model)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNoContent || model.ID == 0 {
		return nil, nil
	}

	return &model, nil
}

func (a *ContactsAPI) UpdateContact(ctx context.Context, identifier string, contact UpdateContact) error {
	_, err := a.do(ctx, http.MethodPut, "/contacts/"+url.PathEscape(identifier), contact, nil)
	return err
}

func (a *ContactsAPI) GetContactInfo(ctx context.Context, identifier string) (*GetContactDetails, error) {
	var details GetContactDetails
	if _, err := a.do(ctx, http.MethodGet, "/contacts/"+url.PathEscape(identifier), nil, &details); err != nil {
		return nil, err
	}

	return &details, nil
}

func (a *ContactsAPI) AddContactToList(ctx context.Context, listID int64, emails ContactEmails) (*PostContactInfo, error) {
	var info PostContactInfo
	if _, err := a.do(ctx, http.MethodPost, fmt.Sprintf("/contacts/lists/%d/contacts/add", listID), emails, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

func (a *ContactsAPI) RemoveContactFromList(ctx context.Context, listID int64, emails ContactEmails) (*PostContactInfo, error) {
	var info PostContactInfo
	if _, err := a.do(ctx, http.MethodPost, fmt.Sprintf("/contacts/lists/%d/contacts/remove", listID), emails, &info); err != nil {
		return nil, err
	}

	return &info, nil
}
