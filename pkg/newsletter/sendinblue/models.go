package sendinblue

// CreateContact is the body of POST /contacts.
type CreateContact struct {
	Email            string            `json:"email"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	EmailBlacklisted bool              `json:"emailBlacklisted"`
	ListIDs          []int64           `json:"listIds"`
	UpdateEnabled    bool              `json:"updateEnabled"`
}

// CreateUpdateContactModel is returned by POST /contacts when a contact was
// created. Updates answer 204 with no body.
type CreateUpdateContactModel struct {
	ID int64 `json:"id"`
}

// UpdateContact is the body of PUT /contacts/{identifier}. Only set fields
// are sent.
type UpdateContact struct {
	Attributes       map[string]string `json:"attributes,omitempty"`
	EmailBlacklisted *bool             `json:"emailBlacklisted,omitempty"`
	ListIDs          []int64           `json:"listIds,omitempty"`
	UnlinkListIDs    []int64           `json:"unlinkListIds,omitempty"`
}

type GetContactDetails struct {
	ID               int64          `json:"id"`
	Email            string         `json:"email"`
	EmailBlacklisted bool           `json:"emailBlacklisted"`
	SMSBlacklisted   bool           `json:"smsBlacklisted"`
	CreatedAt        string         `json:"createdAt"`
	ModifiedAt       string         `json:"modifiedAt"`
	ListIDs          []int64        `json:"listIds"`
	Attributes       map[string]any `json:"attributes"`
}

// ContactEmails is the body of the list add/remove calls.
type ContactEmails struct {
	Emails []string `json:"emails"`
}

type PostContactInfo struct {
	Contacts struct {
		Success []string `json:"success"`
		Failure []string `json:"failure"`
	} `json:"contacts"`
}

type CampaignSender struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type CampaignRecipients struct {
	ListIDs []int64 `json:"listIds"`
}

// CreateEmailCampaign is the body of POST /emailCampaigns.
type CreateEmailCampaign struct {
	Name        string             `json:"name"`
	Sender      CampaignSender     `json:"sender"`
	Recipients  CampaignRecipients `json:"recipients"`
	HTMLContent string             `json:"htmlContent"`
	Subject     string             `json:"subject"`
	ReplyTo     string             `json:"replyTo,omitempty"`
	ScheduledAt string             `json:"scheduledAt,omitempty"`
}

type CreateModel struct {
	ID int64 `json:"id"`
}
