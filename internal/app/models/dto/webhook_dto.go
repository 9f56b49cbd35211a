package dto

// WebhookEmailAddress is one email entry in an identity-provider payload
type WebhookEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// WebhookUserData is the user object inside an identity-provider event
type WebhookUserData struct {
	ID             string                `json:"id"`
	EmailAddresses []WebhookEmailAddress `json:"email_addresses"`
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
}

// WebhookEvent is the envelope posted by the identity provider
type WebhookEvent struct {
	Type string          `json:"type"`
	Data WebhookUserData `json:"data"`
}

// PrimaryEmail returns the first email address in the payload
func (e *WebhookEvent) PrimaryEmail() string {
	if len(e.Data.EmailAddresses) == 0 {
		return ""
	}
	return e.Data.EmailAddresses[0].EmailAddress
}
