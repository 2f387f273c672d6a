package server

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridMailer delivers family invites through sendgrid.
type SendgridMailer struct {
	client *sendgrid.Client
	from   string
}

// NewSendgridMailer returns a mailer, or nil when no API key is configured.
func NewSendgridMailer(apiKey, from string) *SendgridMailer {
	if apiKey == "" {
		return nil
	}
	return &SendgridMailer{client: sendgrid.NewSendClient(apiKey), from: from}
}

// SendInvite mails an invitation link.
func (m *SendgridMailer) SendInvite(to, familyName, link string) error {
	subject := fmt.Sprintf("You are invited to the %q family on finview", familyName)
	body := fmt.Sprintf("Follow this link to join %s: %s\n\nThe invite expires in a week.", familyName, link)
	msg := mail.NewSingleEmail(
		mail.NewEmail("finview", m.from), subject,
		mail.NewEmail("", to), body, "",
	)
	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("could not send invite to %s: %w", to, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected invite to %s: status %d", to, resp.StatusCode)
	}
	return nil
}
