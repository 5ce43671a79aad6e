package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/PatelKrunal-11/stride/config"
)

// Mailer sends transactional email. Invite delivery is the only caller
// today.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// New returns a Resend-backed mailer when an API key is configured and
// a logging fallback otherwise, so local setups work without keys.
func New(cfg *config.Config) Mailer {
	if cfg.Mail.ResendAPIKey == "" {
		return &LogMailer{}
	}
	return NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.FromAddress, cfg.Mail.FromName)
}

// ResendMailer sends email via the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, fromAddress, fromName string) *ResendMailer {
	from := fromAddress
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromAddress)
	}
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

// LogMailer prints the email instead of delivering it.
type LogMailer struct{}

func (m *LogMailer) Send(_ context.Context, to, subject, html string) error {
	fmt.Printf("SIMULATING: Sending Email\nTo: %s\nSubject: %s\nBody: %s\n", to, subject, html)
	return nil
}
