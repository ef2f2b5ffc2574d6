package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGrid delivers messages with the SendGrid v3 API.
type sendGrid struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
}

func newSendGrid(cfg Config) *sendGrid {
	client := sendgrid.NewSendClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		client.Request.BaseURL = cfg.BaseURL + "/v3/mail/send"
	}
	from := cfg.From
	if from == "" {
		from = cfg.To
	}
	return &sendGrid{
		client: client,
		from:   mail.NewEmail(cfg.FromName, from),
		to:     mail.NewEmail("", cfg.To),
	}
}

func (s *sendGrid) Send(ctx context.Context, m Message) error {
	msg := mail.NewSingleEmail(s.from, m.Subject, s.to, m.Body, "")
	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("cannot send mail: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("cannot send mail: %d %s", resp.StatusCode, resp.Body)
	}
	return nil
}
