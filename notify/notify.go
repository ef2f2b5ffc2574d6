// Package notify e-mails the shop owner about saved transactions and
// backups.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/goldbook"
	"github.com/sirupsen/logrus"
)

// Config of the e-mail notifications. Without an API key messages are only
// logged.
type Config struct {
	APIKey    string `mapstructure:"api_key"`
	From      string `mapstructure:"from"`
	FromName  string `mapstructure:"from_name"`
	To        string `mapstructure:"to"`
	BaseURL   string `mapstructure:"base_url"` // SendGrid API host, for tests
	ShopLabel string `mapstructure:"shop_label"`
}

// Message is a plain text e-mail.
type Message struct {
	Subject string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Mailer notifies by e-mail.
type Mailer struct {
	sender Sender
	label  string
	log    logrus.FieldLogger
}

// New returns a mailer using SendGrid when configured, or only logging the
// messages otherwise.
func New(cfg Config, log logrus.FieldLogger) *Mailer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	label := cfg.ShopLabel
	if label == "" {
		label = "Pyramids Gold System"
	}
	var sender Sender = logSender{log}
	if cfg.APIKey != "" && cfg.To != "" {
		sender = newSendGrid(cfg)
	}
	return &Mailer{sender: sender, label: label, log: log}
}

// NewWithSender returns a mailer delivering through s.
func NewWithSender(s Sender, label string, log logrus.FieldLogger) *Mailer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Mailer{sender: s, label: label, log: log}
}

// Notify sends the transaction summary.
func (m *Mailer) Notify(ctx context.Context, tx goldbook.Transaction) error {
	return m.sender.Send(ctx, TransactionMessage(tx, m.label))
}

// BackupAlert sends the outcome of a backup.
func (m *Mailer) BackupAlert(ctx context.Context, status string) error {
	return m.sender.Send(ctx, Message{
		Subject: fmt.Sprintf("%s: backup %s", m.label, status),
		Body:    fmt.Sprintf("System Backup Status: %s\n", status),
	})
}

// TransactionMessage describes tx.
func TransactionMessage(tx goldbook.Transaction, label string) Message {
	customer := tx.CustomerName
	if customer == "" {
		customer = "N/A"
	}
	details, _ := json.Marshal(tx.Details)
	if tx.Details == nil {
		details = []byte("{}")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Transaction: %s\n", tx.ID)
	fmt.Fprintf(&b, "Type: %s\n", tx.Type)
	fmt.Fprintf(&b, "Amount: %s\n", goldbook.MA(tx.TotalAmount, "").Whole())
	fmt.Fprintf(&b, "Date: %s\n", tx.Date)
	fmt.Fprintf(&b, "Customer: %s\n", customer)
	fmt.Fprintf(&b, "Weight: %s\n", tx.Weight)
	fmt.Fprintf(&b, "Karat: %d\n", tx.Karat)
	fmt.Fprintf(&b, "Details: %s\n", details)
	fmt.Fprintf(&b, "Source: %s\n", label)
	return Message{
		Subject: fmt.Sprintf("%s: %s %s", label, tx.Type, tx.ID),
		Body:    b.String(),
	}
}

// logSender logs the messages it would send.
type logSender struct{ log logrus.FieldLogger }

func (l logSender) Send(_ context.Context, m Message) error {
	l.log.WithField("subject", m.Subject).Info("mail not configured, skipping notification")
	return nil
}
