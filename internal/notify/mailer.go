// Package notify delivers outbound mail.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	netmail "net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

var ErrInvalidAddress = errors.New("invalid email address")

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends a message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ParseAddress accepts a single bare address such as "mina@example.com"
// and returns it normalized. Display names, lists and header
// continuations are rejected.
func ParseAddress(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "\r\n") {
		return "", ErrInvalidAddress
	}
	addr, err := netmail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return "", ErrInvalidAddress
	}
	return addr.Address, nil
}

// SMTPMailer delivers through an SMTP relay. STARTTLS is used when the
// relay offers it; PLAIN auth only when a username is configured.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(addr, username, password, from string) (*SMTPMailer, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp port %q: %w", portStr, err)
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15 * time.Second),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out, err := m.compose(msg)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send mail %q: %w", msg.Subject, err)
	}
	return nil
}

func (m *SMTPMailer) compose(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("send mail %q: no recipients", msg.Subject)
	}
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return nil, fmt.Errorf("send mail %q: sender: %w", msg.Subject, err)
	}
	if err := out.To(msg.To...); err != nil {
		return nil, fmt.Errorf("send mail %q: recipients: %w", msg.Subject, err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	return out, nil
}

// LogMailer writes messages to the log instead of sending them. Used when
// no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	slog.Info("mail not sent, smtp disabled", "to", msg.To, "subject", msg.Subject)
	return nil
}
