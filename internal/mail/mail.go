// Package mail delivers account e-mails over SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/hugh/otp-auth/pkg/config"
	"gopkg.in/gomail.v2"
)

const (
	SubjectWelcome   = "Welcome to Authentication System!"
	SubjectVerifyOTP = "Account Verification OTP"
	SubjectResetOTP  = "Password Reset OTP"
)

// Dispatcher sends the three account e-mails. Implementations do not
// retry; a returned error means the message was not handed to the transport.
type Dispatcher interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendVerifyOTP(ctx context.Context, to, otp string) error
	SendResetOTP(ctx context.Context, to, otp string) error
}

// Sender is the transport; *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPDispatcher struct {
	sender Sender
	from   string
	logger *slog.Logger
}

var _ Dispatcher = (*SMTPDispatcher)(nil)

func NewSMTPDispatcher(cfg *config.MailConfig, logger *slog.Logger) (*SMTPDispatcher, error) {
	if cfg.SMTPHost == "" {
		return nil, errors.New("SMTP host is required")
	}
	if cfg.User == "" {
		return nil, errors.New("mail user is required")
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Password)
	return NewDispatcher(dialer, cfg.From(), logger), nil
}

func NewDispatcher(sender Sender, from string, logger *slog.Logger) *SMTPDispatcher {
	return &SMTPDispatcher{sender: sender, from: from, logger: logger}
}

func (d *SMTPDispatcher) SendWelcome(ctx context.Context, to, name string) error {
	body, err := render(welcomeTemplate, map[string]string{"Name": name, "Email": to})
	if err != nil {
		return err
	}
	return d.send(ctx, to, SubjectWelcome, body)
}

func (d *SMTPDispatcher) SendVerifyOTP(ctx context.Context, to, otp string) error {
	body, err := render(verifyOTPTemplate, map[string]string{"OTP": otp, "Email": to})
	if err != nil {
		return err
	}
	return d.send(ctx, to, SubjectVerifyOTP, body)
}

func (d *SMTPDispatcher) SendResetOTP(ctx context.Context, to, otp string) error {
	body, err := render(resetOTPTemplate, map[string]string{"OTP": otp, "Email": to})
	if err != nil {
		return err
	}
	return d.send(ctx, to, SubjectResetOTP, body)
}

// send blocks until the SMTP exchange finishes; no timeout is applied.
func (d *SMTPDispatcher) send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := d.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("sending %q email: %w", subject, err)
	}

	d.logger.InfoContext(ctx, "email sent", "to", to, "subject", subject)
	return nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
