// Package mailer delivers transactional email.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"

	"github.com/yukikurage/taskflow-api/internal/logger"
	"gopkg.in/gomail.v2"
)

// Message is one outgoing email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is not set")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Port)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is not set")
	}
	if cfg.FromName == "" {
		cfg.FromName = "TaskFlow"
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &SMTPMailer{cfg: cfg, dialer: dialer}, nil
}

// Send delivers msg. The context is checked before dialing; gomail has no
// cancellation of its own.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := validate(msg); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(m.cfg.From, m.cfg.FromName))
	message.SetHeader("To", message.FormatAddress(msg.To, msg.ToName))
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	logger.Logger.Infof("Email %q sent to %s", msg.Subject, msg.To)
	return nil
}

// LogMailer writes messages to the application log instead of sending them.
type LogMailer struct{}

// Send logs msg.
func (LogMailer) Send(_ context.Context, msg Message) error {
	if err := validate(msg); err != nil {
		return err
	}

	logger.Logger.Info("=== MOCK EMAIL ===")
	logger.Logger.Infof("To: %s <%s>", msg.ToName, msg.To)
	logger.Logger.Infof("Subject: %s", msg.Subject)
	logger.Logger.Debugf("Body:\n%s", msg.HTML)
	return nil
}

func validate(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("'to' field is required")
	}
	if msg.Subject == "" {
		return fmt.Errorf("'subject' field is required")
	}
	return nil
}

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1e293b;">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset the password of your TaskFlow account.
  The link below is valid for {{.ValidFor}}.</p>
  <p><a href="{{.Link}}">Reset password</a></p>
  <p>If you did not ask for this, you can ignore this email.</p>
</body>
</html>
`))

// PasswordResetData fills the password-reset email.
type PasswordResetData struct {
	Name     string
	Link     string
	ValidFor string
}

// RenderPasswordReset renders the password-reset email body.
func RenderPasswordReset(data PasswordResetData) (string, error) {
	var buf bytes.Buffer
	if err := passwordResetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template password_reset: %w", err)
	}
	return buf.String(), nil
}
