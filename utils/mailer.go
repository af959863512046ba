package utils

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// ErrMailerDisabled is returned when no SMTP host is configured.
var ErrMailerDisabled = errors.New("email delivery is not configured")

// SMTPConfig holds the outgoing mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends transactional email through an SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns a mailer. A config without a host yields a disabled mailer whose
// sends fail with ErrMailerDisabled.
func NewMailer(cfg SMTPConfig) *Mailer {
	if cfg.Host == "" {
		return &Mailer{}
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

var resetCodeTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>Password Reset Code</title>
	<style>
		body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
		.container { background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px; }
		.code { font-weight: bold; color: #007bff; }
	</style>
</head>
<body>
	<div class="container">
		<h1>Password Reset Code</h1>
		<p>Your SOLIDARITY Hospital password reset code is:</p>
		<p class="code">{{.}}</p>
		<p>The code expires in 15 minutes. If you did not request a password reset, please ignore this email.</p>
	</div>
</body>
</html>`))

// SendResetCode emails a password reset code.
func (m *Mailer) SendResetCode(email, code string) error {
	var body bytes.Buffer
	if err := resetCodeTemplate.Execute(&body, code); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}
	return m.send(email, "Password Reset Code", "Your password reset code is: "+code, body.String())
}

// SendHTML emails an HTML document with a plain text alternative.
func (m *Mailer) SendHTML(to, subject, text, html string) error {
	return m.send(to, subject, text, html)
}

func (m *Mailer) send(to, subject, text, html string) error {
	if !m.Enabled() {
		return ErrMailerDisabled
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
