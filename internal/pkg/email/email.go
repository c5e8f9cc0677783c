package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/attendance-marker/attendance-backend-go/internal/config"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Sender delivers a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends HTML mail over SMTP. Each message is a single attempt.
type Mailer struct {
	cfg    config.SMTPConfig
	sender Sender
}

// NewMailer builds a Mailer from SMTP settings. With an empty host it logs and drops messages.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	var sender Sender
	if cfg.Host != "" {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return &Mailer{cfg: cfg, sender: sender}
}

// NewMailerWithSender is used by tests to capture messages.
func NewMailerWithSender(cfg config.SMTPConfig, sender Sender) *Mailer {
	return &Mailer{cfg: cfg, sender: sender}
}

// Notify implements notification.Notifier.
func (m *Mailer) Notify(ctx context.Context, to, subject, htmlBody string) bool {
	if m.sender == nil {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return false
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- m.sender.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			slog.Error("Failed to send email", "to", to, "subject", subject, "error", err)
			return false
		}
		slog.Info("Email sent successfully", "to", to, "subject", subject)
		return true
	case <-ctx.Done():
		slog.Error("Email send timed out", "to", to, "subject", subject, "error", ctx.Err())
		return false
	}
}

// Templates renders the embedded HTML bodies.
type Templates struct {
	tmpl *template.Template
}

func NewTemplates() (*Templates, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"date": func(t interface{ Format(string) string }) string { return t.Format("02 Jan 2006") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Templates{tmpl: tmpl}, nil
}

// Render executes the named template with data.
func (t *Templates) Render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return body.String(), nil
}
