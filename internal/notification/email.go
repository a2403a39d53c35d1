package notification

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/sandeepvarma05/event-planner-backend/config"
)

// Channel is anything that can deliver one message to a set of
// recipients. Recipients are channel-specific: email addresses for
// SMTP, device tokens for FCM.
type Channel interface {
	Send(recipients []string, subject, body string) error
}

// EmailSender implements Channel over SMTP with STARTTLS.
type EmailSender struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	FromAddr string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
		FromAddr: cfg.SMTPFromEmail,
	}
}

var emailTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>{{.Subject}}</h2>
  <p>{{.Body}}</p>
</body>
</html>`))

// Send renders the HTML body and delivers it to every recipient in one
// SMTP session.
func (e *EmailSender) Send(to []string, subject string, body string) error {
	if e.Host == "" {
		return fmt.Errorf("smtp not configured")
	}

	var htmlBody bytes.Buffer
	if err := emailTemplate.Execute(&htmlBody, map[string]string{
		"Subject": subject,
		"Body":    body,
	}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	from := fmt.Sprintf("%s <%s>", e.FromName, e.FromAddr)
	headers := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}, "\r\n")
	msg := []byte(headers + "\r\n\r\n" + htmlBody.String())

	addr := e.Host + ":" + e.Port
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: e.Host}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if e.Username != "" {
		auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}

	if err := client.Mail(e.FromAddr); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
