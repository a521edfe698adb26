package tasks

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"hospital-app-server/internal/config"
)

// Mailer sends HTML email with optional attachments over SMTP.
type Mailer struct {
	cfg config.MailerConfig
}

// NewMailer creates a mailer from SMTP configuration.
func NewMailer(cfg config.MailerConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Attachment is a file included with an email.
type Attachment struct {
	Filename string
	Content  []byte
}

// Send delivers an HTML email to one recipient.
func (m *Mailer) Send(to, subject, htmlBody string, attachment *Attachment) error {
	msg := buildMessage(m.cfg.From, to, subject, htmlBody, attachment)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string, attachment *Attachment) []byte {
	const boundary = "hospital-mail-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if attachment == nil {
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(htmlBody)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: application/octet-stream\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n\r\n", attachment.Filename)
	b.WriteString(base64.StdEncoding.EncodeToString(attachment.Content))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
