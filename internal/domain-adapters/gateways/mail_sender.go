package gateways

import (
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// MailSender sends plain-text mail through an SMTP relay
type MailSender struct {
	host     string
	port     int
	username string
	password string
	now      func() time.Time
}

// NewMailSender creates a mail sender for the given relay.
// Username may be empty for relays that accept unauthenticated mail.
func NewMailSender(host string, port int, username, password string) *MailSender {
	if port == 0 {
		port = 587
	}
	return &MailSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		now:      time.Now,
	}
}

// MailMessage is one outgoing plain-text message
type MailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Send delivers the message via the configured relay
func (m *MailSender) Send(msg MailMessage) error {
	if err := validateMessage(msg); err != nil {
		return err
	}
	if m.host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	payload := m.buildPayload(msg)

	if err := smtp.SendMail(addr, auth, msg.From, msg.To, payload); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", addr, err)
	}

	return nil
}

// buildPayload renders the RFC 5322 message bytes
func (m *MailSender) buildPayload(msg MailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	if !strings.HasSuffix(msg.Body, "\r\n") {
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

func validateMessage(msg MailMessage) error {
	if msg.From == "" {
		return fmt.Errorf("message has no sender")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}
	for _, to := range msg.To {
		if !strings.Contains(to, "@") {
			return fmt.Errorf("invalid recipient address: %s", to)
		}
	}
	// Bare newlines in the subject would allow header injection
	if strings.ContainsAny(msg.Subject, "\r\n") {
		return fmt.Errorf("subject must not contain line breaks")
	}
	return nil
}
