package relay

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// SMTPSender delivers mail through a plain-auth SMTP account, typically
// an Ethereal test inbox where nothing actually leaves the server.
type SMTPSender struct {
	addr     string // host:port
	host     string
	username string
	password string
	from     string // e.g. "Reminder App <reminder@example.com>"

	// previewBase turns a message id into a viewable URL. Empty
	// disables preview links.
	previewBase string
}

// NewSMTPSender creates an SMTP-backed Sender. previewBase is the URL
// prefix the message id is appended to (Ethereal exposes
// https://ethereal.email/message/).
func NewSMTPSender(host string, port int, username, password, from, previewBase string) *SMTPSender {
	return &SMTPSender{
		addr:        fmt.Sprintf("%s:%d", host, port),
		host:        host,
		username:    username,
		password:    password,
		from:        from,
		previewBase: previewBase,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, text, html string) (string, error) {
	id := uuid.NewString()
	msg := s.buildMessage(id, to, subject, text, html)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(s.addr, auth, s.fromAddress(), []string{to}, msg)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp delivery failed: %w", err)
		}
	}

	if s.previewBase == "" {
		return "", nil
	}
	return s.previewBase + id, nil
}

func (s *SMTPSender) buildMessage(id, to, subject, text, html string) []byte {
	boundary := strings.ReplaceAll(uuid.NewString(), "-", "")

	var b strings.Builder
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", id, s.host)
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func (s *SMTPSender) fromAddress() string {
	if i := strings.LastIndex(s.from, "<"); i >= 0 {
		return strings.TrimRight(s.from[i+1:], ">")
	}
	return s.from
}
