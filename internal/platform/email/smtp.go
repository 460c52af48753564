package email

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"client_portal/internal/platform/config"
)

// Sender delivers operational notifications (new leads) to the ops inbox.
type Sender interface {
	Send(subject, body string) error
}

type smtpSender struct {
	host string
	port string
	auth smtp.Auth
	from string
	to   []string
}

type noopSender struct{}

func (noopSender) Send(subject, body string) error {
	log.Printf("email disabled, dropping notification: %s", subject)
	return nil
}

// NewSender builds an SMTP sender from config, or a logging no-op when no
// SMTP host is configured (local development).
func NewSender(cfg *config.Config) Sender {
	if cfg.SMTPHost == "" || cfg.LeadTo == "" {
		return noopSender{}
	}

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &smtpSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		auth: auth,
		from: cfg.LeadFrom,
		to:   strings.Split(cfg.LeadTo, ","),
	}
}

func (s *smtpSender) Send(subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		s.from, strings.Join(s.to, ", "), subject, body)

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, s.auth, s.from, s.to, []byte(msg)); err != nil {
		return fmt.Errorf("smtpSender.Send: %w", err)
	}
	return nil
}
