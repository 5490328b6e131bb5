package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"actor-portfolio/internal/config"
)

var ErrMissingConfig = errors.New("missing email configuration")

// Sender delivers one inquiry.
type Sender interface {
	Send(in Inquiry) error
}

// SMTPSender sends through an authenticated SMTP server. gomail upgrades the
// connection with STARTTLS when the server offers it.
type SMTPSender struct {
	server   string
	port     int
	username string
	password string
	from     string
	to       string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		server:   cfg.SMTPServer,
		port:     cfg.SMTPPort,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		from:     cfg.EmailFrom,
		to:       cfg.EmailTo,
	}
}

func (s *SMTPSender) configured() bool {
	return s.server != "" && s.port > 0 && s.username != "" && s.password != "" && s.from != "" && s.to != ""
}

func (s *SMTPSender) Send(in Inquiry) error {
	if !s.configured() {
		return ErrMissingConfig
	}

	body, err := ComposeBody(in)
	if err != nil {
		return fmt.Errorf("compose email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	if in.Email != "" {
		m.SetHeader("Reply-To", in.Email)
	}
	m.SetHeader("Subject", Subject(in))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.server, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email via %s:%d: %w", s.server, s.port, err)
	}
	return nil
}
