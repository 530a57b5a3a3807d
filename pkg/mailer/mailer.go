// Package mailer sends transactional email over SMTP.
package mailer

import (
	"rythmons/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender is the outbound mail surface the auth service depends on.
type Sender interface {
	Send(to, subject, html string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

var _ Sender = (*Mailer)(nil)

func New(config utils.MailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return err
	}

	return nil
}
