package notify

import (
	"codeberg.org/mutker/hostwatch/internal/config"
	"codeberg.org/mutker/hostwatch/internal/errors"
	"gopkg.in/gomail.v2"
)

const sslPort = 465

// SMTPConfig carries the transport endpoint and the account credentials
// sourced from the environment at process start.
type SMTPConfig struct {
	Host        string
	Port        int
	Credentials config.Credentials
}

type smtpMailer struct {
	cfg SMTPConfig
}

// NewMailer builds the SMTP mailer. Missing credentials are a
// missing_credentials error; the caller skips email delivery on it.
func NewMailer(cfg SMTPConfig) (Mailer, error) {
	errFactory := errors.New()

	if !cfg.Credentials.Complete() {
		return nil, errFactory.WithMessage(errors.ErrMissingCredentials,
			"EMAIL_ADDRESS and EMAIL_PASSWORD must be set in environment")
	}

	return &smtpMailer{cfg: cfg}, nil
}

func (m *smtpMailer) Send(subject, body, recipient string) error {
	errFactory := errors.New()

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Credentials.Address)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port,
		m.cfg.Credentials.Address, m.cfg.Credentials.Password)
	dialer.SSL = m.cfg.Port == sslPort

	if err := dialer.DialAndSend(msg); err != nil {
		return errFactory.Wrap(errors.ErrDeliveryFailed, err)
	}

	return nil
}
