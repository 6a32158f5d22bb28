package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// ErrNoRecipients is returned for an email without a To address.
var ErrNoRecipients = errors.New("no recipients specified")

// Sender delivers plain text notifications. A nil error means the SMTP server accepted every message.
type Sender interface {
	Send(email Email) error

	// SendBulk delivers the emails over one connection and stops at the first failure.
	SendBulk(emails []Email) error
}

// Email is a plain text notification.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Config holds the SMTP relay settings.
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"      envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
	FromName string `env:"FROM_NAME" envDefault:"Art Gallery"`
}

// Validate reports the first missing SMTP setting.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return errors.New("missing SMTP_PORT environment variable")
	}
	if c.From == "" {
		return errors.New("missing SMTP_FROM environment variable")
	}

	return nil
}

// Mailer sends through a gomail dialer. Each Send opens its own connection.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

func NewMailer(cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (m *Mailer) Send(email Email) error {
	msg, err := m.newMessage(email)
	if err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send %q: %w", email.Subject, err)
	}
	return nil
}

func (m *Mailer) SendBulk(emails []Email) error {
	msgs := make([]*gomail.Message, 0, len(emails))
	for i, email := range emails {
		msg, err := m.newMessage(email)
		if err != nil {
			return fmt.Errorf("email %d: %w", i+1, err)
		}
		msgs = append(msgs, msg)
	}

	conn, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	for i, msg := range msgs {
		if err := gomail.Send(conn, msg); err != nil {
			return fmt.Errorf("email %d: %w", i+1, err)
		}
	}

	return nil
}

func (m *Mailer) newMessage(email Email) (*gomail.Message, error) {
	if len(email.To) == 0 {
		return nil, ErrNoRecipients
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, m.config.FromName)
	msg.SetHeader("To", email.To...)
	if email.ReplyTo != "" {
		msg.SetHeader("Reply-To", email.ReplyTo)
	}
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)

	return msg, nil
}
