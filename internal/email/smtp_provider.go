package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Config struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPProvider sends notifications over SMTP via gomail.
type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(config Config) (*SMTPProvider, error) {
	if config.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if config.From == "" {
		return nil, fmt.Errorf("from address is required")
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.From, p.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendVerificationApproved(to, name string) error {
	return p.send(to,
		"Your Nepshift verification was approved",
		fmt.Sprintf("Hi %s,\n\nYour identity verification has been approved. You can now participate fully on Nepshift.\n", name),
	)
}

func (p *SMTPProvider) SendVerificationRejected(to, name, reason string) error {
	return p.send(to,
		"Your Nepshift verification needs changes",
		fmt.Sprintf("Hi %s,\n\nYour identity verification was rejected.\nReason: %s\n\nYou can re-upload your documents and submit again.\n", name, reason),
	)
}

func (p *SMTPProvider) SendApplicationAccepted(to, shiftTitle string) error {
	return p.send(to,
		"Your shift application was accepted",
		fmt.Sprintf("Good news! Your application for \"%s\" was accepted.\n", shiftTitle),
	)
}

func (p *SMTPProvider) SendApplicationRejected(to, shiftTitle string) error {
	return p.send(to,
		"Update on your shift application",
		fmt.Sprintf("Your application for \"%s\" was not selected this time.\n", shiftTitle),
	)
}
