package mailer

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"portfolio/internal/config"
	"portfolio/internal/models"
)

type smtpMailer struct {
	client        *gomail.Client
	sender        string
	recipient     string
	subjectPrefix string
}

func newSMTPMailer(cfg *config.Config) (*smtpMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(10 * time.Second),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: smtp client: %w", err)
	}

	return &smtpMailer{
		client:        client,
		sender:        cfg.MailSender,
		recipient:     cfg.MailTo,
		subjectPrefix: cfg.MailSubjectPrefix,
	}, nil
}

func (m *smtpMailer) SendContactNotification(ctx context.Context, msg *models.ContactMessage) error {
	mail := gomail.NewMsg()
	if err := mail.From(m.sender); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if err := mail.To(m.recipient); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	mail.Subject(renderSubject(m.subjectPrefix, msg))
	mail.SetBodyString(gomail.TypeTextPlain, renderText(msg))
	mail.AddAlternativeString(gomail.TypeTextHTML, renderHTML(msg))

	if err := m.client.DialAndSendWithContext(ctx, mail); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}
