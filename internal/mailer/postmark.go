package mailer

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"

	"portfolio/internal/config"
	"portfolio/internal/models"
)

type postmarkMailer struct {
	client        *postmark.Client
	sender        string
	recipient     string
	subjectPrefix string
}

func newPostmarkMailer(cfg *config.Config) (*postmarkMailer, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("mailer: POSTMARK_SERVER_TOKEN is required for the postmark transport")
	}
	return &postmarkMailer{
		client:        postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		sender:        cfg.MailSender,
		recipient:     cfg.MailTo,
		subjectPrefix: cfg.MailSubjectPrefix,
	}, nil
}

func (m *postmarkMailer) SendContactNotification(ctx context.Context, msg *models.ContactMessage) error {
	email := postmark.Email{
		From:     m.sender,
		To:       m.recipient,
		Subject:  renderSubject(m.subjectPrefix, msg),
		TextBody: renderText(msg),
		HTMLBody: renderHTML(msg),
		Tag:      "contact-notification",
	}

	resp, err := m.client.SendEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("%w: postmark error %d: %s", ErrSendFailed, resp.ErrorCode, resp.Message)
	}
	return nil
}
