// Package mailer delivers operator notifications for contact submissions.
package mailer

import (
	"context"
	"errors"

	"portfolio/internal/config"
	"portfolio/internal/models"
)

// ErrSendFailed wraps every transport-level delivery failure.
var ErrSendFailed = errors.New("mailer: failed to send notification")

// Mailer sends a notification for a persisted contact message. Delivery is
// best-effort from the pipeline's point of view: callers bound the send with
// a timeout, log failures and never surface them to the client.
type Mailer interface {
	SendContactNotification(ctx context.Context, msg *models.ContactMessage) error
}

// New selects the mail transport from configuration, once at startup.
// The suppress flag wins over transport selection so staging environments
// report success without sending anything.
func New(cfg *config.Config) (Mailer, error) {
	if cfg.MailSuppress {
		return noopMailer{}, nil
	}

	switch cfg.MailTransport {
	case "smtp":
		return newSMTPMailer(cfg)
	case "postmark":
		return newPostmarkMailer(cfg)
	default:
		return nil, errors.New("mailer: unknown transport " + cfg.MailTransport)
	}
}
