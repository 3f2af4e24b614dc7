package mailer

import (
	"context"

	"portfolio/internal/middleware"
	"portfolio/internal/models"
)

// noopMailer reports success without sending. Used when MAIL_SUPPRESS is set.
type noopMailer struct{}

func (noopMailer) SendContactNotification(ctx context.Context, msg *models.ContactMessage) error {
	middleware.Logger.InfoContext(ctx, "mail suppressed, skipping contact notification",
		"from_name", msg.Name,
	)
	return nil
}
