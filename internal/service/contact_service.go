// Package service implements the submission pipelines behind the public API.
package service

import (
	"context"
	"strings"
	"time"

	"portfolio/internal/captcha"
	"portfolio/internal/mailer"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/sanitize"
	"portfolio/internal/validation"
)

// notifyTimeout bounds the background notification send so a slow mail
// provider cannot pile up goroutines.
const notifyTimeout = 15 * time.Second

type ContactService struct {
	contactRepo repository.ContactRepository
	verifier    captcha.Verifier
	mailer      mailer.Mailer
}

func NewContactService(
	contactRepo repository.ContactRepository,
	verifier captcha.Verifier,
	m mailer.Mailer,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		verifier:    verifier,
		mailer:      m,
	}
}

// Submit runs the full contact pipeline: validation, captcha verification,
// sanitization, persistence, then a best-effort notification. The returned
// message is the persisted row; notification failures never affect it.
func (s *ContactService) Submit(ctx context.Context, payload map[string]any, clientIP string) (*models.ContactMessage, error) {
	values, violations := validation.Validate(payload, validation.ContactSchema)
	if violations != nil {
		return nil, models.NewValidationError(violations)
	}

	if !s.verifier.Verify(ctx, values["captcha_token"], clientIP) {
		return nil, models.NewCaptchaFailedError()
	}

	name := sanitize.Text(values["name"])
	message := sanitize.Text(values["message"])
	email := strings.TrimSpace(values["email"])

	if name == "" || message == "" {
		return nil, models.NewEmptyAfterSanitizeError("Message content is empty after sanitization.")
	}

	msg := &models.ContactMessage{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to persist contact message", "error", err)
		return nil, models.NewDBError(err)
	}

	go s.notify(msg)

	return msg, nil
}

// notify sends the operator notification outside the request lifecycle.
// Failures are logged and swallowed: the message is already persisted.
func (s *ContactService) notify(msg *models.ContactMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.mailer.SendContactNotification(ctx, msg); err != nil {
		middleware.Logger.Error("contact notification failed",
			"error", err,
			"message_id", msg.ID,
		)
	}
}
