package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
)

func validContactPayload() map[string]any {
	return map[string]any{
		"name":          "Ada Lovelace",
		"email":         "ada@example.com",
		"message":       "Hello, I would love to collaborate.",
		"captcha_token": "tok",
	}
}

func TestContactService_Submit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path persists and notifies", func(t *testing.T) {
		t.Parallel()

		var stored *models.ContactMessage
		repo := &contactRepoStub{createFn: func(_ context.Context, msg *models.ContactMessage) error {
			msg.ID = 7
			stored = msg
			return nil
		}}
		mail := newMailerStub()
		svc := NewContactService(repo, acceptAllVerifier(), mail)

		msg, err := svc.Submit(ctx, validContactPayload(), "203.0.113.9")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, uint(7), msg.ID)
		assert.Equal(t, "Ada Lovelace", msg.Name)
		assert.WithinDuration(t, time.Now().UTC(), msg.CreatedAt, 5*time.Second)

		select {
		case sent := <-mail.sent:
			assert.Equal(t, msg.ID, sent.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("notification was never dispatched")
		}
	})

	t.Run("trims and collapses whitespace before storing", func(t *testing.T) {
		t.Parallel()

		repo := &contactRepoStub{createFn: func(_ context.Context, _ *models.ContactMessage) error { return nil }}
		svc := NewContactService(repo, acceptAllVerifier(), newMailerStub())

		payload := validContactPayload()
		payload["name"] = "  Ada  "
		payload["message"] = "Hello   world"

		msg, err := svc.Submit(ctx, payload, "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, "Ada", msg.Name)
		assert.Equal(t, "Hello world", msg.Message)
	})

	t.Run("validation failure reports per-field detail", func(t *testing.T) {
		t.Parallel()

		svc := NewContactService(&contactRepoStub{}, acceptAllVerifier(), newMailerStub())

		payload := validContactPayload()
		payload["email"] = "not-an-email"
		delete(payload, "name")

		_, err := svc.Submit(ctx, payload, "203.0.113.9")
		assertAppErrorCode(t, err, models.CodeValidation)
		appErr := err.(*models.AppError)
		assert.Contains(t, appErr.Details, "email")
		assert.Contains(t, appErr.Details, "name")
	})

	t.Run("captcha rejection short-circuits persistence", func(t *testing.T) {
		t.Parallel()

		repo := &contactRepoStub{createFn: func(_ context.Context, _ *models.ContactMessage) error {
			t.Error("Create must not run after captcha failure")
			return nil
		}}
		svc := NewContactService(repo, rejectAllVerifier(), newMailerStub())

		_, err := svc.Submit(ctx, validContactPayload(), "203.0.113.9")
		assertAppErrorCode(t, err, models.CodeCaptchaFailed)
	})

	t.Run("markup-only message rejected after sanitization", func(t *testing.T) {
		t.Parallel()

		svc := NewContactService(&contactRepoStub{}, acceptAllVerifier(), newMailerStub())

		payload := validContactPayload()
		payload["message"] = "<script>alert('hi')</script>"

		_, err := svc.Submit(ctx, payload, "203.0.113.9")
		assertAppErrorCode(t, err, models.CodeEmptyAfterSanitize)
	})

	t.Run("persistence failure maps to DB_ERROR", func(t *testing.T) {
		t.Parallel()

		repo := &contactRepoStub{createFn: func(_ context.Context, _ *models.ContactMessage) error {
			return errors.New("connection refused")
		}}
		svc := NewContactService(repo, acceptAllVerifier(), newMailerStub())

		_, err := svc.Submit(ctx, validContactPayload(), "203.0.113.9")
		assertAppErrorCode(t, err, models.CodeDB)
	})

	t.Run("notification failure does not affect the response", func(t *testing.T) {
		t.Parallel()

		repo := &contactRepoStub{createFn: func(_ context.Context, _ *models.ContactMessage) error { return nil }}
		failed := make(chan struct{})
		mail := &mailerStub{}
		mail.sendFn = func(_ context.Context, _ *models.ContactMessage) error {
			close(failed)
			return errors.New("smtp unreachable")
		}
		svc := NewContactService(repo, acceptAllVerifier(), mail)

		msg, err := svc.Submit(ctx, validContactPayload(), "203.0.113.9")
		require.NoError(t, err)
		require.NotNil(t, msg)

		select {
		case <-failed:
		case <-time.After(2 * time.Second):
			t.Fatal("notification was never attempted")
		}
	})
}
