package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/models"
)

// Shared stubs for the service tests.

// verifierStub is a stub for captcha.Verifier.
type verifierStub struct {
	verifyFn func(context.Context, string, string) bool
}

func (s *verifierStub) Verify(ctx context.Context, token, remoteIP string) bool {
	return s.verifyFn(ctx, token, remoteIP)
}

func acceptAllVerifier() *verifierStub {
	return &verifierStub{verifyFn: func(_ context.Context, _, _ string) bool { return true }}
}

func rejectAllVerifier() *verifierStub {
	return &verifierStub{verifyFn: func(_ context.Context, _, _ string) bool { return false }}
}

// mailerStub is a stub for mailer.Mailer.
type mailerStub struct {
	sendFn func(context.Context, *models.ContactMessage) error
	sent   chan *models.ContactMessage
}

func newMailerStub() *mailerStub {
	m := &mailerStub{sent: make(chan *models.ContactMessage, 1)}
	m.sendFn = func(_ context.Context, msg *models.ContactMessage) error {
		m.sent <- msg
		return nil
	}
	return m
}

func (s *mailerStub) SendContactNotification(ctx context.Context, msg *models.ContactMessage) error {
	return s.sendFn(ctx, msg)
}

// contactRepoStub is a stub for repository.ContactRepository.
type contactRepoStub struct {
	createFn func(context.Context, *models.ContactMessage) error
}

func (s *contactRepoStub) Create(ctx context.Context, msg *models.ContactMessage) error {
	return s.createFn(ctx, msg)
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	listByProjectFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByProject(ctx context.Context, projectID uint) ([]*models.Comment, error) {
	return s.listByProjectFn(ctx, projectID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		listByProjectFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

// projectRepoStub is a stub for repository.ProjectRepository.
type projectRepoStub struct {
	getBySlugFn func(context.Context, string) (*models.Project, error)
	listFn      func(context.Context, string) ([]*models.Project, error)
	upsertFn    func(context.Context, *models.Project) error
	deleteFn    func(context.Context, uint) error
}

func (s *projectRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *projectRepoStub) List(ctx context.Context, query string) ([]*models.Project, error) {
	return s.listFn(ctx, query)
}
func (s *projectRepoStub) Upsert(ctx context.Context, project *models.Project) error {
	return s.upsertFn(ctx, project)
}
func (s *projectRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func knownProjectRepo(project *models.Project) *projectRepoStub {
	return &projectRepoStub{
		getBySlugFn: func(_ context.Context, slug string) (*models.Project, error) {
			if slug == project.Slug {
				return project, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		listFn:   func(_ context.Context, _ string) ([]*models.Project, error) { return []*models.Project{project}, nil },
		upsertFn: func(_ context.Context, _ *models.Project) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}
