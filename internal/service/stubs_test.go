package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/token"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return nil, models.NewNotFoundError("User", id) },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

// blogRepoStub is a stub for repository.BlogRepository.
type blogRepoStub struct {
	createFn      func(context.Context, *models.Blog) error
	getByIDFn     func(context.Context, uint) (*models.Blog, error)
	getByUserIDFn func(context.Context, uint) ([]*models.Blog, error)
	listFn        func(context.Context, repository.ListFilter) ([]*models.Blog, error)
	updateFn      func(context.Context, *models.Blog) error
	deleteFn      func(context.Context, uint) error
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) GetByUserID(ctx context.Context, userID uint) ([]*models.Blog, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *blogRepoStub) List(ctx context.Context, filter repository.ListFilter) ([]*models.Blog, error) {
	return s.listFn(ctx, filter)
}
func (s *blogRepoStub) Update(ctx context.Context, blog *models.Blog) error {
	return s.updateFn(ctx, blog)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn:      func(_ context.Context, _ *models.Blog) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Blog, error) { return nil, models.NewNotFoundError("Blog", id) },
		getByUserIDFn: func(_ context.Context, _ uint) ([]*models.Blog, error) { return nil, nil },
		listFn:        func(_ context.Context, _ repository.ListFilter) ([]*models.Blog, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Blog) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// staticCodec is a deterministic token.Codec for tests.
type staticCodec struct {
	signed string
	err    error
}

func (c *staticCodec) Sign(models.Identity) (string, error) {
	return c.signed, c.err
}
func (c *staticCodec) Verify(string) (models.Identity, error) {
	return models.Identity{}, token.ErrInvalidToken
}

func ptr(s string) *string { return &s }
