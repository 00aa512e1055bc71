package service

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// BlogService implements blog CRUD with ownership checks. Identity always
// comes from the verified token; only the owner may mutate a blog.
type BlogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

// CreateBlogInput is the payload for BlogService.Create.
type CreateBlogInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Image    string `json:"image"`
}

// UpdateBlogInput carries the partial update. Pointer fields distinguish
// "absent" from "set to empty": a present field overwrites the stored value,
// an absent one is untouched. Only the mutable fields appear here; ID,
// UserID, Author, and CreatedAt cannot be supplied.
type UpdateBlogInput struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Content  *string `json:"content"`
	Image    *string `json:"image"`
}

// NewBlogService creates a BlogService over the given stores.
func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, userRepo: userRepo}
}

// List returns blogs matching the filter, newest first.
func (s *BlogService) List(ctx context.Context, filter repository.ListFilter) ([]*models.Blog, error) {
	return s.blogRepo.List(ctx, filter)
}

// Get returns a single blog by ID.
func (s *BlogService) Get(ctx context.Context, id uint) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, id)
}

// Mine returns the caller's own blogs, newest first.
func (s *BlogService) Mine(ctx context.Context, identity models.Identity) ([]*models.Blog, error) {
	return s.blogRepo.GetByUserID(ctx, identity.UserID)
}

// Categories returns the suggested category set.
func (s *BlogService) Categories() []string {
	return models.Categories
}

// Create stores a new blog owned by the caller. The author name is copied
// from the owner's user record at creation time and never re-joined.
func (s *BlogService) Create(ctx context.Context, identity models.Identity, in CreateBlogInput) (*models.Blog, error) {
	if in.Title == "" || in.Category == "" || in.Content == "" {
		return nil, models.NewValidationError("Title, category, and content are required")
	}

	// A valid token can outlive its user record; surface that as not found.
	owner, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:    in.Title,
		Category: in.Category,
		Content:  in.Content,
		Image:    in.Image,
		Author:   owner.Name,
		UserID:   identity.UserID,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	middleware.BlogMutations.WithLabelValues("create").Inc()
	return blog, nil
}

// Update applies a partial update to a blog owned by the caller.
func (s *BlogService) Update(ctx context.Context, identity models.Identity, id uint, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.UserID != identity.UserID {
		return nil, models.NewForbiddenError("You can only update your own blogs")
	}

	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Category != nil {
		blog.Category = *in.Category
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}
	if in.Image != nil {
		blog.Image = *in.Image
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}

	middleware.BlogMutations.WithLabelValues("update").Inc()
	return blog, nil
}

// Delete removes a blog owned by the caller. Deleting an unknown or already
// deleted blog reports not found.
func (s *BlogService) Delete(ctx context.Context, identity models.Identity, id uint) error {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != identity.UserID {
		return models.NewForbiddenError("You can only delete your own blogs")
	}

	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return err
	}

	middleware.BlogMutations.WithLabelValues("delete").Inc()
	return nil
}
