package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ListFilter narrows blog listings. Zero values mean "no filtering".
type ListFilter struct {
	// Category is matched exactly.
	Category string
	// Author is a case-insensitive substring match against the denormalized
	// author name, not the owner ID.
	Author string
}

// BlogRepository defines the interface for blog data operations.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Blog, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlogList(ctx)
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	key := cache.BlogKey(id)

	err := cache.Aside(ctx, key, &blog, cache.BlogTTL, func() error {
		if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) List(ctx context.Context, filter ListFilter) ([]*models.Blog, error) {
	var blogs []*models.Blog

	// Only the unfiltered listing is cached; filtered queries go to the store.
	if filter.Category == "" && filter.Author == "" {
		err := cache.Aside(ctx, cache.BlogListKey, &blogs, cache.BlogListTTL, func() error {
			return r.fetchList(ctx, filter, &blogs)
		})
		if err != nil {
			return nil, err
		}
		return blogs, nil
	}

	if err := r.fetchList(ctx, filter, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) fetchList(ctx context.Context, filter ListFilter, blogs *[]*models.Blog) error {
	query := r.db.WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Author != "" {
		// LOWER(...) LIKE keeps the match case-insensitive on both
		// PostgreSQL and the SQLite test database.
		pattern := "%" + strings.ToLower(filter.Author) + "%"
		query = query.Where("LOWER(author) LIKE ?", pattern)
	}
	if err := query.Order("created_at DESC").Find(blogs).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blog.ID)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Blog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, id)
	return nil
}
