// Package seed provides helpers to create demo data for the application
// database. Intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded user so demo
// accounts are easy to log into.
const DefaultPassword = "password123"

// Seeder populates the database with fake users and blogs.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided GORM DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data.
func (s *Seeder) ClearAll() error {
	if err := s.db.Exec("DELETE FROM blogs").Error; err != nil {
		return fmt.Errorf("clear blogs: %w", err)
	}
	if err := s.db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

// CreateUser persists a user with a fake name and email.
func (s *Seeder) CreateUser() (*models.User, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(digest),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateBlog persists a blog owned by the given user with a created-at
// timestamp spread over the past 90 days so listings look lived-in.
func (s *Seeder) CreateBlog(user *models.User) (*models.Blog, error) {
	daysBack := s.rand.Intn(90)
	hoursBack := s.rand.Intn(24)

	blog := &models.Blog{
		Title:     gofakeit.Sentence(5),
		Category:  models.Categories[s.rand.Intn(len(models.Categories))],
		Content:   gofakeit.Paragraph(2, 4, 8, "\n\n"),
		Image:     fmt.Sprintf("https://picsum.photos/seed/%s/800/400", gofakeit.UUID()),
		Author:    user.Name,
		UserID:    user.ID,
		CreatedAt: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
	}
	if err := s.db.Create(blog).Error; err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

// Run creates numUsers users and numBlogs blogs with random ownership.
func (s *Seeder) Run(numUsers, numBlogs int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		return fmt.Errorf("no users to own blogs")
	}

	for i := 0; i < numBlogs; i++ {
		owner := users[s.rand.Intn(len(users))]
		if _, err := s.CreateBlog(owner); err != nil {
			return err
		}
	}
	return nil
}
