package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/featureflags"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-key-12345678901234567890123456789012"

// newTestServer wires a Server over an in-memory SQLite database with the
// real token codec and no Redis. Routes are registered without the outer
// middleware stack (metrics, CORS, global limiter).
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Blog{}))

	codec, err := token.NewJWTCodec(testJWTSecret)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)

	cfg := &config.Config{
		Port:         "0",
		JWTSecret:    testJWTSecret,
		FeatureFlags: "drafts=on,legacy_feed=off,beta_editor=50%",
		Env:          "test",
	}

	s := &Server{
		config:       cfg,
		db:           db,
		featureFlags: featureflags.NewManager(cfg.FeatureFlags),
		codec:        codec,
		userRepo:     userRepo,
		blogRepo:     blogRepo,
		authService:  service.NewAuthService(userRepo, codec),
		blogService:  service.NewBlogService(blogRepo, userRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signupUser registers a user through the API and returns the issued token.
func signupUser(t *testing.T, app *fiber.App, name string) (service.AuthResult, string) {
	t.Helper()

	email := fmt.Sprintf("%s@example.com", name)
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeBody[service.AuthResult](t, resp)
	require.NotEmpty(t, result.Token)
	return result, result.Token
}

// createBlog posts a blog as the given user and returns it.
func createBlog(t *testing.T, app *fiber.App, bearer, title, category string) models.Blog {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/blogs", bearer, map[string]string{
		"title":    title,
		"category": category,
		"content":  "Content of " + title,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeBody[models.Blog](t, resp)
}
