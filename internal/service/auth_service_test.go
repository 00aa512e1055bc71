package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := noopUserRepo()
		var created *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 1
			created = u
			return nil
		}

		svc := NewAuthService(repo, &staticCodec{signed: "signed-token"})
		result, err := svc.Signup(ctx, SignupInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)

		assert.Equal(t, "signed-token", result.Token)
		assert.Equal(t, uint(1), result.User.ID)
		require.NotNil(t, created)
		assert.NotEqual(t, "hunter2hunter2", created.Password, "password must be stored hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter2hunter2")))
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), &staticCodec{signed: "t"})

		for _, in := range []SignupInput{
			{Email: "a@example.com", Password: "pw"},
			{Name: "Alice", Password: "pw"},
			{Name: "Alice", Email: "a@example.com"},
		} {
			_, err := svc.Signup(ctx, in)
			require.Error(t, err)
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
		}
	})

	t.Run("Email Already Registered", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 9, Email: email}, nil
		}

		svc := NewAuthService(repo, &staticCodec{signed: "t"})
		_, err := svc.Signup(ctx, SignupInput{Name: "Alice", Email: "taken@example.com", Password: "pw"})
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("Insert Race Surfaces Conflict", func(t *testing.T) {
		// The existence check passes but the unique index trips on insert.
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return models.NewConflictError("User already exists")
		}

		svc := NewAuthService(repo, &staticCodec{signed: "t"})
		_, err := svc.Signup(ctx, SignupInput{Name: "Alice", Email: "raced@example.com", Password: "pw"})
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	digest, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := func() *userRepoStub {
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			if email == "alice@example.com" {
				return &models.User{ID: 1, Name: "Alice", Email: email, Password: string(digest)}, nil
			}
			return nil, nil
		}
		return repo
	}

	t.Run("Success", func(t *testing.T) {
		svc := NewAuthService(userRepo(), &staticCodec{signed: "fresh-token"})
		result, err := svc.Login(ctx, "alice@example.com", "correct-password")
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", result.Token)
		assert.Equal(t, uint(1), result.User.ID)
	})

	t.Run("Unknown Email And Wrong Password Are Indistinguishable", func(t *testing.T) {
		svc := NewAuthService(userRepo(), &staticCodec{signed: "t"})

		_, unknownErr := svc.Login(ctx, "nobody@example.com", "whatever")
		_, wrongErr := svc.Login(ctx, "alice@example.com", "wrong-password")

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())

		var appErr *models.AppError
		require.True(t, errors.As(unknownErr, &appErr))
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("Token Signing Failure", func(t *testing.T) {
		svc := NewAuthService(userRepo(), &staticCodec{err: errors.New("keystore unavailable")})
		_, err := svc.Login(ctx, "alice@example.com", "correct-password")
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeInternal, appErr.Code)
	})
}
