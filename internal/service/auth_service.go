// Package service implements the application's business logic over the
// repository layer.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// AuthService validates signup/login requests against the user store and
// issues session tokens.
type AuthService struct {
	userRepo repository.UserRepository
	codec    token.Codec
}

// SignupInput is the payload for AuthService.Signup.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult carries the authenticated user and a freshly issued token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// NewAuthService creates an AuthService over the given store and token codec.
func NewAuthService(userRepo repository.UserRepository, codec token.Codec) *AuthService {
	return &AuthService{userRepo: userRepo, codec: codec}
}

// Signup registers a new user and issues a token bound to the new identity.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email, and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email is already registered")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(digest),
	}

	// The store's unique index on email catches the race between the
	// existence check and the insert; the repository maps it to a conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.codec.Sign(models.Identity{UserID: user.ID})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &AuthResult{User: user, Token: signed}, nil
}

// Login checks credentials and issues a fresh token. Unknown email and wrong
// password produce the same error so the response does not leak which one
// failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	signed, err := s.codec.Sign(models.Identity{UserID: user.ID})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &AuthResult{User: user, Token: signed}, nil
}
