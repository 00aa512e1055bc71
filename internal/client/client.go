package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/go-resty/resty/v2"
)

// Sentinel errors mapped from API status codes. Frontends treat
// ErrUnauthorized as "redirect to login" and must present ErrForbidden
// distinctly from ErrNotFound.
var (
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("not authorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// BlogDraft is the payload for creating a blog.
type BlogDraft struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
}

// BlogPatch is a partial update. Nil fields are omitted from the request and
// left untouched by the server.
type BlogPatch struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Content  *string `json:"content,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Client is a thin Inkwell API client. It owns the Session: the current
// token is attached to every request, and login/signup/logout are the only
// operations that mutate and persist it.
type Client struct {
	http    *resty.Client
	store   *SessionStore
	session *Session
}

// New creates a Client for the given base URL, loading any persisted session.
func New(baseURL string, store *SessionStore) (*Client, error) {
	session, err := store.Load()
	if err != nil {
		return nil, err
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")

	c := &Client{http: cli, store: store, session: session}
	cli.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.session.LoggedIn() {
			req.SetHeader("Authorization", "Bearer "+c.session.Token)
		}
		return nil
	})

	return c, nil
}

// Session returns the current session state.
func (c *Client) Session() *Session {
	return c.session
}

// Signup registers a new account and starts a session for it.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name, "email": email, "password": password}).
		Post("/api/auth/signup")
	if err != nil {
		return nil, fmt.Errorf("signup request: %w", err)
	}
	if err := mapAPIError(resp); err != nil {
		return nil, err
	}

	return c.startSession(resp.Body())
}

// Login authenticates and starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	if err := mapAPIError(resp); err != nil {
		return nil, err
	}

	return c.startSession(resp.Body())
}

func (c *Client) startSession(body []byte) (*models.User, error) {
	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}

	c.session.Token = auth.Token
	c.session.User = auth.User
	if err := c.store.Save(c.session); err != nil {
		return nil, err
	}
	return auth.User, nil
}

// Logout clears the session state and its persisted copy.
func (c *Client) Logout() error {
	c.session.Token = ""
	c.session.User = nil
	return c.store.Clear()
}

// Blogs lists blogs, optionally filtered by exact category and/or
// case-insensitive author substring.
func (c *Client) Blogs(ctx context.Context, category, author string) ([]models.Blog, error) {
	req := c.http.R().SetContext(ctx)
	if category != "" {
		req.SetQueryParam("category", category)
	}
	if author != "" {
		req.SetQueryParam("author", author)
	}

	resp, err := req.Get("/api/blogs")
	if err != nil {
		return nil, fmt.Errorf("list blogs request: %w", err)
	}
	if err := mapAPIError(resp); err != nil {
		return nil, err
	}

	var blogs []models.Blog
	if err := json.Unmarshal(resp.Body(), &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return blogs, nil
}

// Blog fetches a single blog by ID.
func (c *Client) Blog(ctx context.Context, id uint) (*models.Blog, error) {
	resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/api/blogs/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get blog request: %w", err)
	}
	if err := mapAPIError(resp); err != nil {
		return nil, err
	}

	return decodeBlog(resp.Body())
}

// MyBlogs lists the current user's blogs.
func (c *Client) MyBlogs(ctx context.Context) ([]models.Blog, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/blogs/mine")
	if err != nil {
		return nil, fmt.Errorf("my blogs request: %w", err)
	}
	if err := mapAPIError(resp); err != nil {
		return nil, err
	}

	var blogs []models.Blog
	if err := json.Unmarshal(resp.Body(), &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return blogs, nil
}

// CreateBlog submits a new blog.
func (c *Client) CreateBlog(ctx context.Context, draft BlogDraft) (*models.Blog, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(draft).Post("/api/blogs")
	if err != nil {
		return nil, fmt.Errorf("create blog request: %w", err)
	}
	if err := mapAPIError(resp); err != nil {
		return nil, err
	}

	return decodeBlog(resp.Body())
}

// UpdateBlog applies a partial update to a blog the user owns.
func (c *Client) UpdateBlog(ctx context.Context, id uint, patch BlogPatch) (*models.Blog, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(patch).Put(fmt.Sprintf("/api/blogs/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update blog request: %w", err)
	}
	if err := mapAPIError(resp); err != nil {
		return nil, err
	}

	return decodeBlog(resp.Body())
}

// DeleteBlog removes a blog the user owns.
func (c *Client) DeleteBlog(ctx context.Context, id uint) error {
	resp, err := c.http.R().SetContext(ctx).Delete(fmt.Sprintf("/api/blogs/%d", id))
	if err != nil {
		return fmt.Errorf("delete blog request: %w", err)
	}
	return mapAPIError(resp)
}

func decodeBlog(body []byte) (*models.Blog, error) {
	var blog models.Blog
	if err := json.Unmarshal(body, &blog); err != nil {
		return nil, fmt.Errorf("decode blog: %w", err)
	}
	return &blog, nil
}

// mapAPIError converts error status codes to sentinel errors, wrapping the
// server's message when one is present.
func mapAPIError(resp *resty.Response) error {
	if resp.StatusCode() < 400 {
		return nil
	}

	message := strings.TrimSpace(string(resp.Body()))
	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		message = body.Message
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	default:
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode(), message)
	}
}
