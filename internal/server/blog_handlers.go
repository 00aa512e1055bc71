package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListBlogs handles GET /api/blogs?category=&author=.
// Category filters exactly; author is a case-insensitive substring match on
// the denormalized author name. Results are newest first.
func (s *Server) ListBlogs(c *fiber.Ctx) error {
	filter := repository.ListFilter{
		Category: c.Query("category"),
		Author:   c.Query("author"),
	}

	blogs, err := s.blogService.List(c.Context(), filter)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(blogs)
}

// GetCategories handles GET /api/blogs/categories.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	return c.JSON(s.blogService.Categories())
}

// GetMyBlogs handles GET /api/blogs/mine.
func (s *Server) GetMyBlogs(c *fiber.Ctx) error {
	blogs, err := s.blogService.Mine(c.Context(), identity(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(blogs)
}

// GetBlog handles GET /api/blogs/:id.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	blog, err := s.blogService.Get(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(blog)
}

// CreateBlog handles POST /api/blogs.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req service.CreateBlogInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.Create(c.Context(), identity(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(blog)
}

// UpdateBlog handles PUT /api/blogs/:id. The request body carries only the
// mutable fields; anything else a client sends is dropped during decoding.
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req service.UpdateBlogInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.Update(c.Context(), identity(c), id, req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(blog)
}

// DeleteBlog handles DELETE /api/blogs/:id.
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.blogService.Delete(c.Context(), identity(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Blog deleted successfully"})
}
