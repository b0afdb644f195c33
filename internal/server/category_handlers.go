package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /api/categories. Every category is returned with
// its aggregated article count.
func (s *Server) ListCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]*models.Dict, len(categories))
	for i := range categories {
		out[i] = categories[i].ToDict()
	}
	return c.JSON(fiber.Map{"categories": out})
}

// CreateCategory handles POST /api/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.Context(), service.CreateCategoryInput{
		ID:          req.ID,
		Name:        req.Name,
		CreatedByID: currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category.ToDict())
}

// RenameCategory handles PUT /api/categories/:id
func (s *Server) RenameCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.RenameCategory(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(category.ToDict())
}

// DeleteCategory handles DELETE /api/categories/:id. Articles in the category
// survive; the store nulls their category reference.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	if err := s.categoryService.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
