package server

import (
	"inkwell/internal/models"
	"inkwell/internal/permission"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	withPermission := c.QueryBool("with_permission")
	out := make([]*models.Dict, len(users))
	for i := range users {
		out[i] = users[i].ToDict(withPermission)
	}
	return c.JSON(fiber.Map{"users": out})
}

// GetUser handles GET /api/users/:id. Users may fetch themselves; fetching
// anyone else takes the user-management capability.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	ident, user := s.identity(c)
	self := user != nil && user.ID == id
	if !self && !ident.Can(permission.ManageUser) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Insufficient permission"))
	}

	target, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(target.ToDict(c.QueryBool("with_permission")))
}

// CreateUser handles POST /api/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Password   string `json:"password"`
		Permission uint64 `json:"permission"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.Context(), service.CreateUserInput{
		ID:         req.ID,
		Name:       req.Name,
		Password:   req.Password,
		Permission: permission.Permission(req.Permission),
	})
	if err != nil {
		return respondError(c, err)
	}

	s.eventService.Record(c.Context(), models.EventUserCreate,
		"created user "+user.Name, currentUserID(c), requestInfo(c))

	return c.Status(fiber.StatusCreated).JSON(user.ToDict(true))
}

// UpdateUser handles PUT /api/users/:id (password change, permission grant,
// expiry flag).
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var req struct {
		Password   *string `json:"password"`
		Permission *uint64 `json:"permission"`
		Expired    *bool   `json:"expired"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateUserInput{
		ID:       id,
		Password: req.Password,
		Expired:  req.Expired,
	}
	if req.Permission != nil {
		p := permission.Permission(*req.Permission)
		in.Permission = &p
	}

	user, err := s.userService.UpdateUser(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	s.eventService.Record(c.Context(), models.EventUserUpdate,
		"updated user "+user.Name, currentUserID(c), requestInfo(c))

	return c.JSON(user.ToDict(true))
}

// DeleteUser handles DELETE /api/users/:id. The store cascades: the user's
// comments and audit events go with the account, while authored articles and
// created categories stay behind with a nulled user reference.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.userService.DeleteUser(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	s.eventService.Record(c.Context(), models.EventUserDelete,
		"deleted user "+id, currentUserID(c), requestInfo(c))

	return c.JSON(fiber.Map{"message": "User deleted"})
}
