package server

import (
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/permission"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseUintID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseUintID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's ID from the request, nil for
// anonymous callers. It is the external identity source for rows that default
// their user reference to the acting user.
func currentUserID(c *fiber.Ctx) *string {
	if uid := c.Locals("userID"); uid != nil {
		if s, ok := uid.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

// requestInfo captures the caller context passed to row constructors: network
// origin, route endpoint and the raw request line. Captured here, at the edge,
// so the persistence core stays free of ambient request state.
func requestInfo(c *fiber.Ctx) service.RequestInfo {
	return service.RequestInfo{
		IPAddress:   c.IP(),
		Endpoint:    c.Route().Path,
		RequestLine: fmt.Sprintf("%s %s %s", c.Method(), c.OriginalURL(), c.Request().Header.Protocol()),
	}
}

// identity resolves the acting capability-bearer: the authenticated user, or
// the anonymous identity whose checks always fail. Expired users are treated
// as anonymous; their tokens no longer carry any capability.
func (s *Server) identity(c *fiber.Ctx) (permission.Identity, *models.User) {
	uid := currentUserID(c)
	if uid == nil {
		return permission.Anonymous, nil
	}
	user, err := s.userRepo.GetByID(c.Context(), *uid)
	if err != nil || user == nil || user.Expired {
		return permission.Anonymous, nil
	}
	return user, user
}

// RequirePermission returns a middleware that admits only identities carrying
// the capability p. Runs after AuthRequired; anonymous and expired identities
// are refused.
func (s *Server) RequirePermission(p permission.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, user := s.identity(c)
		if !ident.Can(p) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Insufficient permission"))
		}
		c.Locals("user", user)
		return c.Next()
	}
}

// statusForError maps a domain error to an HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "CONFLICT":
			return fiber.StatusConflict
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "FORBIDDEN":
			return fiber.StatusForbidden
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes the standardized error response with a status derived
// from the domain error code.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
