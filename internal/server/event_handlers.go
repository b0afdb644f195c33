package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListEvents handles GET /api/events, newest first.
func (s *Server) ListEvents(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	events, err := s.eventService.ListEvents(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]*models.Dict, len(events))
	for i := range events {
		out[i] = events[i].ToDict()
	}
	return c.JSON(fiber.Map{"events": out})
}
