package server

import (
	"inkwell/internal/models"
	"inkwell/internal/permission"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/articles/:id/comments. Visitors see reviewed
// comments only; moderators see everything.
func (s *Server) ListComments(c *fiber.Ctx) error {
	ident, _ := s.identity(c)
	includeUnreviewed := ident.Can(permission.ReviewComment)

	comments, err := s.commentService.ListComments(c.Context(), c.Params("id"), includeUnreviewed)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]*models.Dict, len(comments))
	for i := range comments {
		out[i] = comments[i].ToDict()
	}
	return c.JSON(fiber.Map{"comments": out})
}

// CreateComment handles POST /api/articles/:id/comments. Open to visitors;
// the caller's address is captured here and handed to the service as a plain
// value.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content   string `json:"content"`
		Nickname  string `json:"nickname"`
		ReplyToID *uint  `json:"reply_to"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		ArticleID: c.Params("id"),
		Content:   req.Content,
		Nickname:  req.Nickname,
		ReplyToID: req.ReplyToID,
		UserID:    currentUserID(c),
		IPAddress: c.IP(),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment.ToDict())
}

// ReviewComment handles PUT /api/comments/:id/review
func (s *Server) ReviewComment(c *fiber.Ctx) error {
	id, err := s.parseUintID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Reviewed *bool `json:"reviewed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	reviewed := true
	if req.Reviewed != nil {
		reviewed = *req.Reviewed
	}

	if err := s.commentService.ReviewComment(c.Context(), id, reviewed); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment updated"})
}

// DeleteComment handles DELETE /api/comments/:id. Replies to the deleted
// comment stay, with their reply reference nulled by the store.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseUintID(c)
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
