package server

import (
	"inkwell/internal/models"
	"inkwell/internal/permission"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListArticles handles GET /api/articles. Anonymous callers see only public
// articles; identities with the edit capability see everything.
func (s *Server) ListArticles(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	ident, _ := s.identity(c)

	articles, err := s.articleService.ListArticles(c.Context(), repository.ListArticlesOptions{
		PublicOnly: !ident.Can(permission.EditArticle),
		CategoryID: c.Query("category"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]*models.Dict, len(articles))
	for i := range articles {
		out[i] = articles[i].ToDict(false, false)
	}
	return c.JSON(fiber.Map{"articles": out})
}

// GetArticle handles GET /api/articles/:id. Content is included on request;
// source text only for the author and editors. A plain public read bumps the
// read counter, editor previews do not.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	ident, user := s.identity(c)

	article, err := s.articleRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	isAuthor := user != nil && article.AuthorID != nil && user.ID == *article.AuthorID
	canEdit := isAuthor || ident.Can(permission.EditArticle)
	if !article.Public && !canEdit {
		// Hidden articles are indistinguishable from absent ones.
		return respondError(c, models.NewNotFoundError("Article", id))
	}

	withContent := c.QueryBool("with_content")
	withSrc := c.QueryBool("with_src") && canEdit
	countRead := article.Public && !canEdit

	full, err := s.articleService.GetArticle(c.Context(), id, countRead)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(full.ToDict(withContent, withSrc))
}

// CreateArticle handles POST /api/articles
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req struct {
		ID            string  `json:"id"`
		Title         string  `json:"title"`
		TextType      string  `json:"text_type"`
		SourceText    string  `json:"source_text"`
		Content       *string `json:"content"`
		Public        *bool   `json:"public"`
		IsCommentable *bool   `json:"is_commentable"`
		CategoryID    *string `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateArticleInput{
		ID:            req.ID,
		Title:         req.Title,
		TextType:      req.TextType,
		SourceText:    req.SourceText,
		Content:       req.Content,
		Public:        true,
		IsCommentable: true,
		CategoryID:    req.CategoryID,
		AuthorID:      currentUserID(c),
	}
	if req.Public != nil {
		in.Public = *req.Public
	}
	if req.IsCommentable != nil {
		in.IsCommentable = *req.IsCommentable
	}

	article, err := s.articleService.CreateArticle(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(article.ToDict(true, false))
}

// UpdateArticle handles PUT /api/articles/:id
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	var req struct {
		Title         *string `json:"title"`
		TextType      *string `json:"text_type"`
		SourceText    *string `json:"source_text"`
		Content       *string `json:"content"`
		Public        *bool   `json:"public"`
		IsCommentable *bool   `json:"is_commentable"`
		CategoryID    *string `json:"category_id"`
		ClearCategory bool    `json:"clear_category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.UpdateArticle(c.Context(), service.UpdateArticleInput{
		ID:            c.Params("id"),
		Title:         req.Title,
		TextType:      req.TextType,
		SourceText:    req.SourceText,
		Content:       req.Content,
		Public:        req.Public,
		IsCommentable: req.IsCommentable,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(article.ToDict(true, false))
}

// DeleteArticle handles DELETE /api/articles/:id. Comments cascade away with
// the article.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	if err := s.articleService.DeleteArticle(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Article deleted"})
}
