package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/google/uuid"
)

// ArticleService implements article publishing and reading.
type ArticleService struct {
	articleRepo repository.ArticleRepository
}

// CreateArticleInput carries the fields for a new article. AuthorID is the
// acting user resolved by the handler layer.
type CreateArticleInput struct {
	ID            string
	Title         string
	TextType      string
	SourceText    string
	Content       *string
	Public        bool
	IsCommentable bool
	CategoryID    *string
	AuthorID      *string
}

// UpdateArticleInput carries a partial article update. Nil fields are left alone.
type UpdateArticleInput struct {
	ID            string
	Title         *string
	TextType      *string
	SourceText    *string
	Content       *string
	Public        *bool
	IsCommentable *bool
	CategoryID    *string
	ClearCategory bool
}

func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

func (s *ArticleService) ListArticles(ctx context.Context, opts repository.ListArticlesOptions) ([]models.Article, error) {
	return s.articleRepo.List(ctx, opts)
}

// GetArticle loads an article for display. countRead bumps the read counter
// (the caller decides: counted for plain reads, not for editor previews).
func (s *ArticleService) GetArticle(ctx context.Context, id string, countRead bool) (*models.Article, error) {
	article, err := s.articleRepo.GetByIDFull(ctx, id)
	if err != nil {
		return nil, err
	}
	if countRead {
		if err := s.articleRepo.IncrementReadCount(ctx, id); err != nil {
			return nil, err
		}
		article.ReadCount++
	}
	return article, nil
}

func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Article title is required")
	}
	if in.TextType == "" {
		return nil, models.NewValidationError("Article text type is required")
	}
	if in.SourceText == "" {
		return nil, models.NewValidationError("Article source text is required")
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	} else if err := validation.ValidateTextID(in.ID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	article := &models.Article{
		ID:            in.ID,
		Title:         in.Title,
		TextType:      in.TextType,
		SourceText:    in.SourceText,
		Content:       in.Content,
		Public:        in.Public,
		IsCommentable: in.IsCommentable,
		CategoryID:    in.CategoryID,
		AuthorID:      in.AuthorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) UpdateArticle(ctx context.Context, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetByIDFull(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Article title is required")
		}
		article.Title = *in.Title
	}
	if in.TextType != nil {
		article.TextType = *in.TextType
	}
	if in.SourceText != nil {
		article.SourceText = *in.SourceText
	}
	if in.Content != nil {
		article.Content = in.Content
	}
	if in.Public != nil {
		article.Public = *in.Public
	}
	if in.IsCommentable != nil {
		article.IsCommentable = *in.IsCommentable
	}
	if in.ClearCategory {
		article.CategoryID = nil
		article.Category = nil
	} else if in.CategoryID != nil {
		article.CategoryID = in.CategoryID
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// DeleteArticle removes the article; the store cascades its comments away.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	if _, err := s.articleRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, id)
}
