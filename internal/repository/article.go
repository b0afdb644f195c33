package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	// GetByID loads the bare article row (no relations); comment creation and
	// permission checks use it through the cache.
	GetByID(ctx context.Context, id string) (*models.Article, error)
	// GetByIDFull loads the article with its author and category preloaded for
	// serialization.
	GetByIDFull(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListArticlesOptions) ([]models.Article, error)
	// IncrementReadCount bumps read_count atomically in the store. The counter
	// never decreases.
	IncrementReadCount(ctx context.Context, id string) error
}

// ListArticlesOptions narrows an article listing.
type ListArticlesOptions struct {
	// PublicOnly hides non-public articles (the anonymous view).
	PublicOnly bool
	// CategoryID filters by category when non-empty.
	CategoryID string
	Limit      int
	Offset     int
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	key := cache.ArticleKey(id)

	err := cache.Aside(ctx, key, &article, cache.ArticleTTL, func() error {
		if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetByIDFull(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Article", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &article, nil
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Article already exists")
		}
		if isForeignKeyError(err) {
			return models.NewConflictError("Referenced category or author does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewConflictError("Referenced category or author does not exist")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

// Delete removes the article; the store cascades its comments away with it.
func (r *articleRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, id)
	return nil
}

func (r *articleRepository) List(ctx context.Context, opts ListArticlesOptions) ([]models.Article, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Order("post_time DESC")

	if opts.PublicOnly {
		query = query.Where("public = ?", true)
	}
	if opts.CategoryID != "" {
		query = query.Where("category_id = ?", opts.CategoryID)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) IncrementReadCount(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("read_count", gorm.Expr("read_count + ?", 1)).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, id)
	return nil
}
