package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	// ListByArticle returns the article's comments oldest-first. Unreviewed
	// comments are included only when includeUnreviewed is set.
	ListByArticle(ctx context.Context, articleID string, includeUnreviewed bool) ([]models.Comment, error)
	SetReviewed(ctx context.Context, id uint, reviewed bool) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// Create persists the comment. A missing article is a constraint violation,
// fatal to the write. The reply target is stored as supplied; the store does
// not check that it lives on the same article.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewConflictError("Referenced article, user or comment does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID string, includeUnreviewed bool) ([]models.Comment, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ?", articleID).
		Order("create_time")

	if !includeUnreviewed {
		query = query.Where("reviewed = ?", true)
	}

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) SetReviewed(ctx context.Context, id uint, reviewed bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn("reviewed", reviewed)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

// Delete removes the comment; replies pointing at it keep living with their
// reply reference nulled by the store.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
