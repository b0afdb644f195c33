package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CommentService implements commenting and moderation.
type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

// CreateCommentInput carries the fields for a new comment. UserID is the
// acting user resolved by the handler layer (nil for visitors) and IPAddress
// is the caller's network origin captured by the handler at creation time.
type CreateCommentInput struct {
	ArticleID string
	Content   string
	Nickname  string
	ReplyToID *uint
	UserID    *string
	IPAddress string
}

const maxCommentLen = 10000

func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, articleRepo: articleRepo}
}

// CreateComment stores a comment on a commentable article. When the acting
// user is the article's author, the comment is marked is_author and shows the
// account name instead of a nickname. The reply target is accepted as
// supplied; it is expected, but not verified, to live on the same article.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	article, err := s.articleRepo.GetByID(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if !article.IsCommentable {
		return nil, models.NewValidationError("Article does not accept comments")
	}

	isAuthor := in.UserID != nil && article.AuthorID != nil && *in.UserID == *article.AuthorID
	if !isAuthor && in.Nickname == "" {
		return nil, models.NewValidationError("Nickname is required")
	}

	comment := &models.Comment{
		Content:   in.Content,
		Nickname:  in.Nickname,
		IsAuthor:  isAuthor,
		IPAddress: in.IPAddress,
		UserID:    in.UserID,
		ArticleID: in.ArticleID,
		ReplyToID: in.ReplyToID,
	}
	// Author comments are trusted and visible immediately.
	comment.Reviewed = isAuthor

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns an article's comments; unreviewed ones only for moderators.
func (s *CommentService) ListComments(ctx context.Context, articleID string, includeUnreviewed bool) ([]models.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArticle(ctx, articleID, includeUnreviewed)
}

func (s *CommentService) ReviewComment(ctx context.Context, id uint, reviewed bool) error {
	return s.commentRepo.SetReviewed(ctx, id, reviewed)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}
