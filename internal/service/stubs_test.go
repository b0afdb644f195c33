package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn   func(context.Context, string) (*models.User, error)
	getByNameFn func(context.Context, string) (*models.User, error)
	createFn    func(context.Context, *models.User) error
	updateFn    func(context.Context, *models.User) error
	deleteFn    func(context.Context, string) error
	listFn      func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByName(ctx context.Context, name string) (*models.User, error) {
	return s.getByNameFn(ctx, name)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:   func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		getByNameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:    func(_ context.Context, _ *models.User) error { return nil },
		updateFn:    func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:    func(_ context.Context, _ string) error { return nil },
		listFn:      func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// articleRepoStub is a stub for repository.ArticleRepository.
type articleRepoStub struct {
	getByIDFn       func(context.Context, string) (*models.Article, error)
	getByIDFullFn   func(context.Context, string) (*models.Article, error)
	createFn        func(context.Context, *models.Article) error
	updateFn        func(context.Context, *models.Article) error
	deleteFn        func(context.Context, string) error
	listFn          func(context.Context, repository.ListArticlesOptions) ([]models.Article, error)
	incrementReadFn func(context.Context, string) error
}

func (s *articleRepoStub) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return s.getByIDFn(ctx, id)
}
func (s *articleRepoStub) GetByIDFull(ctx context.Context, id string) (*models.Article, error) {
	return s.getByIDFullFn(ctx, id)
}
func (s *articleRepoStub) Create(ctx context.Context, article *models.Article) error {
	return s.createFn(ctx, article)
}
func (s *articleRepoStub) Update(ctx context.Context, article *models.Article) error {
	return s.updateFn(ctx, article)
}
func (s *articleRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *articleRepoStub) List(ctx context.Context, opts repository.ListArticlesOptions) ([]models.Article, error) {
	return s.listFn(ctx, opts)
}
func (s *articleRepoStub) IncrementReadCount(ctx context.Context, id string) error {
	return s.incrementReadFn(ctx, id)
}

func noopArticleRepo() *articleRepoStub {
	return &articleRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.Article, error) {
			return &models.Article{ID: id, IsCommentable: true}, nil
		},
		getByIDFullFn: func(_ context.Context, id string) (*models.Article, error) {
			return &models.Article{ID: id, IsCommentable: true}, nil
		},
		createFn: func(_ context.Context, _ *models.Article) error { return nil },
		updateFn: func(_ context.Context, _ *models.Article) error { return nil },
		deleteFn: func(_ context.Context, _ string) error { return nil },
		listFn: func(_ context.Context, _ repository.ListArticlesOptions) ([]models.Article, error) {
			return nil, nil
		},
		incrementReadFn: func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	createFn        func(context.Context, *models.Comment) error
	listByArticleFn func(context.Context, string, bool) ([]models.Comment, error)
	setReviewedFn   func(context.Context, uint, bool) error
	deleteFn        func(context.Context, uint) error
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByArticle(ctx context.Context, articleID string, includeUnreviewed bool) ([]models.Comment, error) {
	return s.listByArticleFn(ctx, articleID, includeUnreviewed)
}
func (s *commentRepoStub) SetReviewed(ctx context.Context, id uint, reviewed bool) error {
	return s.setReviewedFn(ctx, id, reviewed)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		listByArticleFn: func(_ context.Context, _ string, _ bool) ([]models.Comment, error) {
			return nil, nil
		},
		setReviewedFn: func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	getByIDFn        func(context.Context, string) (*models.Category, error)
	createFn         func(context.Context, *models.Category) error
	updateFn         func(context.Context, *models.Category) error
	deleteFn         func(context.Context, string) error
	listWithCountsFn func(context.Context) ([]models.Category, error)
}

func (s *categoryRepoStub) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *categoryRepoStub) ListWithCounts(ctx context.Context) ([]models.Category, error) {
	return s.listWithCountsFn(ctx)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.Category, error) {
			return &models.Category{ID: id}, nil
		},
		createFn:         func(_ context.Context, _ *models.Category) error { return nil },
		updateFn:         func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:         func(_ context.Context, _ string) error { return nil },
		listWithCountsFn: func(_ context.Context) ([]models.Category, error) { return nil, nil },
	}
}

// eventRepoStub is a stub for repository.EventRepository.
type eventRepoStub struct {
	created []*models.Event
	err     error
}

func (s *eventRepoStub) Create(_ context.Context, event *models.Event) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, event)
	return nil
}
func (s *eventRepoStub) List(_ context.Context, _, _ int) ([]models.Event, error) {
	out := make([]models.Event, 0, len(s.created))
	for _, e := range s.created {
		out = append(out, *e)
	}
	return out, nil
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
