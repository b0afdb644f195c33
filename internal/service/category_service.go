package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/google/uuid"
)

// CategoryService implements category management.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// CreateCategoryInput carries the fields for a new category. CreatedByID is
// the acting user resolved by the handler layer, nil for none.
type CreateCategoryInput struct {
	ID          string
	Name        string
	CreatedByID *string
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories returns every category with its article count aggregated.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.ListWithCounts(ctx)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Category name is required")
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	} else if err := validation.ValidateTextID(in.ID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	category := &models.Category{
		ID:          in.ID,
		Name:        in.Name,
		CreatedByID: in.CreatedByID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) RenameCategory(ctx context.Context, id, name string) (*models.Category, error) {
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category. Its articles survive with their
// category reference nulled by the store.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
