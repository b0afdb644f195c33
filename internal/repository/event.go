package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// EventRepository persists the append-only audit log. There is deliberately no
// update or delete: event rows only ever leave the store when the user they
// reference is deleted and the cascade takes them along.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context, limit, offset int) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewConflictError("Referenced user does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context, limit, offset int) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Order("create_time DESC").
		Limit(limit).Offset(offset).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}
