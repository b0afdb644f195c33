package service

import (
	"context"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// RequestInfo is the caller context captured by the handler layer at the
// moment a row is created: network origin, route endpoint and the raw request
// line. The persistence core never looks these up itself.
type RequestInfo struct {
	IPAddress   string
	Endpoint    string
	RequestLine string
}

// EventService appends records to the audit log.
type EventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// Record appends one audit event. Auditing is best-effort: a failed append is
// logged and swallowed so it never fails the operation being audited.
func (s *EventService) Record(ctx context.Context, eventType, description string, userID *string, info RequestInfo) {
	event := &models.Event{
		Type:        eventType,
		Description: description,
		IPAddress:   info.IPAddress,
		Endpoint:    info.Endpoint,
		Request:     info.RequestLine,
		UserID:      userID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to record audit event",
			slog.String("type", eventType),
			slog.String("error", err.Error()),
		)
	}
}

func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]models.Event, error) {
	return s.eventRepo.List(ctx, limit, offset)
}
