package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// ActivityService persists task events handed over by the dispatcher.
type ActivityService struct {
	events ports.TaskEventRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewActivityService(events ports.TaskEventRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{
		events: events,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record stores event, stamping its id and time when missing.
func (s *ActivityService) Record(ctx context.Context, event domain.TaskEvent) error {
	if event.ID == "" {
		event.ID = domain.NewID()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}
	if err := s.events.Insert(ctx, &event); err != nil {
		return err
	}
	s.log.Debug().
		Str("task_id", event.TaskID).
		Str("type", string(event.Type)).
		Msg("task event recorded")
	return nil
}

var _ ports.ActivityRecorder = (*ActivityService)(nil)
