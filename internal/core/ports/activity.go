package ports

import (
	"context"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// ActivityPublisher hands task events to the activity recorder. Publishing
// never fails the originating write.
type ActivityPublisher interface {
	Publish(ctx context.Context, event domain.TaskEvent)
}

// ActivityRecorder persists a single task event.
type ActivityRecorder interface {
	Record(ctx context.Context, event domain.TaskEvent) error
}
