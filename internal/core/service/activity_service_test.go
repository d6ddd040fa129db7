package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

func TestActivityService_RecordStampsEvent(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), domain.TaskEvent{TaskID: "t1", Type: domain.TaskCreated}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one stored event, got %d", len(repo.inserted))
	}
	e := repo.inserted[0]
	if e.ID == "" || e.OccurredAt.IsZero() {
		t.Fatalf("event not stamped: %+v", e)
	}
}

func TestActivityService_RecordFailure(t *testing.T) {
	repo := &stubEventRepo{insertErr: errStoreDown}
	svc := NewActivityService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.TaskEvent{TaskID: "t1"})
	if !errors.Is(err, domain.ErrProcessing) {
		t.Fatalf("expected processing error, got %v", err)
	}
}
