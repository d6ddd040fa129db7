package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// TaskEventRepository persists task activity to the task_events audit
// collection. Events are append-only.
type TaskEventRepository struct {
	coll *mongo.Collection
}

func NewTaskEventRepository(db *mongo.Database) *TaskEventRepository {
	return &TaskEventRepository{coll: db.Collection(collectionTaskEvents)}
}

type taskEventDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	TaskID        string             `bson:"task_id"`
	ProjectID     string             `bson:"project_id"`
	ActorID       string             `bson:"actor_id"`
	Type          string             `bson:"type"`
	FromStatus    string             `bson:"from_status,omitempty"`
	ToStatus      string             `bson:"to_status,omitempty"`
	FromProjectID string             `bson:"from_project_id,omitempty"`
	ToProjectID   string             `bson:"to_project_id,omitempty"`
	OccurredAt    time.Time          `bson:"occurred_at"`
	RecordedAt    time.Time          `bson:"recorded_at"`
}

func (r *TaskEventRepository) Insert(ctx context.Context, e *domain.TaskEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, ok := objectID(e.ID)
	if !ok {
		id = primitive.NewObjectID()
	}
	doc := taskEventDoc{
		ID:            id,
		TaskID:        e.TaskID,
		ProjectID:     e.ProjectID,
		ActorID:       e.ActorID,
		Type:          string(e.Type),
		FromStatus:    string(e.FromStatus),
		ToStatus:      string(e.ToStatus),
		FromProjectID: e.FromProjectID,
		ToProjectID:   e.ToProjectID,
		OccurredAt:    e.OccurredAt.UTC(),
		RecordedAt:    time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Processing("insert task event", err)
	}
	return nil
}

// FindByTask returns the task's events oldest first.
func (r *TaskEventRepository) FindByTask(ctx context.Context, taskID string) ([]*domain.TaskEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"task_id": taskID},
		options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, domain.Processing("find task events", err)
	}
	var docs []taskEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Processing("decode task events", err)
	}

	out := make([]*domain.TaskEvent, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.TaskEvent{
			ID:            d.ID.Hex(),
			TaskID:        d.TaskID,
			ProjectID:     d.ProjectID,
			ActorID:       d.ActorID,
			Type:          domain.TaskEventType(d.Type),
			FromStatus:    domain.TaskStatus(d.FromStatus),
			ToStatus:      domain.TaskStatus(d.ToStatus),
			FromProjectID: d.FromProjectID,
			ToProjectID:   d.ToProjectID,
			OccurredAt:    d.OccurredAt.UTC(),
		})
	}
	return out, nil
}

func (r *TaskEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	return err
}

var _ ports.TaskEventRepository = (*TaskEventRepository)(nil)
