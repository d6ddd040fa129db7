package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	ProjectID   primitive.ObjectID `bson:"project_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d taskDoc) toDomain() *domain.Task {
	t := &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		ProjectID:   d.ProjectID.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}

// bsonSortKeys maps list sort fields to document keys.
var bsonSortKeys = map[ports.TaskSortField]string{
	ports.SortByCreatedAt: "created_at",
	ports.SortByUpdatedAt: "updated_at",
	ports.SortByDueDate:   "due_date",
	ports.SortByTitle:     "title",
	ports.SortByStatus:    "status",
}

func (r *TaskRepository) Insert(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	project, ok := objectID(t.ProjectID)
	if !ok {
		return nil, domain.Invalid("projectId", "is not a valid id")
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := taskDoc{
		ID:          primitive.NewObjectID(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		ProjectID:   project,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, domain.Processing("insert task", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.Processing("find task", err)
	}
	return doc.toDomain(), nil
}

// FindMany filters in the database. The order is a first pass only: MongoDB
// puts missing due dates first in ascending order, so callers re-sort.
func (r *TaskRepository) FindMany(ctx context.Context, filter ports.TaskFilter, order ports.TaskSort) ([]*domain.Task, error) {
	project, ok := objectID(filter.ProjectID)
	if !ok {
		return []*domain.Task{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{"project_id": project}
	if filter.Status != nil {
		q["status"] = string(*filter.Status)
	}
	if filter.DueFrom != nil || filter.DueTo != nil {
		window := bson.M{}
		if filter.DueFrom != nil {
			window["$gte"] = *filter.DueFrom
		}
		if filter.DueTo != nil {
			window["$lte"] = *filter.DueTo
		}
		q["due_date"] = window
	}

	key, ok := bsonSortKeys[order.Field]
	if !ok {
		key = "created_at"
	}
	dir := 1
	if order.Descending {
		dir = -1
	}

	cur, err := r.coll.Find(ctx, q, options.Find().SetSort(bson.D{{Key: key, Value: dir}, {Key: "_id", Value: dir}}))
	if err != nil {
		return nil, domain.Processing("find tasks", err)
	}
	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Processing("decode tasks", err)
	}

	out := make([]*domain.Task, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpdateByID writes patch in one FindOneAndUpdate, so a move and the other
// field changes land together or not at all.
func (r *TaskRepository) UpdateByID(ctx context.Context, id string, patch ports.TaskPatch) (*domain.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	set := bson.M{"updated_at": patch.UpdatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.DueDate != nil && !patch.ClearDueDate {
		set["due_date"] = *patch.DueDate
	}
	if patch.ProjectID != nil {
		project, ok := objectID(*patch.ProjectID)
		if !ok {
			return nil, domain.Invalid("projectId", "is not a valid id")
		}
		set["project_id"] = project
	}
	update := bson.M{"$set": set}
	if patch.ClearDueDate {
		update["$unset"] = bson.M{"due_date": ""}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.Processing("update task", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, domain.Processing("delete task", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *TaskRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	project, ok := objectID(projectID)
	if !ok {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"project_id": project})
	if err != nil {
		return 0, domain.Processing("count tasks", err)
	}
	return n, nil
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	project, ok := objectID(projectID)
	if !ok {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"project_id": project})
	if err != nil {
		return 0, domain.Processing("delete project tasks", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the listing indexes.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "due_date", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
