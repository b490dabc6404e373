package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskmaster/taskboard/internal/database"
	"github.com/taskmaster/taskboard/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	SearchTasks(ctx context.Context, query string) ([]models.Task, error)
	GetTaskByID(ctx context.Context, id string) (models.Task, error)
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	ReplaceTask(ctx context.Context, id string, task models.Task) error
	DeleteTask(ctx context.Context, id string) error
}

// TaskService provides CRUD and text search over the tasks collection.
type TaskService struct {
	db *mongo.Database
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *mongo.Database) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) tasks() *mongo.Collection {
	return s.db.Collection(database.TasksCollection)
}

// GetAllTasks returns every task in store order.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	cursor, err := s.tasks().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// SearchTasks runs a full-text search over task names and descriptions,
// relying on the text index created at startup.
func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	cursor, err := s.tasks().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// GetTaskByID retrieves a single task. A malformed ID is reported the same
// way as a missing document.
func (s *TaskService) GetTaskByID(ctx context.Context, id string) (models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Task{}, ErrNotFound
	}
	var task models.Task
	if err := s.tasks().FindOne(ctx, bson.M{"_id": oid}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// CreateTask inserts a new task document.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	res, err := s.tasks().InsertOne(ctx, task)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return task, nil
}

// ReplaceTask overwrites the whole task document. This is deliberately a full
// replacement, not a patch: every field takes the new value, including
// created_by. Returns ErrNotFound when no document matched.
func (s *TaskService) ReplaceTask(ctx context.Context, id string, task models.Task) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	task.ID = oid
	res, err := s.tasks().ReplaceOne(ctx, bson.M{"_id": oid}, task)
	if err != nil {
		return fmt.Errorf("replace task: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task by ID. Missing and malformed IDs are no-ops;
// deletion is idempotent.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.tasks().DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
