package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskmaster/taskboard/internal/database"
	"github.com/taskmaster/taskboard/internal/models"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	ReplaceCategory(ctx context.Context, id string, category models.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryService provides CRUD over the categories collection.
type CategoryService struct {
	db *mongo.Database
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *mongo.Database) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) categories() *mongo.Collection {
	return s.db.Collection(database.CategoriesCollection)
}

// GetAllCategories returns every category sorted by name ascending.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category_name", Value: 1}})
	cursor, err := s.categories().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a single category by ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, ErrNotFound
	}
	var category models.Category
	if err := s.categories().FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

// CreateCategory inserts a new category. Duplicate names are allowed.
func (s *CategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	res, err := s.categories().InsertOne(ctx, category)
	if err != nil {
		return models.Category{}, fmt.Errorf("insert category: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return category, nil
}

// ReplaceCategory overwrites the whole category document. Returns ErrNotFound
// when no document matched.
func (s *CategoryService) ReplaceCategory(ctx context.Context, id string, category models.Category) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	category.ID = oid
	res, err := s.categories().ReplaceOne(ctx, bson.M{"_id": oid}, category)
	if err != nil {
		return fmt.Errorf("replace category: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category by ID. Tasks referencing the category by
// name are left untouched; there is no cascade. Missing and malformed IDs are
// no-ops.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.categories().DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
