package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmaster/taskboard/internal/database"
	"github.com/taskmaster/taskboard/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, username, password string) (models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// UserService provides registration and authentication over the users
// collection.
type UserService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(db *mongo.Database) *UserService {
	return &UserService{db: db}
}

func (s *UserService) users() *mongo.Collection {
	return s.db.Collection(database.UsersCollection)
}

// NormalizeUsername lowercases and trims a username the way it is stored.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// GetUserByUsername retrieves a single user by their (normalized) username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"username": NormalizeUsername(username)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// CreateUser registers a new user, hashing their password. The username is
// normalized to lowercase. Returns ErrDuplicateUser when the name is taken,
// whether caught by the pre-insert read or by the unique index.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	username = NormalizeUsername(username)

	err := s.users().FindOne(ctx, bson.M{"username": username}).Err()
	if err == nil {
		return models.User{}, ErrDuplicateUser
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if _, err := s.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// AuthenticateUser verifies a user's credentials. Unknown usernames and wrong
// passwords both come back as ErrInvalidCredentials.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
