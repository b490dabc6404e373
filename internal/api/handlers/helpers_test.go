package handlers_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taskmaster/taskboard/internal/api"
	"github.com/taskmaster/taskboard/internal/api/handlers"
	"github.com/taskmaster/taskboard/internal/models"
	"github.com/taskmaster/taskboard/internal/render"
	"github.com/taskmaster/taskboard/internal/services"
	"github.com/taskmaster/taskboard/internal/session"
)

// ---------------------------------------------------------------------------
// Mock services (function-fields pattern)
// ---------------------------------------------------------------------------

type mockUserService struct {
	createFn func(ctx context.Context, username, password string) (models.User, error)
	authFn   func(ctx context.Context, username, password string) (models.User, error)
	getFn    func(ctx context.Context, username string) (models.User, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, password)
	}
	return models.User{Username: username}, nil
}

func (m *mockUserService) AuthenticateUser(ctx context.Context, username, password string) (models.User, error) {
	if m.authFn != nil {
		return m.authFn(ctx, username, password)
	}
	return models.User{Username: username}, nil
}

func (m *mockUserService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, username)
	}
	return models.User{Username: username}, nil
}

type mockTaskService struct {
	getAllFn  func(ctx context.Context) ([]models.Task, error)
	searchFn  func(ctx context.Context, query string) ([]models.Task, error)
	getFn     func(ctx context.Context, id string) (models.Task, error)
	createFn  func(ctx context.Context, task models.Task) (models.Task, error)
	replaceFn func(ctx context.Context, id string, task models.Task) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockTaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockTaskService) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

func (m *mockTaskService) GetTaskByID(ctx context.Context, id string) (models.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Task{}, services.ErrNotFound
}

func (m *mockTaskService) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return task, nil
}

func (m *mockTaskService) ReplaceTask(ctx context.Context, id string, task models.Task) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, id, task)
	}
	return nil
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockCategoryService struct {
	getAllFn  func(ctx context.Context) ([]models.Category, error)
	getFn     func(ctx context.Context, id string) (models.Category, error)
	createFn  func(ctx context.Context, category models.Category) (models.Category, error)
	replaceFn func(ctx context.Context, id string, category models.Category) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockCategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryService) GetCategoryByID(ctx context.Context, id string) (models.Category, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Category{}, services.ErrNotFound
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryService) ReplaceCategory(ctx context.Context, id string, category models.Category) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, id, category)
	}
	return nil
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Test server and request helpers
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func newTestRouter(t *testing.T, users services.UserServiceProvider, tasks services.TaskServiceProvider, categories services.CategoryServiceProvider) (*chi.Mux, *session.Manager) {
	t.Helper()

	sessions := session.NewManager(testSecret)
	renderer, err := render.New(sessions)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	authHandler := handlers.NewAuthHandler(users, sessions, renderer)
	taskHandler := handlers.NewTaskHandler(tasks, categories, sessions, renderer)
	categoryHandler := handlers.NewCategoryHandler(categories, renderer)

	return api.NewRouter(authHandler, taskHandler, categoryHandler), sessions
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// loginAs attaches a valid session cookie for the given user to the request.
func loginAs(t *testing.T, sessions *session.Manager, req *http.Request, username string) {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := sessions.Establish(rec, username); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
}

// flashMessage decodes the one-shot flash cookie set on the response, if any.
func flashMessage(t *testing.T, res *http.Response) string {
	t.Helper()

	for _, c := range res.Cookies() {
		if c.Name == "flash" && c.MaxAge >= 0 && c.Value != "" {
			decoded, err := base64.URLEncoding.DecodeString(c.Value)
			if err != nil {
				t.Fatalf("decode flash cookie: %v", err)
			}
			return string(decoded)
		}
	}
	return ""
}

// sessionCookie returns the session cookie set on the response, or nil.
func sessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == "session" && c.Value != "" && c.MaxAge >= 0 {
			return c
		}
	}
	return nil
}

func assertRedirect(t *testing.T, res *http.Response, location string) {
	t.Helper()

	if res.StatusCode != http.StatusFound && res.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want a redirect", res.StatusCode)
	}
	if got := res.Header.Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}
