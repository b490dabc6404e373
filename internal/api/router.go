package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskmaster/taskboard/internal/api/handlers"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(auth *handlers.AuthHandler, tasks *handlers.TaskHandler, categories *handlers.CategoryHandler) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Task list and search
	r.Get("/", tasks.List)
	r.Get("/get_tasks", tasks.List)
	r.Get("/search", tasks.Search)
	r.Post("/search", tasks.Search)

	// Authentication
	r.Get("/register", auth.RegisterForm)
	r.Post("/register", auth.Register)
	r.Get("/login", auth.LoginForm)
	r.Post("/login", auth.Login)
	r.Get("/logout", auth.Logout)
	r.Get("/profile/{username}", auth.Profile)
	r.Post("/profile/{username}", auth.Profile)

	// Tasks
	r.Get("/add_task", tasks.AddForm)
	r.Post("/add_task", tasks.Add)
	r.Get("/edit_task/{task_id}", tasks.EditForm)
	r.Post("/edit_task/{task_id}", tasks.Edit)
	r.Get("/delete_task/{task_id}", tasks.Delete)

	// Categories
	r.Get("/get_categories", categories.List)
	r.Get("/add_category", categories.AddForm)
	r.Post("/add_category", categories.Add)
	r.Get("/edit_category/{category_id}", categories.EditForm)
	r.Post("/edit_category/{category_id}", categories.Edit)
	r.Get("/delete_category/{category_id}", categories.Delete)

	return r
}
