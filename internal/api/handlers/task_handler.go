package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/taskmaster/taskboard/internal/models"
	"github.com/taskmaster/taskboard/internal/render"
	"github.com/taskmaster/taskboard/internal/services"
	"github.com/taskmaster/taskboard/internal/session"
)

// TaskHandler handles the task list, search, and task CRUD pages.
type TaskHandler struct {
	tasks      services.TaskServiceProvider
	categories services.CategoryServiceProvider
	sessions   *session.Manager
	render     *render.Renderer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks services.TaskServiceProvider, categories services.CategoryServiceProvider, sessions *session.Manager, renderer *render.Renderer) *TaskHandler {
	return &TaskHandler{tasks: tasks, categories: categories, sessions: sessions, render: renderer}
}

// EditTaskPage is the template context for the edit form.
type EditTaskPage struct {
	Task       models.Task
	Categories []models.Category
}

// urgencyValue normalizes the checkbox field to the literal "on"/"off" the
// store expects. Anything submitted counts as checked.
func urgencyValue(v string) string {
	if v == "" {
		return "off"
	}
	return "on"
}

func taskFromForm(r *http.Request, createdBy string) models.Task {
	return models.Task{
		CategoryName:    r.FormValue("category_name"),
		TaskName:        r.FormValue("task_name"),
		TaskDescription: r.FormValue("task_description"),
		DueDate:         r.FormValue("due_date"),
		IsUrgent:        urgencyValue(r.FormValue("is_urgent")),
		CreatedBy:       createdBy,
	}
}

// List renders every task.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.GetAllTasks(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve tasks")
		h.render.Render(w, r, "tasks.html", nil, "Something went wrong, please try again")
		return
	}
	h.render.Render(w, r, "tasks.html", tasks)
}

// Search renders tasks matching the free-text query. An empty or missing
// query shows all tasks.
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		h.List(w, r)
		return
	}

	tasks, err := h.tasks.SearchTasks(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Failed to search tasks")
		h.render.Render(w, r, "tasks.html", nil, "Something went wrong, please try again")
		return
	}
	h.render.Render(w, r, "tasks.html", tasks)
}

// AddForm shows the new-task form with the category list.
func (h *TaskHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve categories")
		session.SetFlash(w, "Something went wrong, please try again")
		http.Redirect(w, r, "/get_tasks", http.StatusFound)
		return
	}
	h.render.Render(w, r, "add_task.html", categories)
}

// Add creates a task stamped with the session user.
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.Current(r)
	if err != nil {
		session.SetFlash(w, "Please log in")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if _, err := h.tasks.CreateTask(r.Context(), taskFromForm(r, user)); err != nil {
		log.Error().Err(err).Str("created_by", user).Msg("Failed to create task")
		session.SetFlash(w, "Something went wrong, please try again")
		http.Redirect(w, r, "/add_task", http.StatusSeeOther)
		return
	}

	session.SetFlash(w, "Task successfully created")
	http.Redirect(w, r, "/get_tasks", http.StatusSeeOther)
}

// EditForm shows the edit form prefilled from the stored task.
func (h *TaskHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "task_id")
	task, err := h.tasks.GetTaskByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Error().Err(err).Str("task_id", id).Msg("Failed to get task")
		}
		session.SetFlash(w, "Task not found")
		http.Redirect(w, r, "/get_tasks", http.StatusFound)
		return
	}

	categories, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve categories")
		session.SetFlash(w, "Something went wrong, please try again")
		http.Redirect(w, r, "/get_tasks", http.StatusFound)
		return
	}

	h.render.Render(w, r, "edit_task.html", EditTaskPage{Task: task, Categories: categories})
}

// Edit replaces the whole task document. created_by is re-stamped from the
// current session, so editing reassigns ownership to the editor.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.Current(r)
	if err != nil {
		session.SetFlash(w, "Please log in")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := chi.URLParam(r, "task_id")
	if err := h.tasks.ReplaceTask(r.Context(), id, taskFromForm(r, user)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			session.SetFlash(w, "Task not found")
		} else {
			log.Error().Err(err).Str("task_id", id).Msg("Failed to update task")
			session.SetFlash(w, "Something went wrong, please try again")
		}
		http.Redirect(w, r, "/get_tasks", http.StatusSeeOther)
		return
	}

	session.SetFlash(w, "Task successfully updated")
	http.Redirect(w, r, "/get_tasks", http.StatusSeeOther)
}

// Delete removes a task unconditionally. Deleting an unknown ID still reports
// success.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "task_id")
	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("Failed to delete task")
		session.SetFlash(w, "Something went wrong, please try again")
		http.Redirect(w, r, "/get_tasks", http.StatusFound)
		return
	}

	session.SetFlash(w, "Task successfully removed")
	http.Redirect(w, r, "/get_tasks", http.StatusFound)
}
