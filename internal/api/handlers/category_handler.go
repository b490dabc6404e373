package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/taskmaster/taskboard/internal/models"
	"github.com/taskmaster/taskboard/internal/render"
	"github.com/taskmaster/taskboard/internal/services"
	"github.com/taskmaster/taskboard/internal/session"
)

// CategoryHandler handles the category list and CRUD pages.
type CategoryHandler struct {
	categories services.CategoryServiceProvider
	render     *render.Renderer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories services.CategoryServiceProvider, renderer *render.Renderer) *CategoryHandler {
	return &CategoryHandler{categories: categories, render: renderer}
}

func categoryFromForm(r *http.Request) models.Category {
	return models.Category{CategoryName: r.FormValue("category_name")}
}

// List renders every category, sorted by name.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve categories")
		h.render.Render(w, r, "categories.html", nil, "Something went wrong, please try again")
		return
	}
	h.render.Render(w, r, "categories.html", categories)
}

// AddForm shows the new-category form.
func (h *CategoryHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "add_category.html", nil)
}

// Add creates a category and redirects to the task list rather than the
// category list.
func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	if _, err := h.categories.CreateCategory(r.Context(), categoryFromForm(r)); err != nil {
		log.Error().Err(err).Msg("Failed to create category")
		session.SetFlash(w, "Something went wrong, please try again")
		http.Redirect(w, r, "/add_category", http.StatusSeeOther)
		return
	}

	session.SetFlash(w, "Category successfully created")
	http.Redirect(w, r, "/get_tasks", http.StatusSeeOther)
}

// EditForm shows the edit form prefilled from the stored category.
func (h *CategoryHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "category_id")
	category, err := h.categories.GetCategoryByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Error().Err(err).Str("category_id", id).Msg("Failed to get category")
		}
		session.SetFlash(w, "Category not found")
		http.Redirect(w, r, "/get_categories", http.StatusFound)
		return
	}

	h.render.Render(w, r, "edit_category.html", category)
}

// Edit replaces the whole category document.
func (h *CategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "category_id")
	if err := h.categories.ReplaceCategory(r.Context(), id, categoryFromForm(r)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			session.SetFlash(w, "Category not found")
		} else {
			log.Error().Err(err).Str("category_id", id).Msg("Failed to update category")
			session.SetFlash(w, "Something went wrong, please try again")
		}
		http.Redirect(w, r, "/get_categories", http.StatusSeeOther)
		return
	}

	session.SetFlash(w, "Category successfully updated")
	http.Redirect(w, r, "/get_categories", http.StatusSeeOther)
}

// Delete removes a category unconditionally. Tasks referencing it keep their
// denormalized category name; deleting an unknown ID still reports success.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "category_id")
	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		log.Error().Err(err).Str("category_id", id).Msg("Failed to delete category")
		session.SetFlash(w, "Something went wrong, please try again")
		http.Redirect(w, r, "/get_categories", http.StatusFound)
		return
	}

	session.SetFlash(w, "Category successfully removed")
	http.Redirect(w, r, "/get_categories", http.StatusFound)
}
