package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/service"
)

// CategoryHandler serves the category JSON API.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// HandleList returns the user's categories ordered by name.
// GET /api/categories
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	categories, err := h.categories.ListForUser(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": toCategoryDTOs(categories)})
}

// HandleCreate creates a category.
// POST /api/categories
// Request: {"name":"...","description":"...","color":"#RRGGBB"}
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var in service.CategoryInput
	if err := readJSON(w, r, &in); err != nil {
		writeServiceError(w, r, "decode category", err)
		return
	}

	category, err := h.categories.Create(r.Context(), user, in)
	if err != nil {
		writeServiceError(w, r, "create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": toCategoryDTO(category)})
}

// HandleGet returns one category.
// GET /api/categories/{id}
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, "parse category id", err)
		return
	}

	category, err := h.categories.Get(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, r, "get category", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": toCategoryDTO(category)})
}

// HandleUpdate replaces a category's name, description and color.
// PUT /api/categories/{id}
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, "parse category id", err)
		return
	}

	var in service.CategoryInput
	if err := readJSON(w, r, &in); err != nil {
		writeServiceError(w, r, "decode category", err)
		return
	}

	category, err := h.categories.Update(r.Context(), user, id, in)
	if err != nil {
		writeServiceError(w, r, "update category", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": toCategoryDTO(category)})
}

// HandleDelete deletes an empty category.
// DELETE /api/categories/{id}
// Response: 204, or 409 category_not_empty.
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, "parse category id", err)
		return
	}

	if err := h.categories.Delete(r.Context(), user, id); err != nil {
		writeServiceError(w, r, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment. Malformed ids cannot name an entity,
// so they are reported as not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q: %w", r.PathValue("id"), domain.ErrNotFound)
	}
	return id, nil
}

// queryID parses an optional positive id query parameter.
func queryID(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive id", domain.ErrInvalidInput, key)
	}
	return &id, nil
}
