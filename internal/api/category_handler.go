package api

import (
	"encoding/json"
	"net/http"

	"github.com/mc-theer/ticketd/internal/domain"
)

// ListCategories возвращает список всех категорий.
// GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.List(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}

	List(w, result, len(result))
}

// CreateCategory создаёт новую категорию.
// POST /api/v1/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Title == "" {
		BadRequest(w, "title is required")
		return
	}

	category := &domain.Category{
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		if HandleRepoError(w, h.logger, err, "") {
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	Created(w, CategoryFromDomain(*category))
}
