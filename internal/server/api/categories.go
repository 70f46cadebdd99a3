// Package api provides HTTP API handlers for the Lexicam word-learning service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/lexicam/internal/store"
)

// CategoryHandler handles HTTP requests for category resources.
type CategoryHandler struct {
	store *store.Store
}

// NewCategoryHandler creates a new CategoryHandler with the given store.
func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/categories, /api/categories/{id} or
	// /api/categories/{id}/flashcards
	path := strings.TrimPrefix(r.URL.Path, "/api/categories")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/flashcards"); ok {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.listFlashcards(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	AgeGroup    string `json:"ageGroup"`
	ModelURL    string `json:"modelUrl"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	AgeGroup    string `json:"ageGroup"`
	ModelURL    string `json:"modelUrl"`
	CreatedAt   string `json:"created_at"`
}

type listCategoriesResponse struct {
	Categories []categoryResponse `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toCategoryResponse converts a store.Category to a categoryResponse.
func toCategoryResponse(c *store.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		AgeGroup:    c.AgeGroup,
		ModelURL:    c.ModelURL,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/categories and returns all categories.
func (h *CategoryHandler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.Categories().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	response := listCategoriesResponse{
		Categories: make([]categoryResponse, 0, len(categories)),
	}

	for _, c := range categories {
		response.Categories = append(response.Categories, toCategoryResponse(c))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/categories/{id} and returns a single category.
func (h *CategoryHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	category, err := h.store.Categories().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get category")
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// listFlashcards handles GET /api/categories/{id}/flashcards.
func (h *CategoryHandler) listFlashcards(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Categories().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get category")
		return
	}

	cards, err := h.store.Flashcards().ListByCategory(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list flashcards")
		return
	}

	response := listFlashcardsResponse{
		Flashcards: make([]flashcardResponse, 0, len(cards)),
	}
	for _, f := range cards {
		response.Flashcards = append(response.Flashcards, toFlashcardResponse(f))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/categories and creates a new category.
func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	category := &store.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		AgeGroup:    req.AgeGroup,
		ModelURL:    req.ModelURL,
	}

	if err := h.store.Categories().Create(category); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// update handles PUT /api/categories/{id} and updates an existing category.
func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	category, err := h.store.Categories().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get category")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}
	if req.AgeGroup != "" {
		category.AgeGroup = req.AgeGroup
	}
	if req.ModelURL != "" {
		category.ModelURL = req.ModelURL
	}

	if err := h.store.Categories().Update(category); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// delete handles DELETE /api/categories/{id} and removes a category.
func (h *CategoryHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Categories().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
