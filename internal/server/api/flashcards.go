package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/lexicam/internal/store"
)

// FlashcardHandler handles HTTP requests for flashcard resources.
type FlashcardHandler struct {
	store *store.Store
}

// NewFlashcardHandler creates a new FlashcardHandler with the given store.
func NewFlashcardHandler(s *store.Store) *FlashcardHandler {
	return &FlashcardHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *FlashcardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/flashcards or /api/flashcards/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/flashcards")
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

type flashcardRequest struct {
	CategoryID    string `json:"categoryId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl"`
	SoundURL      string `json:"soundUrl"`
	Pronunciation string `json:"pronunciation"`
	Difficulty    string `json:"difficulty"`
}

type flashcardResponse struct {
	ID            string `json:"id"`
	CategoryID    string `json:"categoryId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl"`
	SoundURL      string `json:"soundUrl"`
	Pronunciation string `json:"pronunciation"`
	Difficulty    string `json:"difficulty"`
	CreatedAt     string `json:"created_at"`
}

type listFlashcardsResponse struct {
	Flashcards []flashcardResponse `json:"flashcards"`
}

// toFlashcardResponse converts a store.Flashcard to a flashcardResponse.
func toFlashcardResponse(f *store.Flashcard) flashcardResponse {
	return flashcardResponse{
		ID:            f.ID,
		CategoryID:    f.CategoryID,
		Title:         f.Title,
		Description:   f.Description,
		ImageURL:      f.ImageURL,
		SoundURL:      f.SoundURL,
		Pronunciation: f.Pronunciation,
		Difficulty:    string(f.Difficulty),
		CreatedAt:     f.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func validDifficulty(d store.Difficulty) bool {
	switch d {
	case store.DifficultyEasy, store.DifficultyMedium, store.DifficultyHard:
		return true
	}
	return false
}

// list handles GET /api/flashcards and returns all flashcards.
func (h *FlashcardHandler) list(w http.ResponseWriter, r *http.Request) {
	cards, err := h.store.Flashcards().List()
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

// get handles GET /api/flashcards/{id} and returns a single flashcard.
func (h *FlashcardHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	card, err := h.store.Flashcards().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Flashcard not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get flashcard")
		return
	}

	writeJSON(w, http.StatusOK, toFlashcardResponse(card))
}

// create handles POST /api/flashcards and creates a new flashcard.
func (h *FlashcardHandler) create(w http.ResponseWriter, r *http.Request) {
	var req flashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "Category is required")
		return
	}

	if _, err := h.store.Categories().GetByID(req.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get category")
		return
	}

	difficulty := store.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = store.DifficultyEasy
	}
	if !validDifficulty(difficulty) {
		writeError(w, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	card := &store.Flashcard{
		ID:            uuid.New().String(),
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		SoundURL:      req.SoundURL,
		Pronunciation: req.Pronunciation,
		Difficulty:    difficulty,
	}

	if err := h.store.Flashcards().Create(card); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create flashcard")
		return
	}

	writeJSON(w, http.StatusCreated, toFlashcardResponse(card))
}

// update handles PUT /api/flashcards/{id} and updates an existing flashcard.
func (h *FlashcardHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	card, err := h.store.Flashcards().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Flashcard not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get flashcard")
		return
	}

	var req flashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CategoryID != "" {
		card.CategoryID = req.CategoryID
	}
	if req.Title != "" {
		card.Title = req.Title
	}
	if req.Description != "" {
		card.Description = req.Description
	}
	if req.ImageURL != "" {
		card.ImageURL = req.ImageURL
	}
	if req.SoundURL != "" {
		card.SoundURL = req.SoundURL
	}
	if req.Pronunciation != "" {
		card.Pronunciation = req.Pronunciation
	}
	if req.Difficulty != "" {
		difficulty := store.Difficulty(req.Difficulty)
		if !validDifficulty(difficulty) {
			writeError(w, http.StatusBadRequest, "Invalid difficulty")
			return
		}
		card.Difficulty = difficulty
	}

	if err := h.store.Flashcards().Update(card); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update flashcard")
		return
	}

	writeJSON(w, http.StatusOK, toFlashcardResponse(card))
}

// delete handles DELETE /api/flashcards/{id} and removes a flashcard.
func (h *FlashcardHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Flashcards().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Flashcard not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete flashcard")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
