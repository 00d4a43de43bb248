package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/flashdeck/flashdeck-api/middleware"
	"github.com/flashdeck/flashdeck-api/store"
)

type flashcardCreateRequest struct {
	Front  string `json:"front" validate:"required,min=1"`
	Back   string `json:"back" validate:"required,min=1"`
	TagIDs []uint `json:"tagIds"`
}

type flashcardUpdateRequest struct {
	Front  *string `json:"front" validate:"omitempty,min=1"`
	Back   *string `json:"back" validate:"omitempty,min=1"`
	TagIDs *[]uint `json:"tagIds"`
}

// GET /api/flashcards
func (h *Handler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	cards, err := h.Store.AllFlashcards(ownerID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list flashcards")
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve flashcards")
		return
	}

	h.respondJSON(w, http.StatusOK, cards)
}

// GET /api/flashcards/search?q=&tags=
func (h *Handler) SearchFlashcards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	query := r.URL.Query().Get("q")
	tagIDs, err := parseTagIDs(r.URL.Query()["tags"])
	if err != nil {
		h.respondFieldErrors(w, []fieldError{{Field: "tags", Message: "tags must be numeric ids"}})
		return
	}

	cards, err := h.Store.SearchFlashcards(ownerID, query, tagIDs)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to search flashcards")
		h.respondError(w, http.StatusInternalServerError, "Failed to search flashcards")
		return
	}

	h.respondJSON(w, http.StatusOK, cards)
}

// parseTagIDs accepts repeated ?tags= params, each a single id or a
// comma-separated list.
func parseTagIDs(values []string) ([]uint, error) {
	var ids []uint
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return nil, err
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}

// GET /api/flashcards/{id}
func (h *Handler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	card, err := h.Store.FlashcardByID(id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Uint("id", id).Msg("failed to get flashcard")
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve flashcard")
		return
	}

	h.respondJSON(w, http.StatusOK, card)
}

// POST /api/flashcards
func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req flashcardCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	card, err := h.Store.CreateFlashcard(ownerID, req.Front, req.Back, req.TagIDs)
	if errors.Is(err, store.ErrUnknownTag) {
		h.respondFieldErrors(w, []fieldError{{Field: "tagIds", Message: "tagIds must reference your own tags"}})
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create flashcard")
		h.respondError(w, http.StatusInternalServerError, "Failed to create flashcard")
		return
	}

	h.respondJSON(w, http.StatusCreated, card)
}

// PUT /api/flashcards/{id}
func (h *Handler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	var req flashcardUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	patch := store.FlashcardPatch{Front: req.Front, Back: req.Back}
	replaceTags := req.TagIDs != nil
	var tagIDs []uint
	if replaceTags {
		tagIDs = *req.TagIDs
	}

	card, err := h.Store.UpdateFlashcard(id, ownerID, patch, tagIDs, replaceTags)
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}
	if errors.Is(err, store.ErrUnknownTag) {
		h.respondFieldErrors(w, []fieldError{{Field: "tagIds", Message: "tagIds must reference your own tags"}})
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Uint("id", id).Msg("failed to update flashcard")
		h.respondError(w, http.StatusInternalServerError, "Failed to update flashcard")
		return
	}

	h.respondJSON(w, http.StatusOK, card)
}

// DELETE /api/flashcards/{id}
func (h *Handler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	card, err := h.Store.DeleteFlashcard(id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Uint("id", id).Msg("failed to delete flashcard")
		h.respondError(w, http.StatusInternalServerError, "Failed to delete flashcard")
		return
	}

	h.respondJSON(w, http.StatusOK, card)
}

// DELETE /api/flashcards
func (h *Handler) DeleteAllFlashcards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	count, err := h.Store.DeleteAllFlashcards(ownerID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to delete all flashcards")
		h.respondError(w, http.StatusInternalServerError, "Failed to delete all flashcards")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Deleted %d flashcards successfully", count),
		"count":   count,
	})
}
