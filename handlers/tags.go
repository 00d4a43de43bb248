package handlers

import (
	"errors"
	"net/http"

	"github.com/flashdeck/flashdeck-api/middleware"
	"github.com/flashdeck/flashdeck-api/store"
)

type tagCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1"`
	Color string `json:"color" validate:"required,min=1"`
}

type tagUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Color *string `json:"color" validate:"omitempty,min=1"`
}

// GET /api/tags
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	tags, err := h.Store.AllTags(ownerID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list tags")
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve tags")
		return
	}

	h.respondJSON(w, http.StatusOK, tags)
}

// POST /api/tags
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req tagCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	tag, err := h.Store.CreateTag(ownerID, req.Name, req.Color)
	if errors.Is(err, store.ErrDuplicateTagName) {
		h.respondFieldErrors(w, []fieldError{{Field: "name", Message: "name is already in use"}})
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create tag")
		h.respondError(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	h.respondJSON(w, http.StatusCreated, tag)
}

// PUT /api/tags/{id}
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Tag not found")
		return
	}

	var req tagUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	tag, err := h.Store.UpdateTag(id, ownerID, store.TagPatch{Name: req.Name, Color: req.Color})
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Tag not found")
		return
	}
	if errors.Is(err, store.ErrDuplicateTagName) {
		h.respondFieldErrors(w, []fieldError{{Field: "name", Message: "name is already in use"}})
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Uint("id", id).Msg("failed to update tag")
		h.respondError(w, http.StatusInternalServerError, "Failed to update tag")
		return
	}

	h.respondJSON(w, http.StatusOK, tag)
}

// DELETE /api/tags/{id}
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Tag not found")
		return
	}

	tag, err := h.Store.DeleteTag(id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Tag not found")
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Uint("id", id).Msg("failed to delete tag")
		h.respondError(w, http.StatusInternalServerError, "Failed to delete tag")
		return
	}

	h.respondJSON(w, http.StatusOK, tag)
}
