package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/flashdeck/flashdeck-api/store"
)

// Handler holds the injected store behind every route.
type Handler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) respondFieldErrors(w http.ResponseWriter, errs []fieldError) {
	h.respondJSON(w, http.StatusBadRequest, map[string][]fieldError{"errors": errs})
}

// respondValidationError translates validator failures into the per-field
// {errors:[...]} body.
func (h *Handler) respondValidationError(w http.ResponseWriter, err error) {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := make([]fieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		errs = append(errs, fieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	h.respondFieldErrors(w, errs)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses the {id} path segment. A non-numeric id behaves like a
// missing row.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
