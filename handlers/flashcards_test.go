package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/models"
)

func TestFlashcardsRequireAuth(t *testing.T) {
	mux, _ := newTestAPI(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/flashcards"},
		{http.MethodGet, "/api/flashcards/search?q=x"},
		{http.MethodGet, "/api/flashcards/1"},
		{http.MethodPost, "/api/flashcards"},
		{http.MethodPut, "/api/flashcards/1"},
		{http.MethodDelete, "/api/flashcards/1"},
		{http.MethodDelete, "/api/flashcards"},
	}
	for _, p := range paths {
		rec := do(t, mux, p.method, p.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestHealthzSkipsAuth(t *testing.T) {
	mux, _ := newTestAPI(t)
	rec := do(t, mux, http.MethodGet, "/api/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateFlashcard(t *testing.T) {
	mux, st := newTestAPI(t)
	tag, err := st.CreateTag("alice", "Math", "#3b82f6")
	require.NoError(t, err)

	body := fmt.Sprintf(`{"front":"What is $\\pi$?","back":"about 3.14159","tagIds":[%d]}`, tag.ID)
	rec := do(t, mux, http.MethodPost, "/api/flashcards", "alice", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	card := decode[models.Flashcard](t, rec)
	assert.NotZero(t, card.ID)
	assert.Equal(t, "What is $\\pi$?", card.Front)
	require.Len(t, card.Tags, 1)
	assert.Equal(t, "Math", card.Tags[0].Name)

	// round trip through GET by id
	rec = do(t, mux, http.MethodGet, fmt.Sprintf("/api/flashcards/%d", card.ID), "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[models.Flashcard](t, rec)
	assert.Equal(t, card.ID, fetched.ID)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "#3b82f6", fetched.Tags[0].Color)
}

func TestCreateFlashcardValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"empty front", `{"front":"","back":"b"}`, "front"},
		{"missing front", `{"back":"b"}`, "front"},
		{"empty back", `{"front":"f","back":""}`, "back"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, st := newTestAPI(t)
			rec := do(t, mux, http.MethodPost, "/api/flashcards", "alice", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[errorBody](t, rec)
			require.NotEmpty(t, resp.Errors)
			assert.Equal(t, tt.wantField, resp.Errors[0].Field)

			// no row was created
			cards, err := st.AllFlashcards("alice")
			require.NoError(t, err)
			assert.Empty(t, cards)
		})
	}
}

func TestCreateFlashcardForeignTag(t *testing.T) {
	mux, st := newTestAPI(t)
	bobTag, err := st.CreateTag("bob", "Math", "#000000")
	require.NoError(t, err)

	body := fmt.Sprintf(`{"front":"f","back":"b","tagIds":[%d]}`, bobTag.ID)
	rec := do(t, mux, http.MethodPost, "/api/flashcards", "alice", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[errorBody](t, rec)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "tagIds", resp.Errors[0].Field)
}

func TestListFlashcards(t *testing.T) {
	mux, st := newTestAPI(t)
	first, err := st.CreateFlashcard("alice", "first", "b", nil)
	require.NoError(t, err)
	second, err := st.CreateFlashcard("alice", "second", "b", nil)
	require.NoError(t, err)
	_, err = st.CreateFlashcard("bob", "bobs", "b", nil)
	require.NoError(t, err)

	rec := do(t, mux, http.MethodGet, "/api/flashcards", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cards := decode[[]models.Flashcard](t, rec)
	require.Len(t, cards, 2)
	assert.Equal(t, second.ID, cards[0].ID)
	assert.Equal(t, first.ID, cards[1].ID)
}

func TestSearchFlashcardsEndpoint(t *testing.T) {
	mux, st := newTestAPI(t)
	math, err := st.CreateTag("alice", "Math", "#3b82f6")
	require.NoError(t, err)
	physics, err := st.CreateTag("alice", "Physics", "#8b5cf6")
	require.NoError(t, err)
	empty, err := st.CreateTag("alice", "Biology", "#f59e0b")
	require.NoError(t, err)

	pythagoras, err := st.CreateFlashcard("alice", "Pythagorean theorem", "$a^2+b^2=c^2$", []uint{math.ID})
	require.NoError(t, err)
	newton, err := st.CreateFlashcard("alice", "Newton's law", "$F=ma$", []uint{physics.ID})
	require.NoError(t, err)

	t.Run("union across repeated tags params", func(t *testing.T) {
		path := fmt.Sprintf("/api/flashcards/search?tags=%d&tags=%d", math.ID, physics.ID)
		rec := do(t, mux, http.MethodGet, path, "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		cards := decode[[]models.Flashcard](t, rec)
		require.Len(t, cards, 2)
		assert.Equal(t, newton.ID, cards[0].ID)
		assert.Equal(t, pythagoras.ID, cards[1].ID)
	})

	t.Run("comma-separated tags work too", func(t *testing.T) {
		path := fmt.Sprintf("/api/flashcards/search?tags=%d,%d", math.ID, physics.ID)
		rec := do(t, mux, http.MethodGet, path, "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		cards := decode[[]models.Flashcard](t, rec)
		assert.Len(t, cards, 2)
	})

	t.Run("query narrows the tag union", func(t *testing.T) {
		path := fmt.Sprintf("/api/flashcards/search?q=newton&tags=%d,%d", math.ID, physics.ID)
		rec := do(t, mux, http.MethodGet, path, "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		cards := decode[[]models.Flashcard](t, rec)
		require.Len(t, cards, 1)
		assert.Equal(t, newton.ID, cards[0].ID)
	})

	t.Run("unmatched tags return empty array", func(t *testing.T) {
		path := fmt.Sprintf("/api/flashcards/search?q=theorem&tags=%d", empty.ID)
		rec := do(t, mux, http.MethodGet, path, "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("non-numeric tag id is a validation error", func(t *testing.T) {
		rec := do(t, mux, http.MethodGet, "/api/flashcards/search?tags=abc", "alice", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetFlashcardNotFound(t *testing.T) {
	mux, st := newTestAPI(t)
	card, err := st.CreateFlashcard("alice", "f", "b", nil)
	require.NoError(t, err)

	// someone else's card looks missing
	rec := do(t, mux, http.MethodGet, fmt.Sprintf("/api/flashcards/%d", card.ID), "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/flashcards/99999", "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/flashcards/not-a-number", "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateFlashcardEndpoint(t *testing.T) {
	mux, st := newTestAPI(t)
	math, err := st.CreateTag("alice", "Math", "#3b82f6")
	require.NoError(t, err)
	card, err := st.CreateFlashcard("alice", "front", "back", []uint{math.ID})
	require.NoError(t, err)
	path := fmt.Sprintf("/api/flashcards/%d", card.ID)

	t.Run("partial update keeps other fields and tags", func(t *testing.T) {
		rec := do(t, mux, http.MethodPut, path, "alice", `{"front":"new front"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		updated := decode[models.Flashcard](t, rec)
		assert.Equal(t, "new front", updated.Front)
		assert.Equal(t, "back", updated.Back)
		assert.Len(t, updated.Tags, 1)
	})

	t.Run("empty tagIds clears associations", func(t *testing.T) {
		rec := do(t, mux, http.MethodPut, path, "alice", `{"tagIds":[]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		updated := decode[models.Flashcard](t, rec)
		assert.Empty(t, updated.Tags)
	})

	t.Run("empty front is a validation error", func(t *testing.T) {
		rec := do(t, mux, http.MethodPut, path, "alice", `{"front":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("other owners get 404", func(t *testing.T) {
		rec := do(t, mux, http.MethodPut, path, "bob", `{"front":"hijack"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteFlashcardEndpoint(t *testing.T) {
	mux, st := newTestAPI(t)
	card, err := st.CreateFlashcard("alice", "front", "back", nil)
	require.NoError(t, err)
	path := fmt.Sprintf("/api/flashcards/%d", card.ID)

	rec := do(t, mux, http.MethodDelete, path, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodDelete, path, "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decode[models.Flashcard](t, rec)
	assert.Equal(t, card.ID, deleted.ID)
	assert.Equal(t, "front", deleted.Front)

	rec = do(t, mux, http.MethodDelete, path, "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAllFlashcardsEndpoint(t *testing.T) {
	mux, st := newTestAPI(t)
	for i := 0; i < 3; i++ {
		_, err := st.CreateFlashcard("alice", fmt.Sprintf("card %d", i), "b", nil)
		require.NoError(t, err)
	}
	_, err := st.CreateFlashcard("bob", "bobs", "b", nil)
	require.NoError(t, err)

	rec := do(t, mux, http.MethodDelete, "/api/flashcards", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}](t, rec)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "Deleted 3 flashcards successfully", resp.Message)

	rec = do(t, mux, http.MethodGet, "/api/flashcards", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// bob's deck is untouched
	rec = do(t, mux, http.MethodGet, "/api/flashcards", "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cards := decode[[]models.Flashcard](t, rec)
	assert.Len(t, cards, 1)
}
