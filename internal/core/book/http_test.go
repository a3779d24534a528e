// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/internal/platform/respond"
	"github.com/taibuivan/bookcatalog/pkg/uuid"
)

func newTestRouter(repo book.Repository) http.Handler {
	service := book.NewService(repo, book.NewMemoryCache(), book.WithClock(clock))

	router := chi.NewRouter()
	router.Mount("/api/v1/books", book.NewHandler(service).Routes())
	return router
}

func postBook(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

const childrenBody = `{
	"title": "Happy Bunny",
	"author": "Jane Doe",
	"isbn": "0000000001",
	"category": "Children",
	"price": 40.00,
	"publishedDate": "2026-06-15T12:00:00Z",
	"coverImageUrl": "http://x.com/img.jpg"
}`

/*
TestHandler_CreateBook_Created returns the profile with a Location header.
*/
func TestHandler_CreateBook_Created(t *testing.T) {
	response := postBook(t, newTestRouter(book.NewMemoryRepository()), childrenBody)

	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	var envelope struct {
		Data book.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	profile := envelope.Data

	assert.True(t, uuid.Valid(profile.ID))
	assert.Equal(t, 7, uuid.Version(profile.ID))
	assert.Equal(t, "/api/v1/books/"+profile.ID, response.Header().Get("Location"))

	assert.True(t, profile.Price.Equal(decimal.NewFromInt(36)))
	assert.Equal(t, "$36.00", profile.FormattedPrice)
	assert.Nil(t, profile.CoverImageURL)
	assert.Equal(t, "Children's Books", profile.CategoryDisplayName)
	assert.Equal(t, 1, profile.StockQuantity)
	assert.Equal(t, book.StatusLastCopy, profile.AvailabilityStatus)
	assert.True(t, profile.PublishedDate.Equal(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)))
}

/*
TestHandler_CreateBook_ValidationFailed lists messages per field.
*/
func TestHandler_CreateBook_ValidationFailed(t *testing.T) {
	body := `{"title":"","author":"Jane Doe","isbn":"123","category":"Technical","price":5,"publishedDate":"2026-01-01T00:00:00Z"}`

	response := postBook(t, newTestRouter(book.NewMemoryRepository()), body)

	require.Equal(t, http.StatusBadRequest, response.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	assert.Equal(t, "One or more validation errors occurred.", envelope.Error)
	assert.Contains(t, envelope.Errors["title"], "Title is required.")
	assert.Equal(t, []string{"Invalid ISBN format."}, envelope.Errors["isbn"])
	assert.Contains(t, envelope.Errors["price"], "Technical books must be at least $20.00.")
	assert.Contains(t, envelope.Errors, "request")
}

/*
TestHandler_CreateBook_UnknownCategory is a field error, not a decode error.
*/
func TestHandler_CreateBook_UnknownCategory(t *testing.T) {
	body := strings.Replace(childrenBody, `"Children"`, `"Poetry"`, 1)

	response := postBook(t, newTestRouter(book.NewMemoryRepository()), body)

	require.Equal(t, http.StatusBadRequest, response.Code)
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Equal(t, []string{"Invalid book category."}, envelope.Errors["category"])
}

/*
TestHandler_CreateBook_MalformedJSON is rejected before the service runs.
*/
func TestHandler_CreateBook_MalformedJSON(t *testing.T) {
	repo := book.NewMemoryRepository()

	response := postBook(t, newTestRouter(repo), `{"title":`)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "Invalid JSON payload")
	assert.Zero(t, repo.Len())
}

/*
TestHandler_CreateBook_StoredISBN answers 409 for an ISBN already in the catalog
and adds nothing.
*/
func TestHandler_CreateBook_StoredISBN(t *testing.T) {
	req := validRequest()
	req.ISBN = "1234567890"
	repo := book.NewMemoryRepository(book.NewBook(req, "existing", fixedNow.AddDate(0, 0, -1)))

	body := strings.Replace(childrenBody, `"0000000001"`, `"1234567890"`, 1)
	response := postBook(t, newTestRouter(repo), body)

	require.Equal(t, http.StatusConflict, response.Code, response.Body.String())
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFLICT", envelope.Code)
	assert.Equal(t, "A book with ISBN '1234567890' already exists.", envelope.Error)
	assert.Equal(t, 1, repo.Len())
}

/*
TestHandler_CreateBook_Conflict maps the pre-write ISBN check to 409.
*/
func TestHandler_CreateBook_Conflict(t *testing.T) {
	req := validRequest()
	req.ISBN = "0000000001"
	existing := book.NewBook(req, "existing", fixedNow.AddDate(0, 0, -1))
	repo := &racingRepository{MemoryRepository: book.NewMemoryRepository(existing)}

	response := postBook(t, newTestRouter(repo), childrenBody)

	require.Equal(t, http.StatusConflict, response.Code)
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFLICT", envelope.Code)
	assert.Equal(t, "A book with ISBN '0000000001' already exists.", envelope.Error)
	assert.Equal(t, 1, repo.Len())
}
