// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	requestutil "github.com/taibuivan/bookcatalog/internal/platform/request"
	"github.com/taibuivan/bookcatalog/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for book creation.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the book endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// RegisterRoutes mounts the book endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createBook)
}

// createBook handles POST /books.
//
// Responds 201 with the profile and a Location header, 400 with per-field
// messages, or 409 when the ISBN is taken.
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	input := NewCreateRequest()

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.CreateBook(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	location := strings.TrimSuffix(request.URL.Path, "/") + "/" + profile.ID
	writer.Header().Set(constants.HeaderLocation, location)
	respond.Created(writer, profile)
}
