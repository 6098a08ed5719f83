package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Catalog/internal/config"
	"Catalog/internal/middleware"
	"Catalog/internal/service"
	"Catalog/internal/upload"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires the router, middleware and all endpoints.
func NewHandler(
	itemService *service.ItemService,
	store *upload.FileStore,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	itemHandler := NewItemHandler(itemService, store, logger, config)

	r.Get("/", Home)

	// Item routes
	r.Post("/items/", itemHandler.Create)
	r.Get("/items/", itemHandler.List)
	r.Get("/items/{itemID}", itemHandler.Get)
	r.Put("/items/{itemID}", itemHandler.Update)
	r.Delete("/items/{itemID}", itemHandler.Delete)

	// Bulk utilities
	r.Post("/seed/", itemHandler.Seed)
	r.Post("/clear/", itemHandler.Clear)

	// Uploaded photos are served straight from the upload directory.
	files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir())))
	r.Get("/uploads/*", files.ServeHTTP)

	return &Handler{Router: r}
}

// Home is the liveness endpoint.
func Home(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
}

// respondJSON writes data as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes an {"error": ...} payload.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondNotFound writes the canonical {"detail": "Item not found"} payload.
func respondNotFound(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Item not found"})
}
