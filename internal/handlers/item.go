package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Catalog/internal/config"
	"Catalog/internal/model"
	"Catalog/internal/repo"
	"Catalog/internal/service"
	"Catalog/internal/upload"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100

	legacyDefaultLimit = 100
)

// ItemHandler serves the catalog CRUD, seed/clear and photo upload endpoints.
type ItemHandler struct {
	ItemService *service.ItemService
	Store       *upload.FileStore
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewItemHandler(itemService *service.ItemService, store *upload.FileStore, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Store: store, Logger: logger, Config: cfg}
}

// listResponse is the paginated envelope. Next/Prev are null when the
// corresponding page does not exist.
type listResponse struct {
	Items      []model.Item `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
	Next       *string      `json:"next"`
	Prev       *string      `json:"prev"`
}

// Create handles POST /items/. Fields arrive as form values (urlencoded or
// multipart); an attached photo file is stored and its public URL persisted.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.parseItemForm(w, r) {
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid price")
		return
	}

	photo := r.FormValue("photo")
	if stored, hasFile, err := h.savePhoto(r); err != nil {
		h.Logger.Errorw("Create: photo upload failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	} else if hasFile {
		photo = stored
	}

	in := service.CreateItemInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
		Photo:       photo,
	}

	item, err := h.ItemService.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNameTaken):
			respondError(w, http.StatusConflict, err.Error())
		default:
			h.Logger.Errorw("Create: service error", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Get handles GET /items/{itemID}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.ItemService.Get(r.Context(), id)
	if errors.Is(err, service.ErrItemNotFound) {
		respondNotFound(w)
		return
	}
	if err != nil {
		h.Logger.Errorw("Get: service error", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// List handles GET /items/. With page/page_size it returns the paginated
// envelope; with the legacy skip/limit parameters it returns a bare array.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Has("skip") || q.Has("limit") {
		skip := parsePositiveInt(q.Get("skip"), 0)
		limit := parsePositiveInt(q.Get("limit"), legacyDefaultLimit)

		res, err := h.ItemService.List(r.Context(), skip, limit)
		if err != nil {
			h.Logger.Errorw("List: service error", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, http.StatusOK, res.Items)
		return
	}

	page := parsePositiveInt(q.Get("page"), defaultPage)
	if page < 1 {
		page = defaultPage
	}
	pageSize := parsePositiveInt(q.Get("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	res, err := h.ItemService.List(r.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		h.Logger.Errorw("List: service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := listResponse{
		Items:      res.Items,
		Total:      res.Total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: res.TotalPages,
	}
	if int64(page)*int64(pageSize) < res.Total {
		resp.Next = h.pageLink(r, page+1, pageSize)
	}
	if page > 1 {
		resp.Prev = h.pageLink(r, page-1, pageSize)
	}

	respondJSON(w, http.StatusOK, resp)
}

// Update handles PUT /items/{itemID}. Only supplied fields are changed; an
// attached photo file replaces the stored photo URL.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	if !h.parseItemForm(w, r) {
		return
	}

	var in service.UpdateItemInput
	if r.Form.Has("name") {
		v := r.FormValue("name")
		in.Name = &v
	}
	if r.Form.Has("description") {
		v := r.FormValue("description")
		in.Description = &v
	}
	if r.Form.Has("price") {
		price, err := strconv.ParseFloat(r.FormValue("price"), 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid price")
			return
		}
		in.Price = &price
	}
	if r.Form.Has("category") {
		v := r.FormValue("category")
		in.Category = &v
	}
	if r.Form.Has("photo") {
		v := r.FormValue("photo")
		in.Photo = &v
	}
	if stored, hasFile, err := h.savePhoto(r); err != nil {
		h.Logger.Errorw("Update: photo upload failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	} else if hasFile {
		in.Photo = &stored
	}

	item, err := h.ItemService.Update(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			respondNotFound(w)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Errorw("Update: service error", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /items/{itemID} and returns the removed record.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.ItemService.Delete(r.Context(), id)
	if errors.Is(err, service.ErrItemNotFound) {
		respondNotFound(w)
		return
	}
	if err != nil {
		h.Logger.Errorw("Delete: service error", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Seed handles POST /seed/.
func (h *ItemHandler) Seed(w http.ResponseWriter, r *http.Request) {
	count := parsePositiveInt(r.URL.Query().Get("count"), service.DefaultSeedCount)

	inserted, err := h.ItemService.Seed(r.Context(), count)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Seeded " + strconv.Itoa(inserted) + " items successfully!",
		"count":   inserted,
	})
}

// Clear handles POST /clear/. Failures come back as a 200 with an error
// payload; the repository has already rolled the delete back.
func (h *ItemHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ItemService.Clear(r.Context()); err != nil {
		respondJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "All data cleared successfully!"})
}

// parseItemForm parses an urlencoded or multipart body, bounded by the
// configured upload size. Writes the error response itself on failure.
func (h *ItemHandler) parseItemForm(w http.ResponseWriter, r *http.Request) bool {
	maxBody := int64(h.Config.UploadMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(int64(h.Config.UploadMaxSizeMB) * 1024 * 1024); err != nil {
			h.Logger.Warnw("invalid multipart form", "error", err)
			respondError(w, http.StatusBadRequest, "invalid multipart form")
			return false
		}
		return true
	}
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("invalid form", "error", err)
		respondError(w, http.StatusBadRequest, "invalid form")
		return false
	}
	return true
}

// savePhoto stores an attached multipart "photo" file, if any, and returns
// its public URL.
func (h *ItemHandler) savePhoto(r *http.Request) (string, bool, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		// No file attached (or not a multipart request).
		return "", false, nil
	}
	defer file.Close()

	key, err := h.Store.Save(header.Filename, file)
	if err != nil {
		return "", true, err
	}
	return h.Config.ServerURL + "/uploads/" + key, true, nil
}

// pageLink rebuilds the current request URL with page and page_size
// overridden.
func (h *ItemHandler) pageLink(r *http.Request, page, pageSize int) *string {
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	link := h.Config.ServerURL + u.String()
	return &link
}

// itemID parses the {itemID} path parameter.
func itemID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "itemID"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return uint(id), true
}

// parsePositiveInt parses s, falling back to def on absence or garbage.
func parsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
