package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"Catalog/internal/config"
	"Catalog/internal/handlers"
	"Catalog/internal/model"
	"Catalog/internal/repo"
	"Catalog/internal/service"
	"Catalog/internal/upload"
)

// Light repository mock
type hMockItemRepo struct{ mock.Mock }

func (m *hMockItemRepo) Create(ctx context.Context, item *model.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *hMockItemRepo) GetByID(ctx context.Context, id uint) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockItemRepo) List(ctx context.Context, offset, limit int) ([]model.Item, error) {
	args := m.Called(ctx, offset, limit)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockItemRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *hMockItemRepo) Update(ctx context.Context, id uint, updates map[string]any) (*model.Item, error) {
	args := m.Called(ctx, id, updates)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockItemRepo) Delete(ctx context.Context, id uint) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockItemRepo) SeedBatch(ctx context.Context, items []model.Item) error {
	return m.Called(ctx, items).Error(0)
}
func (m *hMockItemRepo) ClearAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.ItemRepository = (*hMockItemRepo)(nil)

// newItemTestRouter builds the real router over a mocked repository and a
// temp upload directory.
func newItemTestRouter(t *testing.T) (http.Handler, *config.Config, *hMockItemRepo) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		BaseURL:         "localhost:8080",
		ServerURL:       "http://localhost:8080",
		UploadDir:       dir,
		UploadMaxSizeMB: 1,
	}
	logger := zap.NewNop().Sugar()

	ir := &hMockItemRepo{}
	itemSvc := service.NewItemService(ir, logger)

	store, err := upload.NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	h := handlers.NewHandler(itemSvc, store, logger, cfg)
	return h.Router, cfg, ir
}

// multipartBody builds a multipart form with the given fields and an optional
// photo file.
func multipartBody(t *testing.T, fields map[string]string, photoName string, photoContent []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing field %q: %v", k, err)
		}
	}
	if photoName != "" {
		fw, err := mw.CreateFormFile("photo", photoName)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := fw.Write(photoContent); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
