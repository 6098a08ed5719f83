package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Catalog/internal/model"
	"Catalog/internal/repo"
)

// ErrItemNotFound signals a point-lookup miss to the handler layer.
var ErrItemNotFound = errors.New("item not found")

// ErrInvalidInput wraps all create/update validation failures.
var ErrInvalidInput = errors.New("invalid input")

// ItemService holds the catalog business rules on top of the repository.
type ItemService struct {
	repo   repo.ItemRepository
	logger *zap.SugaredLogger
}

func NewItemService(r repo.ItemRepository, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{repo: r, logger: logger}
}

// CreateItemInput carries the typed, already-parsed create parameters.
type CreateItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Photo       string
}

// UpdateItemInput carries partial-update parameters; nil means "leave as is".
type UpdateItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Photo       *string
}

// ListResult is one page of items plus pagination totals.
type ListResult struct {
	Items      []model.Item
	Total      int64
	TotalPages int64
}

// Create validates the input and inserts one item.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*model.Item, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	if in.Photo != "" {
		if err := validatePhotoURL(in.Photo); err != nil {
			return nil, err
		}
	}

	item := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Photo:       in.Photo,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one item or ErrItemNotFound.
func (s *ItemService) Get(ctx context.Context, id uint) (*model.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns one offset page plus the store-wide totals.
// totalPages is ceil(total / pageSize).
func (s *ItemService) List(ctx context.Context, offset, limit int) (*ListResult, error) {
	items, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var totalPages int64
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return &ListResult{Items: items, Total: total, TotalPages: totalPages}, nil
}

// Update overwrites only the supplied fields. A supplied price is re-validated
// with the same rule as on create.
func (s *ItemService) Update(ctx context.Context, id uint, in UpdateItemInput) (*model.Item, error) {
	updates := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
		}
		updates["price"] = *in.Price
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Photo != nil {
		if *in.Photo != "" {
			if err := validatePhotoURL(*in.Photo); err != nil {
				return nil, err
			}
		}
		updates["photo"] = *in.Photo
	}

	item, err := s.repo.Update(ctx, id, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes one item and returns its last known state.
func (s *ItemService) Delete(ctx context.Context, id uint) (*model.Item, error) {
	item, err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Clear deletes every item and returns the number removed.
func (s *ItemService) Clear(ctx context.Context) (int64, error) {
	removed, err := s.repo.ClearAll(ctx)
	if err != nil {
		s.logger.Errorw("Clear: bulk delete failed", "error", err)
		return 0, err
	}
	return removed, nil
}

// validatePhotoURL requires an absolute URL with scheme and host.
func validatePhotoURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: photo must be an absolute URL", ErrInvalidInput)
	}
	return nil
}
