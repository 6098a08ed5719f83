package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Catalog/internal/model"
)

// ErrNameTaken reports a create that would violate the unique name index.
var ErrNameTaken = errors.New("item name already exists")

// ItemRepository defines the data-access contract for Item used by the
// service layer. A miss on a point lookup is signalled with
// gorm.ErrRecordNotFound, never with a nil record and nil error.
type ItemRepository interface {
	// Create inserts one item and fills in the assigned ID.
	Create(ctx context.Context, item *model.Item) error

	// GetByID returns the item or gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id uint) (*model.Item, error)

	// List returns items ordered by id ascending, offset/limit paged.
	List(ctx context.Context, offset, limit int) ([]model.Item, error)

	// Count returns the total number of items.
	Count(ctx context.Context) (int64, error)

	// Update overwrites only the supplied columns and returns the fresh row.
	Update(ctx context.Context, id uint, updates map[string]any) (*model.Item, error)

	// Delete removes the row and returns its last known state.
	Delete(ctx context.Context, id uint) (*model.Item, error)

	// SeedBatch bulk-inserts the given items in one statement.
	SeedBatch(ctx context.Context, items []model.Item) error

	// ClearAll deletes every row inside a transaction and reports how many.
	ClearAll(ctx context.Context) (int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository creates the gorm-backed ItemRepository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	// Explicit pre-check so the caller gets a stable error regardless of how
	// the driver reports unique-index violations.
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("name = ?", item.Name).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrNameTaken
	}

	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context, offset, limit int) ([]model.Item, error) {
	items := make([]model.Item, 0)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *itemRepo) Update(ctx context.Context, id uint, updates map[string]any) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	// Re-read so the caller sees exactly what was persisted.
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Delete(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&model.Item{}, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) SeedBatch(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *itemRepo) ClearAll(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Item{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
