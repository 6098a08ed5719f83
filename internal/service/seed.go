package service

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"Catalog/internal/model"
)

const (
	// DefaultSeedCount matches the original seeder's batch size.
	DefaultSeedCount = 100
	// MaxSeedCount bounds a single seed request.
	MaxSeedCount = 1000
)

// Seed bulk-inserts count generated items and returns how many were inserted.
// count <= 0 falls back to DefaultSeedCount; larger requests are capped.
func (s *ItemService) Seed(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		count = DefaultSeedCount
	}
	if count > MaxSeedCount {
		count = MaxSeedCount
	}

	items := make([]model.Item, 0, count)
	for i := 0; i < count; i++ {
		// Suffix keeps generated names clear of the unique index.
		name := fmt.Sprintf("%s (%s)", gofakeit.ProductName(), uuid.NewString()[:8])
		items = append(items, model.Item{
			Name:        name,
			Description: gofakeit.Sentence(8),
			Price:       gofakeit.Price(1, 1000),
			Category:    gofakeit.ProductCategory(),
			Photo:       gofakeit.ImageURL(640, 480),
		})
	}

	if err := s.repo.SeedBatch(ctx, items); err != nil {
		s.logger.Errorw("Seed: bulk insert failed", "count", count, "error", err)
		return 0, err
	}
	return count, nil
}
