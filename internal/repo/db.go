package repo

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"Catalog/internal/model"
)

// InitDB opens the database and makes sure the items table exists.
// AutoMigrate is idempotent, so this is safe to run on every start.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Item{}); err != nil {
		return nil, err
	}

	return db, nil
}
