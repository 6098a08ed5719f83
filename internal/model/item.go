package model

import "time"

// Item is the single persisted catalog record, bound to the items table.
type Item struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:100;not null" json:"category"`

	// Photo is an absolute URL: either supplied by the client or built by the
	// server after a multipart upload (ServerURL + /uploads/ + storage key).
	Photo string `gorm:"size:512" json:"photo"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name so the schema matches earlier deployments.
func (Item) TableName() string {
	return "items"
}
