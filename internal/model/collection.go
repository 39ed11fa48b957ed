package model

import "time"

// Collection is the facet row for COLLECTION content. Collections have no
// kind-specific fields beyond the id; the row exists so every kind follows
// the same general+facet layout.
type Collection struct {
	ContentID string `gorm:"primaryKey;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Collection) TableName() string {
	return "collection_info"
}
