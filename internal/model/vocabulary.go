package model

import "time"

// Vocabulary is the facet row for VOCABULARY content.
type Vocabulary struct {
	ContentID string `gorm:"primaryKey;not null"`
	Language  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vocabulary) TableName() string {
	return "vocabulary_info"
}
