package model

import "time"

// ContentModeration is the one-to-one administrative record of a content
// item. It is created together with the content, with both flags false.
// Reason always describes the latest administrator action.
type ContentModeration struct {
	ContentID   string `gorm:"primaryKey;not null"`
	Banned      bool   `gorm:"not null;default:false"`
	Recommended bool   `gorm:"not null;default:false"`
	Reason      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ContentModeration) TableName() string {
	return "content_moderation"
}
