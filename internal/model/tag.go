package model

import "time"

// TagInfo is one entry of the flat tag catalog. Keywords are unique,
// compared case-insensitively.
type TagInfo struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Keyword   string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TagInfo) TableName() string {
	return "tag_info"
}

// ContentTag links a content item to a tag catalog entry. Links for a
// content id are replaced wholesale, never patched.
type ContentTag struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ContentID string `gorm:"not null;index"`
	TagID     int64  `gorm:"not null;index"`
}

func (ContentTag) TableName() string {
	return "content_tag"
}
