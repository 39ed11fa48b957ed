package model

import (
	"time"
)

// ContentKind discriminates which facet table backs a content id.
type ContentKind string

const (
	KindArticle    ContentKind = "ARTICLE"
	KindPlan       ContentKind = "PLAN"
	KindVocabulary ContentKind = "VOCABULARY"
	KindCollection ContentKind = "COLLECTION"
)

// Topic is the editorial topic of a content item.
type Topic string

const (
	TopicTechnical Topic = "TECHNICAL"
	TopicReading   Topic = "READING"
	TopicLanguage  Topic = "LANGUAGE"
	TopicLife      Topic = "LIFE"
	TopicOthers    Topic = "OTHERS"
)

// ContentGeneral holds the fields shared by every content kind.
// Exactly one row exists per content id; facet, moderation and tag link
// rows are keyed by the same id.
type ContentGeneral struct {
	ID          string `gorm:"primaryKey;not null"`
	Title       string `gorm:"not null"`
	Description string
	CoverImgURL string
	// PublicToAll controls whether the content can be viewed by others.
	PublicToAll bool `gorm:"not null;default:false"`
	// ContentProtected controls whether viewing requires login.
	ContentProtected bool `gorm:"not null;default:false"`
	// PublishTime is stamped once, on the first PRIVATE -> PUBLIC transition.
	PublishTime *time.Time
	ViewCount   int64       `gorm:"not null;default:0"`
	LikeCount   int64       `gorm:"not null;default:0"`
	OwnerID     int64       `gorm:"not null;index"`
	Kind        ContentKind `gorm:"not null;index"`
	Topic       Topic
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	UpdatedBy   string
}

func (ContentGeneral) TableName() string {
	return "content_general_info"
}
