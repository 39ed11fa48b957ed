package model

import "time"

// Comment is a reader comment on a content item. Replies reference their
// parent comment and carry a quoted snippet of it. Deletion is logical:
// deleted rows stay in the table but are excluded from every read.
type Comment struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ContentID string `gorm:"not null;index"`
	Content   string `gorm:"not null"`

	UserID        int64 `gorm:"not null"`
	UserName      string
	UserAvatarURL string

	// ParentID is nil for top-level comments.
	ParentID        *int64
	ReplyToUserName string
	ReplyToContent  string

	LikeCount int64 `gorm:"not null;default:0"`
	IPAddress string
	Deleted   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Comment) TableName() string {
	return "comment_info"
}
