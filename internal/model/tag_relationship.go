package model

import "time"

// TagRelationship is one node of a per-collection tag forest. A node whose
// ParentID is nil, or whose parent row is missing, is a root. All nodes
// sharing a CollectionID form a forest; cycles are never created.
type TagRelationship struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	TagID        int64  `gorm:"not null"`
	ParentID     *int64 `gorm:"index"`
	CollectionID string `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (TagRelationship) TableName() string {
	return "tag_relationship"
}
