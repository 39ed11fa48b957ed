package model

import "time"

// Plan is the facet row for PLAN content.
type Plan struct {
	ContentID       string `gorm:"primaryKey;not null"`
	TargetStartTime *time.Time
	TargetEndTime   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Plan) TableName() string {
	return "plan_info"
}
