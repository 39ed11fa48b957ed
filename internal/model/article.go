package model

import "time"

// Article is the facet row for ARTICLE content. The body is persisted
// through Raw, encoded by the store's codec; Content carries the plain
// text everywhere else.
type Article struct {
	ContentID string `gorm:"primaryKey;not null"`
	SubTitle  string
	Content   string `gorm:"-"`
	Raw       []byte `gorm:"column:content" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Article) TableName() string {
	return "article_info"
}
