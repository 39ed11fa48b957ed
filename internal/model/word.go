package model

import "time"

// Word belongs to a VOCABULARY content item.
type Word struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	VocabularyID     string `gorm:"not null;index"`
	Text             string `gorm:"not null"`
	MeaningInChinese string
	MeaningInEnglish string
	PartOfSpeech     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Word) TableName() string {
	return "word_info"
}
