package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ContentGeneral{},
		&Article{},
		&Plan{},
		&Vocabulary{},
		&Collection{},
		&ContentModeration{},
		&TagInfo{},
		&ContentTag{},
		&TagRelationship{},
		&User{},
		&Word{},
		&Comment{},
	)
}
