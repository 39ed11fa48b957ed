package tester

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stanhub/blog/internal/model"
)

var (
	db     *gorm.DB
	dbPath string
)

// Setup creates a fresh sqlite database with the full schema. Call it once
// from TestMain. Each test process gets its own database file, so test
// packages can run in parallel.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	dir, err := os.MkdirTemp("", "blog-test-")
	if err != nil {
		panic(err)
	}
	dbPath = filepath.Join(dir, "blog.db")

	db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

// CleanTables empties all rows between tests while keeping the schema.
func CleanTables() {
	tables := []string{
		"comment_info",
		"word_info",
		"tag_relationship",
		"content_tag",
		"tag_info",
		"content_moderation",
		"collection_info",
		"vocabulary_info",
		"plan_info",
		"article_info",
		"content_general_info",
		"user_info",
	}
	for _, table := range tables {
		db.Exec("DELETE FROM " + table)
	}
}

func RemoveDBFile() {
	if dbPath == "" {
		return
	}
	err := os.RemoveAll(filepath.Dir(dbPath))
	if err != nil {
		panic(err)
	}
}
