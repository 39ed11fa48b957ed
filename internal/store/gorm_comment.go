package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stanhub/blog/internal/model"
)

func (g *GormStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return g.db.WithContext(ctx).Create(comment).Error
}

func (g *GormStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := g.db.WithContext(ctx).Where("id = ? AND deleted = ?", id, false).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (g *GormStore) ListCommentsByContent(ctx context.Context, contentID string, page, size int) ([]*model.Comment, int64, error) {
	tx := g.db.WithContext(ctx).Model(&model.Comment{}).
		Where("content_id = ? AND deleted = ?", contentID, false)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}

	var comments []*model.Comment
	err := tx.Order("created_at DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (g *GormStore) SaveComment(ctx context.Context, comment *model.Comment) error {
	return g.db.WithContext(ctx).Save(comment).Error
}
