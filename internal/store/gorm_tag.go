package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stanhub/blog/internal/model"
)

func (g *GormStore) CreateTag(ctx context.Context, tag *model.TagInfo) error {
	return g.db.WithContext(ctx).Create(tag).Error
}

func (g *GormStore) GetTagByKeyword(ctx context.Context, keyword string) (*model.TagInfo, error) {
	var tag model.TagInfo
	err := g.db.WithContext(ctx).
		Where("LOWER(keyword) = ?", strings.ToLower(keyword)).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (g *GormStore) ListTagsFromIDs(ctx context.Context, ids []int64) ([]*model.TagInfo, error) {
	var tags []*model.TagInfo
	err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (g *GormStore) SearchTags(ctx context.Context, keyword string, page, size int) ([]*model.TagInfo, int64, error) {
	tx := g.db.WithContext(ctx).Model(&model.TagInfo{})
	if keyword != "" {
		tx = tx.Where("LOWER(keyword) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

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

	var tags []*model.TagInfo
	err := tx.Order("keyword ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&tags).Error
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (g *GormStore) ReplaceContentTags(ctx context.Context, contentID string, tagIDs []int64) error {
	err := g.db.WithContext(ctx).Where("content_id = ?", contentID).Delete(&model.ContentTag{}).Error
	if err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]*model.ContentTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, &model.ContentTag{ContentID: contentID, TagID: tagID})
	}
	return g.db.WithContext(ctx).Create(links).Error
}

func (g *GormStore) ListContentTags(ctx context.Context, contentID string) ([]*model.ContentTag, error) {
	var links []*model.ContentTag
	err := g.db.WithContext(ctx).Where("content_id = ?", contentID).Order("id ASC").Find(&links).Error
	return links, err
}

func (g *GormStore) ListContentTagsForContents(ctx context.Context, contentIDs []string) ([]*model.ContentTag, error) {
	var links []*model.ContentTag
	err := g.db.WithContext(ctx).Where("content_id IN ?", contentIDs).Order("id ASC").Find(&links).Error
	return links, err
}

func (g *GormStore) ListContentIDsWithTags(ctx context.Context, tagIDs []int64) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.ContentTag{}).
		Where("tag_id IN ?", tagIDs).
		Distinct("content_id").
		Pluck("content_id", &ids).Error
	return ids, err
}

func (g *GormStore) CreateTagRelationship(ctx context.Context, rel *model.TagRelationship) error {
	return g.db.WithContext(ctx).Create(rel).Error
}

func (g *GormStore) GetTagRelationship(ctx context.Context, id int64) (*model.TagRelationship, error) {
	var rel model.TagRelationship
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (g *GormStore) ListTagRelationshipsByCollection(ctx context.Context, collectionID string) ([]*model.TagRelationship, error) {
	var rels []*model.TagRelationship
	err := g.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("id ASC").
		Find(&rels).Error
	return rels, err
}

func (g *GormStore) DeleteTagRelationships(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.TagRelationship{}).Error
}
