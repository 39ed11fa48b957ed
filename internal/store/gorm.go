package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stanhub/blog/internal/compress"
	"github.com/stanhub/blog/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:    db,
		codec: compress.NewGZip(),
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
	// codec packs article bodies before they hit the content column.
	codec compress.Codec
}

func (g *GormStore) CreateContent(ctx context.Context, content *model.ContentGeneral) error {
	return g.db.WithContext(ctx).Create(content).Error
}

func (g *GormStore) GetContent(ctx context.Context, id string) (*model.ContentGeneral, error) {
	var content model.ContentGeneral
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (g *GormStore) SaveContent(ctx context.Context, content *model.ContentGeneral) error {
	return g.db.WithContext(ctx).Save(content).Error
}

func (g *GormStore) DeleteContent(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContentGeneral{}).Error
}

func (g *GormStore) SearchContent(ctx context.Context, q ContentQuery) ([]*model.ContentGeneral, int64, error) {
	tx := g.db.WithContext(ctx).Model(&model.ContentGeneral{}).
		Where("owner_id = ?", q.OwnerID).
		Where("kind = ?", q.Kind)

	switch strings.ToUpper(q.Status) {
	case "PUBLISHED":
		tx = tx.Where("public_to_all = ?", true)
	case "DRAFT":
		tx = tx.Where("public_to_all = ?", false)
	}
	if q.Topic != "" {
		tx = tx.Where("topic = ?", q.Topic)
	}
	if q.CreateFrom != nil {
		tx = tx.Where("created_at >= ?", *q.CreateFrom)
	}
	if q.CreateTo != nil {
		tx = tx.Where("created_at <= ?", *q.CreateTo)
	}
	if q.UpdateFrom != nil {
		tx = tx.Where("updated_at >= ?", *q.UpdateFrom)
	}
	if q.UpdateTo != nil {
		tx = tx.Where("updated_at <= ?", *q.UpdateTo)
	}
	if q.Keyword != "" {
		pattern := "%" + strings.ToLower(q.Keyword) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if q.ContentIDs != nil {
		tx = tx.Where("id IN ?", q.ContentIDs)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size < 1 {
		size = 1
	}

	var contents []*model.ContentGeneral
	err := tx.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

func (g *GormStore) AddContentCounts(ctx context.Context, id string, viewDelta, likeDelta int64) error {
	if viewDelta == 0 && likeDelta == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Model(&model.ContentGeneral{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"view_count": gorm.Expr("view_count + ?", viewDelta),
			"like_count": gorm.Expr("like_count + ?", likeDelta),
		}).Error
}

func (g *GormStore) CreateModeration(ctx context.Context, mod *model.ContentModeration) error {
	return g.db.WithContext(ctx).Create(mod).Error
}

func (g *GormStore) GetModeration(ctx context.Context, contentID string) (*model.ContentModeration, error) {
	var mod model.ContentModeration
	err := g.db.WithContext(ctx).Where("content_id = ?", contentID).First(&mod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

func (g *GormStore) ListModerationsFromIDs(ctx context.Context, contentIDs []string) ([]*model.ContentModeration, error) {
	var mods []*model.ContentModeration
	err := g.db.WithContext(ctx).Where("content_id IN ?", contentIDs).Find(&mods).Error
	return mods, err
}

func (g *GormStore) SaveModeration(ctx context.Context, mod *model.ContentModeration) error {
	return g.db.WithContext(ctx).Save(mod).Error
}

func (g *GormStore) DeleteModeration(ctx context.Context, contentID string) error {
	return g.db.WithContext(ctx).Where("content_id = ?", contentID).Delete(&model.ContentModeration{}).Error
}

func (g *GormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *GormStore) ListUsersFromIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	var users []*model.User
	err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (g *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	return g.db.WithContext(ctx).Create(user).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx, codec: g.codec})
	})
}
