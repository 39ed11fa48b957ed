package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stanhub/blog/internal/model"
)

func (g *GormStore) CreateArticle(ctx context.Context, article *model.Article) error {
	if err := g.encodeArticle(article); err != nil {
		return err
	}
	return g.db.WithContext(ctx).Create(article).Error
}

func (g *GormStore) GetArticle(ctx context.Context, contentID string) (*model.Article, error) {
	var article model.Article
	err := g.db.WithContext(ctx).Where("content_id = ?", contentID).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := g.decodeArticle(&article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (g *GormStore) ListArticlesFromIDs(ctx context.Context, contentIDs []string) ([]*model.Article, error) {
	var articles []*model.Article
	err := g.db.WithContext(ctx).Where("content_id IN ?", contentIDs).Find(&articles).Error
	if err != nil {
		return nil, err
	}
	for _, article := range articles {
		if err := g.decodeArticle(article); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

func (g *GormStore) SaveArticle(ctx context.Context, article *model.Article) error {
	if err := g.encodeArticle(article); err != nil {
		return err
	}
	return g.db.WithContext(ctx).Save(article).Error
}

func (g *GormStore) encodeArticle(article *model.Article) error {
	if article.Content == "" {
		article.Raw = nil
		return nil
	}
	raw, err := g.codec.Encode([]byte(article.Content))
	if err != nil {
		return err
	}
	article.Raw = raw
	return nil
}

func (g *GormStore) decodeArticle(article *model.Article) error {
	if len(article.Raw) == 0 {
		article.Content = ""
		return nil
	}
	data, err := g.codec.Decode(article.Raw)
	if err != nil {
		return err
	}
	article.Content = string(data)
	return nil
}

func (g *GormStore) DeleteArticle(ctx context.Context, contentID string) error {
	return g.db.WithContext(ctx).Where("content_id = ?", contentID).Delete(&model.Article{}).Error
}

func (g *GormStore) CreatePlan(ctx context.Context, plan *model.Plan) error {
	return g.db.WithContext(ctx).Create(plan).Error
}

func (g *GormStore) GetPlan(ctx context.Context, contentID string) (*model.Plan, error) {
	var plan model.Plan
	err := g.db.WithContext(ctx).Where("content_id = ?", contentID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (g *GormStore) ListPlansFromIDs(ctx context.Context, contentIDs []string) ([]*model.Plan, error) {
	var plans []*model.Plan
	err := g.db.WithContext(ctx).Where("content_id IN ?", contentIDs).Find(&plans).Error
	return plans, err
}

func (g *GormStore) SavePlan(ctx context.Context, plan *model.Plan) error {
	return g.db.WithContext(ctx).Save(plan).Error
}

func (g *GormStore) DeletePlan(ctx context.Context, contentID string) error {
	return g.db.WithContext(ctx).Where("content_id = ?", contentID).Delete(&model.Plan{}).Error
}

func (g *GormStore) CreateVocabulary(ctx context.Context, voc *model.Vocabulary) error {
	return g.db.WithContext(ctx).Create(voc).Error
}

func (g *GormStore) GetVocabulary(ctx context.Context, contentID string) (*model.Vocabulary, error) {
	var voc model.Vocabulary
	err := g.db.WithContext(ctx).Where("content_id = ?", contentID).First(&voc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &voc, nil
}

func (g *GormStore) ListVocabulariesFromIDs(ctx context.Context, contentIDs []string) ([]*model.Vocabulary, error) {
	var vocs []*model.Vocabulary
	err := g.db.WithContext(ctx).Where("content_id IN ?", contentIDs).Find(&vocs).Error
	return vocs, err
}

func (g *GormStore) SaveVocabulary(ctx context.Context, voc *model.Vocabulary) error {
	return g.db.WithContext(ctx).Save(voc).Error
}

func (g *GormStore) DeleteVocabulary(ctx context.Context, contentID string) error {
	return g.db.WithContext(ctx).Where("content_id = ?", contentID).Delete(&model.Vocabulary{}).Error
}

func (g *GormStore) CreateCollection(ctx context.Context, col *model.Collection) error {
	return g.db.WithContext(ctx).Create(col).Error
}

func (g *GormStore) GetCollection(ctx context.Context, contentID string) (*model.Collection, error) {
	var col model.Collection
	err := g.db.WithContext(ctx).Where("content_id = ?", contentID).First(&col).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

func (g *GormStore) ListCollectionsFromIDs(ctx context.Context, contentIDs []string) ([]*model.Collection, error) {
	var cols []*model.Collection
	err := g.db.WithContext(ctx).Where("content_id IN ?", contentIDs).Find(&cols).Error
	return cols, err
}

func (g *GormStore) SaveCollection(ctx context.Context, col *model.Collection) error {
	return g.db.WithContext(ctx).Save(col).Error
}

func (g *GormStore) DeleteCollection(ctx context.Context, contentID string) error {
	return g.db.WithContext(ctx).Where("content_id = ?", contentID).Delete(&model.Collection{}).Error
}

func (g *GormStore) CreateWord(ctx context.Context, word *model.Word) error {
	return g.db.WithContext(ctx).Create(word).Error
}

func (g *GormStore) GetWord(ctx context.Context, id int64) (*model.Word, error) {
	var word model.Word
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (g *GormStore) ListWordsByVocabulary(ctx context.Context, vocabularyID string) ([]*model.Word, error) {
	var words []*model.Word
	err := g.db.WithContext(ctx).Where("vocabulary_id = ?", vocabularyID).Order("id ASC").Find(&words).Error
	return words, err
}

func (g *GormStore) SaveWord(ctx context.Context, word *model.Word) error {
	return g.db.WithContext(ctx).Save(word).Error
}

func (g *GormStore) DeleteWord(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Word{}).Error
}
