package service

import (
	"context"
	"errors"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

// ArticleUpdate is the partial facet update for articles.
type ArticleUpdate struct {
	SubTitle *string
	Content  *string
}

// ArticleService aggregates ARTICLE content.
type ArticleService = ContentService[*model.Article, ArticleUpdate]

func NewArticleService(s store.Store, counter cache.Counter) *ArticleService {
	return &ArticleService{
		store:   s,
		counter: counter,
		binding: binding[*model.Article, ArticleUpdate]{
			kind: model.KindArticle,
			limits: generalLimits(FieldLimits{
				"subTitle": 500,
				"content":  100000,
			}),
			createFacet: func(ctx context.Context, tx store.Store, contentID string, facet *model.Article) error {
				article := &model.Article{ContentID: contentID}
				if facet != nil {
					article.SubTitle = facet.SubTitle
					article.Content = facet.Content
				}
				return tx.CreateArticle(ctx, article)
			},
			getFacet: func(ctx context.Context, s store.Store, contentID string) (*model.Article, bool, error) {
				article, err := s.GetArticle(ctx, contentID)
				if errors.Is(err, store.ErrNotFound) {
					return nil, false, nil
				}
				if err != nil {
					return nil, false, err
				}
				return article, true, nil
			},
			listFacets: func(ctx context.Context, s store.Store, contentIDs []string) (map[string]*model.Article, error) {
				articles, err := s.ListArticlesFromIDs(ctx, contentIDs)
				if err != nil {
					return nil, err
				}
				facets := make(map[string]*model.Article, len(articles))
				for _, article := range articles {
					facets[article.ContentID] = article
				}
				return facets, nil
			},
			saveFacet: func(ctx context.Context, tx store.Store, facet *model.Article) error {
				return tx.SaveArticle(ctx, facet)
			},
			deleteFacet: func(ctx context.Context, tx store.Store, contentID string) error {
				return tx.DeleteArticle(ctx, contentID)
			},
			applyUpdate: func(facet *model.Article, update ArticleUpdate) {
				if update.SubTitle != nil {
					facet.SubTitle = *update.SubTitle
				}
				if update.Content != nil {
					facet.Content = *update.Content
				}
			},
			facetValues: func(facet *model.Article) map[string]string {
				if facet == nil {
					return nil
				}
				return map[string]string{
					"subTitle": facet.SubTitle,
					"content":  facet.Content,
				}
			},
		},
	}
}
