package service

import (
	"context"
	"errors"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

// CollectionUpdate is the partial facet update for collections. The facet
// table carries no mutable columns, so it is empty.
type CollectionUpdate struct{}

// CollectionService aggregates COLLECTION content. Every loaded view is
// decorated with the collection's tag tree.
type CollectionService = ContentService[*model.Collection, CollectionUpdate]

func NewCollectionService(s store.Store, counter cache.Counter, trees *TagRelationshipService) *CollectionService {
	return &CollectionService{
		store:   s,
		counter: counter,
		binding: binding[*model.Collection, CollectionUpdate]{
			kind:   model.KindCollection,
			limits: generalLimits(nil),
			createFacet: func(ctx context.Context, tx store.Store, contentID string, facet *model.Collection) error {
				return tx.CreateCollection(ctx, &model.Collection{ContentID: contentID})
			},
			getFacet: func(ctx context.Context, s store.Store, contentID string) (*model.Collection, bool, error) {
				col, err := s.GetCollection(ctx, contentID)
				if errors.Is(err, store.ErrNotFound) {
					return nil, false, nil
				}
				if err != nil {
					return nil, false, err
				}
				return col, true, nil
			},
			listFacets: func(ctx context.Context, s store.Store, contentIDs []string) (map[string]*model.Collection, error) {
				cols, err := s.ListCollectionsFromIDs(ctx, contentIDs)
				if err != nil {
					return nil, err
				}
				facets := make(map[string]*model.Collection, len(cols))
				for _, col := range cols {
					facets[col.ContentID] = col
				}
				return facets, nil
			},
			saveFacet: func(ctx context.Context, tx store.Store, facet *model.Collection) error {
				return tx.SaveCollection(ctx, facet)
			},
			deleteFacet: func(ctx context.Context, tx store.Store, contentID string) error {
				return tx.DeleteCollection(ctx, contentID)
			},
			applyUpdate: func(facet *model.Collection, update CollectionUpdate) {},
			facetValues: func(facet *model.Collection) map[string]string {
				return nil
			},
			postLoad: func(ctx context.Context, view *View[*model.Collection]) error {
				tree, err := trees.BuildTree(ctx, view.ID)
				if err != nil {
					return err
				}
				view.TagTree = tree
				return nil
			},
		},
	}
}
