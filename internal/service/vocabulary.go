package service

import (
	"context"
	"errors"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

// VocabularyUpdate is the partial facet update for vocabularies.
type VocabularyUpdate struct {
	Language *string
}

// VocabularyService aggregates VOCABULARY content. Word entries hanging
// off a vocabulary are managed by WordService.
type VocabularyService = ContentService[*model.Vocabulary, VocabularyUpdate]

func NewVocabularyService(s store.Store, counter cache.Counter) *VocabularyService {
	return &VocabularyService{
		store:   s,
		counter: counter,
		binding: binding[*model.Vocabulary, VocabularyUpdate]{
			kind: model.KindVocabulary,
			limits: generalLimits(FieldLimits{
				"language": 32,
			}),
			createFacet: func(ctx context.Context, tx store.Store, contentID string, facet *model.Vocabulary) error {
				voc := &model.Vocabulary{ContentID: contentID}
				if facet != nil {
					voc.Language = facet.Language
				}
				return tx.CreateVocabulary(ctx, voc)
			},
			getFacet: func(ctx context.Context, s store.Store, contentID string) (*model.Vocabulary, bool, error) {
				voc, err := s.GetVocabulary(ctx, contentID)
				if errors.Is(err, store.ErrNotFound) {
					return nil, false, nil
				}
				if err != nil {
					return nil, false, err
				}
				return voc, true, nil
			},
			listFacets: func(ctx context.Context, s store.Store, contentIDs []string) (map[string]*model.Vocabulary, error) {
				vocs, err := s.ListVocabulariesFromIDs(ctx, contentIDs)
				if err != nil {
					return nil, err
				}
				facets := make(map[string]*model.Vocabulary, len(vocs))
				for _, voc := range vocs {
					facets[voc.ContentID] = voc
				}
				return facets, nil
			},
			saveFacet: func(ctx context.Context, tx store.Store, facet *model.Vocabulary) error {
				return tx.SaveVocabulary(ctx, facet)
			},
			deleteFacet: func(ctx context.Context, tx store.Store, contentID string) error {
				return tx.DeleteVocabulary(ctx, contentID)
			},
			applyUpdate: func(facet *model.Vocabulary, update VocabularyUpdate) {
				if update.Language != nil {
					facet.Language = *update.Language
				}
			},
			facetValues: func(facet *model.Vocabulary) map[string]string {
				if facet == nil {
					return nil
				}
				return map[string]string{"language": facet.Language}
			},
		},
	}
}
