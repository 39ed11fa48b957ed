package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

const tagKeywordLimit = 32

// TagInfoService manages the flat tag catalog shared by all users.
type TagInfoService struct {
	store store.Store
}

func NewTagInfoService(s store.Store) *TagInfoService {
	return &TagInfoService{store: s}
}

// CreateTag adds a keyword to the catalog. Keywords are unique
// case-insensitively; a duplicate fails validation.
func (s *TagInfoService) CreateTag(ctx context.Context, keyword string) (*TagRef, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &ValidationError{Field: "keyword", Message: "must not be empty"}
	}
	if err := (FieldLimits{"keyword": tagKeywordLimit}).Check("keyword", keyword); err != nil {
		return nil, err
	}

	existing, err := s.store.GetTagByKeyword(ctx, keyword)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Field: "keyword", Message: "tag already exists"}
	}

	tag := &model.TagInfo{Keyword: keyword}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return &TagRef{ID: tag.ID, Keyword: tag.Keyword}, nil
}

// SearchTags pages through catalog entries whose keyword contains the
// given substring, ordered by keyword. An empty keyword lists everything.
func (s *TagInfoService) SearchTags(ctx context.Context, keyword string, page, size int) (*Page[TagRef], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}

	tags, total, err := s.store.SearchTags(ctx, strings.TrimSpace(keyword), page, size)
	if err != nil {
		return nil, err
	}

	refs := make([]TagRef, 0, len(tags))
	for _, tag := range tags {
		refs = append(refs, TagRef{ID: tag.ID, Keyword: tag.Keyword})
	}
	return &Page[TagRef]{Items: refs, Total: total, Page: page, Size: size}, nil
}
