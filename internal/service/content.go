package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

// binding configures the shared content service for one content kind: the
// kind tag, the validation rule table and the facet store accessors. The
// aggregation logic itself is identical across kinds.
type binding[F any, U any] struct {
	kind   model.ContentKind
	limits FieldLimits

	createFacet func(ctx context.Context, tx store.Store, contentID string, facet F) error
	getFacet    func(ctx context.Context, s store.Store, contentID string) (F, bool, error)
	listFacets  func(ctx context.Context, s store.Store, contentIDs []string) (map[string]F, error)
	saveFacet   func(ctx context.Context, tx store.Store, facet F) error
	deleteFacet func(ctx context.Context, tx store.Store, contentID string) error

	// applyUpdate copies the non-nil fields of a partial facet update onto
	// the loaded facet row.
	applyUpdate func(facet F, update U)
	// facetValues exposes the facet's free-text fields for limit checks.
	// Must tolerate a nil facet.
	facetValues func(facet F) map[string]string

	// postLoad runs after a single-item view is composed. Collections use
	// it to attach their tag tree.
	postLoad func(ctx context.Context, view *View[F]) error
}

// ContentService is the single source of truth for creating, reading,
// updating, deleting and searching content of one kind, keeping the
// general, facet, moderation and tag link stores consistent. All
// multi-store mutations run inside one store transaction.
type ContentService[F any, U any] struct {
	store   store.Store
	counter cache.Counter
	binding binding[F, U]
}

// Create persists a new content item owned by callerID and returns the
// composed view. New content starts private with zeroed counters, and a
// default moderation record is created alongside.
func (s *ContentService[F, U]) Create(ctx context.Context, in CreateInput[F], callerID int64) (*View[F], error) {
	if err := s.validateCreate(in); err != nil {
		return nil, err
	}

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}

	general := &model.ContentGeneral{
		ID:               id,
		Title:            in.Title,
		Description:      in.Description,
		CoverImgURL:      in.CoverImgURL,
		PublicToAll:      false,
		ContentProtected: in.ContentProtected,
		ViewCount:        0,
		LikeCount:        0,
		OwnerID:          callerID,
		Kind:             s.binding.kind,
		Topic:            in.Topic,
		CreatedBy:        strconv.FormatInt(callerID, 10),
		UpdatedBy:        strconv.FormatInt(callerID, 10),
	}

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateContent(ctx, general); err != nil {
			return err
		}
		if err := s.binding.createFacet(ctx, tx, id, in.Facet); err != nil {
			return err
		}
		if err := tx.ReplaceContentTags(ctx, id, dedupeTagIDs(in.Tags)); err != nil {
			return err
		}
		return tx.CreateModeration(ctx, &model.ContentModeration{ContentID: id})
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created %s content %s for user %d", s.binding.kind, id, callerID)
	return s.GetByID(ctx, id)
}

// Update applies the non-nil fields of in to the general and facet rows and
// replaces the tag links, then returns the refreshed view. The caller must
// own the content.
func (s *ContentService[F, U]) Update(ctx context.Context, in UpdateInput[U], callerID int64) (*View[F], error) {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		general, err := getOwnedContent(ctx, tx, in.ID, callerID)
		if err != nil {
			return err
		}

		if in.Title != nil {
			general.Title = *in.Title
		}
		if in.Description != nil {
			general.Description = *in.Description
		}
		if in.CoverImgURL != nil {
			general.CoverImgURL = *in.CoverImgURL
		}
		if in.Topic != nil {
			general.Topic = *in.Topic
		}
		if in.ContentProtected != nil {
			general.ContentProtected = *in.ContentProtected
		}
		general.UpdatedBy = strconv.FormatInt(callerID, 10)

		facet, found, err := s.binding.getFacet(ctx, tx, in.ID)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Resource: "content", ID: in.ID}
		}
		s.binding.applyUpdate(facet, in.Facet)

		if err := s.validateGeneral(general); err != nil {
			return err
		}
		if err := s.binding.limits.CheckAll(s.binding.facetValues(facet)); err != nil {
			return err
		}

		if err := tx.SaveContent(ctx, general); err != nil {
			return err
		}
		if err := s.binding.saveFacet(ctx, tx, facet); err != nil {
			return err
		}
		return tx.ReplaceContentTags(ctx, in.ID, dedupeTagIDs(in.Tags))
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, in.ID)
}

// Delete removes the general, facet, tag link and moderation rows of one
// content item. The caller must own the content.
func (s *ContentService[F, U]) Delete(ctx context.Context, id string, callerID int64) error {
	return s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := getOwnedContent(ctx, tx, id, callerID); err != nil {
			return err
		}
		if err := tx.DeleteContent(ctx, id); err != nil {
			return err
		}
		if err := s.binding.deleteFacet(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.ReplaceContentTags(ctx, id, nil); err != nil {
			return err
		}
		return tx.DeleteModeration(ctx, id)
	})
}

// GetByID composes the full view of one content item, without any
// ownership restriction. It returns nil when the id does not resolve.
func (s *ContentService[F, U]) GetByID(ctx context.Context, id string) (*View[F], error) {
	general, err := s.store.GetContent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	facet, _, err := s.binding.getFacet(ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	mod, err := s.store.GetModeration(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	tags, err := s.tagsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.store.GetUser(ctx, general.OwnerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	view := s.buildView(general, facet, mod, tags, owner)
	if s.binding.postLoad != nil {
		if err := s.binding.postLoad(ctx, view); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// GetByIDAndCountView returns the view of a publicly visible, unbanned
// content item and counts the read as one view. The increment goes to the
// fast counter; the returned view already reflects it. Private, banned or
// missing content yields nil.
func (s *ContentService[F, U]) GetByIDAndCountView(ctx context.Context, id string) (*View[F], error) {
	view, err := s.GetByID(ctx, id)
	if err != nil || view == nil {
		return nil, err
	}
	if !view.PublicToAll || view.Banned {
		return nil, nil
	}

	pending, err := s.counter.Incr(ctx, cache.ViewCountKey, id, 1)
	if err != nil {
		return nil, err
	}
	view.ViewCount += pending
	return view, nil
}

// LikeContent counts one like against a publicly visible, unbanned
// content item and returns the view with the like reflected. The
// increment goes to the fast counter, same as view counting. Private,
// banned or missing content yields nil.
func (s *ContentService[F, U]) LikeContent(ctx context.Context, id string) (*View[F], error) {
	view, err := s.GetByID(ctx, id)
	if err != nil || view == nil {
		return nil, err
	}
	if !view.PublicToAll || view.Banned {
		return nil, nil
	}

	pending, err := s.counter.Incr(ctx, cache.LikeCountKey, id, 1)
	if err != nil {
		return nil, err
	}
	view.LikeCount += pending
	return view, nil
}

// Search returns one owner-scoped page of views. Facet, moderation, tag
// and owner data are batch-loaded for the whole page. A tag filter that
// matches no content short-circuits into an empty page.
func (s *ContentService[F, U]) Search(ctx context.Context, callerID int64, page, size int, filter SearchFilter) (*Page[*View[F]], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}

	q := store.ContentQuery{
		OwnerID:    callerID,
		Kind:       s.binding.kind,
		Status:     filter.Status,
		Topic:      filter.Topic,
		CreateFrom: filter.CreateFrom,
		CreateTo:   filter.CreateTo,
		UpdateFrom: filter.UpdateFrom,
		UpdateTo:   filter.UpdateTo,
		Keyword:    filter.Keyword,
		Page:       page,
		Size:       size,
	}

	if len(filter.Tags) > 0 {
		ids, err := s.store.ListContentIDsWithTags(ctx, dedupeTagIDs(filter.Tags))
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return emptyPage[*View[F]](page, size), nil
		}
		q.ContentIDs = ids
	}

	generals, total, err := s.store.SearchContent(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(generals) == 0 {
		result := emptyPage[*View[F]](page, size)
		result.Total = total
		return result, nil
	}

	ids := make([]string, 0, len(generals))
	for _, general := range generals {
		ids = append(ids, general.ID)
	}

	facets, err := s.binding.listFacets(ctx, s.store, ids)
	if err != nil {
		return nil, err
	}

	mods, err := s.store.ListModerationsFromIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	modMap := make(map[string]*model.ContentModeration, len(mods))
	for _, mod := range mods {
		modMap[mod.ContentID] = mod
	}

	tagsMap, err := s.tagsForMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	ownerIDs := mapset.NewSet[int64]()
	for _, general := range generals {
		ownerIDs.Add(general.OwnerID)
	}
	owners, err := s.store.ListUsersFromIDs(ctx, ownerIDs.ToSlice())
	if err != nil {
		return nil, err
	}
	ownerMap := make(map[int64]*model.User, len(owners))
	for _, owner := range owners {
		ownerMap[owner.ID] = owner
	}

	views := make([]*View[F], 0, len(generals))
	for _, general := range generals {
		tags := tagsMap[general.ID]
		if tags == nil {
			tags = []TagRef{}
		}
		views = append(views, s.buildView(general, facets[general.ID], modMap[general.ID], tags, ownerMap[general.OwnerID]))
	}

	return &Page[*View[F]]{Items: views, Total: total, Page: page, Size: size}, nil
}

// UpdateVisibility moves the content between PRIVATE and PUBLIC. Both
// transitions require the opposite current state; repeating the current
// state fails with a StateError. The publish time is stamped on the first
// publication only.
func (s *ContentService[F, U]) UpdateVisibility(ctx context.Context, id string, target Visibility, callerID int64) (*View[F], error) {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		general, err := getOwnedContent(ctx, tx, id, callerID)
		if err != nil {
			return err
		}

		switch target {
		case VisibilityPublic:
			if general.PublicToAll {
				return &StateError{Message: "content has already been released"}
			}
			general.PublicToAll = true
			if general.PublishTime == nil {
				now := time.Now()
				general.PublishTime = &now
			}
		case VisibilityPrivate:
			if !general.PublicToAll {
				return &StateError{Message: "content has already been private"}
			}
			general.PublicToAll = false
		default:
			return &StateError{Message: "unknown visibility target: " + string(target)}
		}

		general.UpdatedBy = strconv.FormatInt(callerID, 10)
		return tx.SaveContent(ctx, general)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("content %s visibility changed to %s", id, target)
	return s.GetByID(ctx, id)
}

func (s *ContentService[F, U]) validateCreate(in CreateInput[F]) error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	general := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"coverImgUrl": in.CoverImgURL,
	}
	if err := s.binding.limits.CheckAll(general); err != nil {
		return err
	}
	return s.binding.limits.CheckAll(s.binding.facetValues(in.Facet))
}

func (s *ContentService[F, U]) validateGeneral(general *model.ContentGeneral) error {
	if general.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	return s.binding.limits.CheckAll(map[string]string{
		"title":       general.Title,
		"description": general.Description,
		"coverImgUrl": general.CoverImgURL,
	})
}

func (s *ContentService[F, U]) buildView(general *model.ContentGeneral, facet F, mod *model.ContentModeration, tags []TagRef, owner *model.User) *View[F] {
	view := &View[F]{
		ID:               general.ID,
		Title:            general.Title,
		Description:      general.Description,
		CoverImgURL:      general.CoverImgURL,
		PublicToAll:      general.PublicToAll,
		ContentProtected: general.ContentProtected,
		PublishTime:      general.PublishTime,
		ViewCount:        general.ViewCount,
		LikeCount:        general.LikeCount,
		OwnerID:          general.OwnerID,
		Kind:             general.Kind,
		Topic:            general.Topic,
		CreatedAt:        general.CreatedAt,
		UpdatedAt:        general.UpdatedAt,
		Tags:             tags,
		Facet:            facet,
	}
	if mod != nil {
		view.Banned = mod.Banned
		view.Recommended = mod.Recommended
		view.Reason = mod.Reason
	}
	if owner != nil {
		view.OwnerName = owner.DisplayName()
		view.AvatarURL = owner.AvatarURL
	}
	return view
}

func (s *ContentService[F, U]) tagsFor(ctx context.Context, contentID string) ([]TagRef, error) {
	links, err := s.store.ListContentTags(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []TagRef{}, nil
	}

	infoMap, err := s.tagInfoMap(ctx, links)
	if err != nil {
		return nil, err
	}

	tags := make([]TagRef, 0, len(links))
	for _, link := range links {
		if info, ok := infoMap[link.TagID]; ok {
			tags = append(tags, TagRef{ID: info.ID, Keyword: info.Keyword})
		}
	}
	return tags, nil
}

func (s *ContentService[F, U]) tagsForMany(ctx context.Context, contentIDs []string) (map[string][]TagRef, error) {
	links, err := s.store.ListContentTagsForContents(ctx, contentIDs)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return map[string][]TagRef{}, nil
	}

	infoMap, err := s.tagInfoMap(ctx, links)
	if err != nil {
		return nil, err
	}

	tagsMap := make(map[string][]TagRef)
	for _, link := range links {
		if info, ok := infoMap[link.TagID]; ok {
			tagsMap[link.ContentID] = append(tagsMap[link.ContentID], TagRef{ID: info.ID, Keyword: info.Keyword})
		}
	}
	return tagsMap, nil
}

func (s *ContentService[F, U]) tagInfoMap(ctx context.Context, links []*model.ContentTag) (map[int64]*model.TagInfo, error) {
	tagIDs := mapset.NewSet[int64]()
	for _, link := range links {
		tagIDs.Add(link.TagID)
	}
	infos, err := s.store.ListTagsFromIDs(ctx, tagIDs.ToSlice())
	if err != nil {
		return nil, err
	}
	infoMap := make(map[int64]*model.TagInfo, len(infos))
	for _, info := range infos {
		infoMap[info.ID] = info
	}
	return infoMap, nil
}

// getOwnedContent loads a general info row and verifies the caller owns
// it. A missing row reports NotFoundError before any ownership check.
func getOwnedContent(ctx context.Context, s store.Store, id string, callerID int64) (*model.ContentGeneral, error) {
	general, err := s.GetContent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "content", ID: id}
	}
	if err != nil {
		return nil, err
	}
	if general.OwnerID != callerID {
		return nil, &OwnershipError{ContentID: id, OwnerID: general.OwnerID, CallerID: callerID}
	}
	return general, nil
}

// dedupeTagIDs drops duplicate tag ids and yields a deterministic insert
// order.
func dedupeTagIDs(tagIDs []int64) []int64 {
	if len(tagIDs) == 0 {
		return nil
	}
	ids := mapset.NewSet(tagIDs...).ToSlice()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
