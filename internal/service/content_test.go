package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
)

func strPtr(s string) *string { return &s }

func TestArticleService_Create(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	golang := seedTag(t, s, "golang")
	backend := seedTag(t, s, "backend")

	client := NewArticleService(s, cache.NewMemoryCounter())

	view, err := client.Create(context.TODO(), CreateInput[*model.Article]{
		Title:       "Understanding generics",
		Description: "a long form writeup",
		Topic:       model.TopicTechnical,
		Tags:        []int64{golang.ID, backend.ID, golang.ID},
		Facet: &model.Article{
			SubTitle: "type parameters in practice",
			Content:  "Generics arrived in go 1.18 ...",
		},
	}, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, view)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Understanding generics", view.Title)
	assert.Equal(t, model.KindArticle, view.Kind)
	assert.Equal(t, owner.ID, view.OwnerID)
	assert.Equal(t, "alice", view.OwnerName)

	// new content starts as a draft with a clean moderation record
	assert.False(t, view.PublicToAll)
	assert.Nil(t, view.PublishTime)
	assert.False(t, view.Banned)
	assert.False(t, view.Recommended)
	assert.Nil(t, view.Reason)
	assert.Equal(t, int64(0), view.ViewCount)

	// duplicate tag ids collapse into one link
	assert.Len(t, view.Tags, 2)

	require.NotNil(t, view.Facet)
	assert.Equal(t, "type parameters in practice", view.Facet.SubTitle)
	assert.Equal(t, "Generics arrived in go 1.18 ...", view.Facet.Content)
}

func TestArticleService_Create_Validation(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	client := NewArticleService(s, cache.NewMemoryCounter())

	_, err := client.Create(context.TODO(), CreateInput[*model.Article]{}, owner.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	long := make([]rune, 201)
	for i := range long {
		long[i] = 'x'
	}
	_, err = client.Create(context.TODO(), CreateInput[*model.Article]{Title: string(long)}, owner.ID)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	// nothing should have been written
	result, err := client.Search(context.TODO(), owner.ID, 1, 10, SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
}

func TestArticleService_Update(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	golang := seedTag(t, s, "golang")
	client := NewArticleService(s, cache.NewMemoryCounter())

	created, err := client.Create(context.TODO(), CreateInput[*model.Article]{
		Title:       "draft title",
		Description: "draft description",
		Topic:       model.TopicTechnical,
		Tags:        []int64{golang.ID},
		Facet:       &model.Article{SubTitle: "sub", Content: "body"},
	}, owner.ID)
	require.NoError(t, err)

	updated, err := client.Update(context.TODO(), UpdateInput[ArticleUpdate]{
		ID:    created.ID,
		Title: strPtr("final title"),
		Facet: ArticleUpdate{Content: strPtr("rewritten body")},
		Tags:  []int64{golang.ID},
	}, owner.ID)
	require.NoError(t, err)

	// touched fields change, the rest stays
	assert.Equal(t, "final title", updated.Title)
	assert.Equal(t, "draft description", updated.Description)
	assert.Equal(t, "sub", updated.Facet.SubTitle)
	assert.Equal(t, "rewritten body", updated.Facet.Content)
	assert.Len(t, updated.Tags, 1)

	// nil tags clears the link set
	cleared, err := client.Update(context.TODO(), UpdateInput[ArticleUpdate]{ID: created.ID}, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
}

func TestArticleService_Update_Errors(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	stranger := seedUser(t, s, "mallory")
	client := NewArticleService(s, cache.NewMemoryCounter())

	created, err := client.Create(context.TODO(), CreateInput[*model.Article]{Title: "mine"}, owner.ID)
	require.NoError(t, err)

	_, err = client.Update(context.TODO(), UpdateInput[ArticleUpdate]{ID: uuid.New().String()}, owner.ID)
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)

	_, err = client.Update(context.TODO(), UpdateInput[ArticleUpdate]{ID: created.ID, Title: strPtr("stolen")}, stranger.ID)
	var oerr *OwnershipError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, owner.ID, oerr.OwnerID)

	// the failed update left nothing behind
	view, err := client.GetByID(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", view.Title)
}

func TestContentService_UpdateVisibility(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	client := NewArticleService(s, cache.NewMemoryCounter())

	created, err := client.Create(context.TODO(), CreateInput[*model.Article]{Title: "to publish"}, owner.ID)
	require.NoError(t, err)

	published, err := client.UpdateVisibility(context.TODO(), created.ID, VisibilityPublic, owner.ID)
	require.NoError(t, err)
	assert.True(t, published.PublicToAll)
	require.NotNil(t, published.PublishTime)
	firstPublish := *published.PublishTime

	// publishing twice is an illegal transition
	_, err = client.UpdateVisibility(context.TODO(), created.ID, VisibilityPublic, owner.ID)
	var serr *StateError
	require.ErrorAs(t, err, &serr)

	again, err := client.GetByID(context.TODO(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, again.PublishTime)
	assert.True(t, firstPublish.Equal(*again.PublishTime))

	// back to private and out again keeps the original publish time
	hidden, err := client.UpdateVisibility(context.TODO(), created.ID, VisibilityPrivate, owner.ID)
	require.NoError(t, err)
	assert.False(t, hidden.PublicToAll)

	_, err = client.UpdateVisibility(context.TODO(), created.ID, VisibilityPrivate, owner.ID)
	require.ErrorAs(t, err, &serr)

	republished, err := client.UpdateVisibility(context.TODO(), created.ID, VisibilityPublic, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, republished.PublishTime)
	assert.True(t, firstPublish.Equal(*republished.PublishTime))
}

func TestContentService_GetByIDAndCountView(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	counter := cache.NewMemoryCounter()
	client := NewArticleService(s, counter)

	created, err := client.Create(context.TODO(), CreateInput[*model.Article]{Title: "popular post"}, owner.ID)
	require.NoError(t, err)

	// drafts are invisible to public reads
	view, err := client.GetByIDAndCountView(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, view)

	_, err = client.UpdateVisibility(context.TODO(), created.ID, VisibilityPublic, owner.ID)
	require.NoError(t, err)

	view, err = client.GetByIDAndCountView(context.TODO(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, int64(1), view.ViewCount)

	view, err = client.GetByIDAndCountView(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.ViewCount)

	// the pending deltas live in the counter, not the row
	deltas, err := counter.Drain(context.TODO(), cache.ViewCountKey)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deltas[created.ID])

	stored, err := client.GetByID(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.ViewCount)

	// banned content disappears from public reads
	mods := NewModerationService(s, nil)
	_, err = mods.Ban(context.TODO(), created.ID, 1)
	require.NoError(t, err)

	view, err = client.GetByIDAndCountView(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, view)

	missing, err := client.GetByIDAndCountView(context.TODO(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentService_LikeContent(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	counter := cache.NewMemoryCounter()
	client := NewArticleService(s, counter)

	created, err := client.Create(context.TODO(), CreateInput[*model.Article]{Title: "well liked"}, owner.ID)
	require.NoError(t, err)

	// drafts cannot be liked
	view, err := client.LikeContent(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, view)

	_, err = client.UpdateVisibility(context.TODO(), created.ID, VisibilityPublic, owner.ID)
	require.NoError(t, err)

	view, err = client.LikeContent(context.TODO(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, int64(1), view.LikeCount)

	view, err = client.LikeContent(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.LikeCount)

	// likes accumulate in the counter until the sink folds them in
	deltas, err := counter.Drain(context.TODO(), cache.LikeCountKey)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deltas[created.ID])

	stored, err := client.GetByID(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.LikeCount)

	mods := NewModerationService(s, nil)
	_, err = mods.Ban(context.TODO(), created.ID, 1)
	require.NoError(t, err)

	view, err = client.LikeContent(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, view)

	missing, err := client.LikeContent(context.TODO(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentService_Delete(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	stranger := seedUser(t, s, "mallory")
	golang := seedTag(t, s, "golang")
	client := NewArticleService(s, cache.NewMemoryCounter())

	created, err := client.Create(context.TODO(), CreateInput[*model.Article]{
		Title: "short lived",
		Tags:  []int64{golang.ID},
		Facet: &model.Article{Content: "to be removed"},
	}, owner.ID)
	require.NoError(t, err)

	err = client.Delete(context.TODO(), created.ID, stranger.ID)
	var oerr *OwnershipError
	assert.ErrorAs(t, err, &oerr)

	require.NoError(t, client.Delete(context.TODO(), created.ID, owner.ID))

	view, err := client.GetByID(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, view)

	err = client.Delete(context.TODO(), created.ID, owner.ID)
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)

	links, err := s.ListContentTags(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestPlanService_Search(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	other := seedUser(t, s, "bob")
	travel := seedTag(t, s, "travel")
	client := NewPlanService(s, cache.NewMemoryCounter())

	start := time.Now()
	end := start.Add(30 * 24 * time.Hour)

	first, err := client.Create(context.TODO(), CreateInput[*model.Plan]{
		Title: "learn rust",
		Topic: model.TopicTechnical,
		Facet: &model.Plan{TargetStartTime: &start, TargetEndTime: &end},
	}, owner.ID)
	require.NoError(t, err)

	second, err := client.Create(context.TODO(), CreateInput[*model.Plan]{
		Title: "walk the camino",
		Topic: model.TopicLife,
		Tags:  []int64{travel.ID},
	}, owner.ID)
	require.NoError(t, err)

	_, err = client.Create(context.TODO(), CreateInput[*model.Plan]{Title: "not alice's plan"}, other.ID)
	require.NoError(t, err)

	// owner scoped, newest first
	result, err := client.Search(context.TODO(), owner.ID, 1, 10, SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, second.ID, result.Items[0].ID)
	assert.Equal(t, first.ID, result.Items[1].ID)

	// keyword matches title and description, case-insensitively
	result, err = client.Search(context.TODO(), owner.ID, 1, 10, SearchFilter{Keyword: "RUST"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, first.ID, result.Items[0].ID)
	require.NotNil(t, result.Items[0].Facet)
	require.NotNil(t, result.Items[0].Facet.TargetStartTime)

	// tag filter keeps only linked content
	result, err = client.Search(context.TODO(), owner.ID, 1, 10, SearchFilter{Tags: []int64{travel.ID}})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, second.ID, result.Items[0].ID)

	// a tag nobody uses short-circuits into an empty page
	unused := seedTag(t, s, "unused")
	result, err = client.Search(context.TODO(), owner.ID, 1, 10, SearchFilter{Tags: []int64{unused.ID}})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.Total)

	// pagination
	result, err = client.Search(context.TODO(), owner.ID, 2, 1, SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, first.ID, result.Items[0].ID)

	// draft/published status filter
	_, err = client.UpdateVisibility(context.TODO(), first.ID, VisibilityPublic, owner.ID)
	require.NoError(t, err)

	result, err = client.Search(context.TODO(), owner.ID, 1, 10, SearchFilter{Status: "PUBLISHED"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, first.ID, result.Items[0].ID)

	result, err = client.Search(context.TODO(), owner.ID, 1, 10, SearchFilter{Status: "DRAFT"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, second.ID, result.Items[0].ID)
}

func TestPlanService_Update_Window(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	client := NewPlanService(s, cache.NewMemoryCounter())

	created, err := client.Create(context.TODO(), CreateInput[*model.Plan]{Title: "open ended"}, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, created.Facet.TargetStartTime)

	start := time.Now().Round(time.Second)
	updated, err := client.Update(context.TODO(), UpdateInput[PlanUpdate]{
		ID:    created.ID,
		Facet: PlanUpdate{TargetStartTime: &start},
	}, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Facet.TargetStartTime)
	assert.True(t, start.Equal(*updated.Facet.TargetStartTime))
	assert.Nil(t, updated.Facet.TargetEndTime)
}
