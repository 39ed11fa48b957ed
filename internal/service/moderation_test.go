package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/queue"
)

type recordingNotifier struct {
	published []*queue.Notification
}

func (r *recordingNotifier) Publish(ctx context.Context, n *queue.Notification) error {
	r.published = append(r.published, n)
	return nil
}

func TestModerationService_BanUnban(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	articles := NewArticleService(s, cache.NewMemoryCounter())

	created, err := articles.Create(context.TODO(), CreateInput[*model.Article]{Title: "edgy takes"}, owner.ID)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	client := NewModerationService(s, notifier)

	banned, err := client.Ban(context.TODO(), created.ID, 1)
	require.NoError(t, err)
	assert.True(t, banned.Banned)
	require.NotNil(t, banned.Reason)
	assert.Equal(t, ReasonBanned, *banned.Reason)

	// the ban shows up on the content view
	view, err := articles.GetByID(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.True(t, view.Banned)

	// and the owner got notified
	require.Len(t, notifier.published, 1)
	assert.Equal(t, queue.NotificationContentBanned, notifier.published[0].Type)
	assert.Equal(t, created.ID, notifier.published[0].ContentID)
	assert.Equal(t, owner.ID, notifier.published[0].RecipientID)
	assert.Equal(t, int64(1), notifier.published[0].ActorID)

	unbanned, err := client.Unban(context.TODO(), created.ID, 1)
	require.NoError(t, err)
	assert.False(t, unbanned.Banned)
	require.NotNil(t, unbanned.Reason)
	assert.Equal(t, ReasonUnbanned, *unbanned.Reason)

	// lifting a ban is not broadcast
	assert.Len(t, notifier.published, 1)
}

func TestModerationService_Recommend(t *testing.T) {
	s := testStore(t)
	owner := seedUser(t, s, "alice")
	articles := NewArticleService(s, cache.NewMemoryCounter())

	created, err := articles.Create(context.TODO(), CreateInput[*model.Article]{Title: "quality writing"}, owner.ID)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	client := NewModerationService(s, notifier)

	recommended, err := client.Recommend(context.TODO(), created.ID, 7)
	require.NoError(t, err)
	assert.True(t, recommended.Recommended)
	assert.Equal(t, ReasonRecommended, *recommended.Reason)

	require.Len(t, notifier.published, 1)
	assert.Equal(t, queue.NotificationContentRecommended, notifier.published[0].Type)

	withdrawn, err := client.Unrecommend(context.TODO(), created.ID, 7)
	require.NoError(t, err)
	assert.False(t, withdrawn.Recommended)
	assert.Equal(t, ReasonUnrecommended, *withdrawn.Reason)
	assert.Len(t, notifier.published, 1)

	// recommend and ban are independent flags
	_, err = client.Ban(context.TODO(), created.ID, 7)
	require.NoError(t, err)
	state, err := client.Get(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.True(t, state.Banned)
	assert.False(t, state.Recommended)
}

func TestModerationService_MissingContent(t *testing.T) {
	s := testStore(t)
	client := NewModerationService(s, nil)

	_, err := client.Ban(context.TODO(), "no-such-id", 1)
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)

	_, err = client.Get(context.TODO(), "no-such-id")
	assert.ErrorAs(t, err, &nferr)
}
