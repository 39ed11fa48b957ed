package jobs

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
	"github.com/stanhub/blog/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}

func TestCounterSink_Run(t *testing.T) {
	tester.CleanTables()
	s := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()

	content := &model.ContentGeneral{
		ID:      "sink-test",
		Title:   "counted",
		OwnerID: 1,
		Kind:    model.KindArticle,
		Topic:   model.TopicOthers,
	}
	require.NoError(t, s.CreateContent(ctx, content))

	counter := cache.NewMemoryCounter()
	_, err := counter.Incr(ctx, cache.ViewCountKey, content.ID, 3)
	require.NoError(t, err)
	_, err = counter.Incr(ctx, cache.LikeCountKey, content.ID, 2)
	require.NoError(t, err)
	// an id with no matching row must not break the sink
	_, err = counter.Incr(ctx, cache.ViewCountKey, "gone", 9)
	require.NoError(t, err)

	sink := NewCounterSink("@every 1m", s, counter)
	sink.Run()

	stored, err := s.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.ViewCount)
	assert.Equal(t, int64(2), stored.LikeCount)

	// the counter window is empty after a sink
	deltas, err := counter.Drain(ctx, cache.ViewCountKey)
	require.NoError(t, err)
	assert.Empty(t, deltas)

	// a second run with no pending deltas changes nothing
	sink.Run()
	stored, err = s.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.ViewCount)
}
