package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}

func TestGormStore_ArticleCodec(t *testing.T) {
	tester.CleanTables()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	body := "a body long enough that gzip actually shrinks it, " +
		"a body long enough that gzip actually shrinks it"
	require.NoError(t, s.CreateArticle(ctx, &model.Article{
		ContentID: "a1",
		SubTitle:  "packed",
		Content:   body,
	}))

	// the column holds the encoded form, not the plain text
	var raw []byte
	err := tester.TestDB().Raw("SELECT content FROM article_info WHERE content_id = ?", "a1").Row().Scan(&raw)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.NotEqual(t, []byte(body), raw)

	got, err := s.GetArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, body, got.Content)

	got.Content = ""
	require.NoError(t, s.SaveArticle(ctx, got))

	got, err = s.GetArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "", got.Content)

	list, err := s.ListArticlesFromIDs(ctx, []string{"a1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestGormStore_TagLinks(t *testing.T) {
	tester.CleanTables()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	tag := &model.TagInfo{Keyword: "Databases"}
	require.NoError(t, s.CreateTag(ctx, tag))

	// lookups are case-insensitive
	found, err := s.GetTagByKeyword(ctx, "dataBASES")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, found.ID)

	_, err = s.GetTagByKeyword(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.ReplaceContentTags(ctx, "c1", []int64{tag.ID}))
	require.NoError(t, s.ReplaceContentTags(ctx, "c2", []int64{tag.ID}))

	ids, err := s.ListContentIDsWithTags(ctx, []int64{tag.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)

	// replacing with nil clears the links
	require.NoError(t, s.ReplaceContentTags(ctx, "c1", nil))
	ids, err = s.ListContentIDsWithTags(ctx, []int64{tag.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids)
}

func TestGormStore_TransactionRollback(t *testing.T) {
	tester.CleanTables()
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	failed := assert.AnError
	err := s.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateContent(ctx, &model.ContentGeneral{
			ID:      "rollback",
			Title:   "never lands",
			OwnerID: 1,
			Kind:    model.KindArticle,
			Topic:   model.TopicOthers,
		}); err != nil {
			return err
		}
		return failed
	})
	assert.ErrorIs(t, err, failed)

	_, err = s.GetContent(ctx, "rollback")
	assert.ErrorIs(t, err, ErrNotFound)
}
