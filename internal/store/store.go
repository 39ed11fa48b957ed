package store

import (
	"context"
	"errors"
	"time"

	"github.com/stanhub/blog/internal/model"
)

// ErrNotFound is returned by single-row getters when no row matches.
var ErrNotFound = errors.New("record not found")

// ContentQuery is the owner-scoped search filter over general info rows.
// Zero values mean "no restriction" except OwnerID and Kind, which are
// always applied.
type ContentQuery struct {
	OwnerID int64
	Kind    model.ContentKind
	// Status is "", "PUBLISHED" or "DRAFT".
	Status     string
	Topic      model.Topic
	CreateFrom *time.Time
	CreateTo   *time.Time
	UpdateFrom *time.Time
	UpdateTo   *time.Time
	// Keyword matches title or description, case-insensitive substring.
	Keyword string
	// ContentIDs restricts results to the given ids when non-nil.
	ContentIDs []string
	Page       int
	Size       int
}

type Store interface {
	ContentStore
	ArticleStore
	PlanStore
	VocabularyStore
	CollectionStore
	ModerationStore
	TagStore
	TagRelationshipStore
	UserStore
	WordStore
	CommentStore
	// Transaction executes f with every write committed atomically or not
	// at all. Multi-store mutations go through here.
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type ContentStore interface {
	// CreateContent creates a new general info row.
	CreateContent(ctx context.Context, content *model.ContentGeneral) error
	// GetContent retrieves a general info row by id.
	GetContent(ctx context.Context, id string) (*model.ContentGeneral, error)
	// SaveContent persists changes to an existing general info row.
	SaveContent(ctx context.Context, content *model.ContentGeneral) error
	// DeleteContent removes a general info row.
	DeleteContent(ctx context.Context, id string) error
	// SearchContent returns one page of general info rows plus the total
	// match count, newest created first.
	SearchContent(ctx context.Context, q ContentQuery) ([]*model.ContentGeneral, int64, error)
	// AddContentCounts folds view/like count deltas into a general info row.
	AddContentCounts(ctx context.Context, id string, viewDelta, likeDelta int64) error
}

type ArticleStore interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticle(ctx context.Context, contentID string) (*model.Article, error)
	ListArticlesFromIDs(ctx context.Context, contentIDs []string) ([]*model.Article, error)
	SaveArticle(ctx context.Context, article *model.Article) error
	DeleteArticle(ctx context.Context, contentID string) error
}

type PlanStore interface {
	CreatePlan(ctx context.Context, plan *model.Plan) error
	GetPlan(ctx context.Context, contentID string) (*model.Plan, error)
	ListPlansFromIDs(ctx context.Context, contentIDs []string) ([]*model.Plan, error)
	SavePlan(ctx context.Context, plan *model.Plan) error
	DeletePlan(ctx context.Context, contentID string) error
}

type VocabularyStore interface {
	CreateVocabulary(ctx context.Context, voc *model.Vocabulary) error
	GetVocabulary(ctx context.Context, contentID string) (*model.Vocabulary, error)
	ListVocabulariesFromIDs(ctx context.Context, contentIDs []string) ([]*model.Vocabulary, error)
	SaveVocabulary(ctx context.Context, voc *model.Vocabulary) error
	DeleteVocabulary(ctx context.Context, contentID string) error
}

type CollectionStore interface {
	CreateCollection(ctx context.Context, col *model.Collection) error
	GetCollection(ctx context.Context, contentID string) (*model.Collection, error)
	ListCollectionsFromIDs(ctx context.Context, contentIDs []string) ([]*model.Collection, error)
	SaveCollection(ctx context.Context, col *model.Collection) error
	DeleteCollection(ctx context.Context, contentID string) error
}

type ModerationStore interface {
	CreateModeration(ctx context.Context, mod *model.ContentModeration) error
	GetModeration(ctx context.Context, contentID string) (*model.ContentModeration, error)
	ListModerationsFromIDs(ctx context.Context, contentIDs []string) ([]*model.ContentModeration, error)
	SaveModeration(ctx context.Context, mod *model.ContentModeration) error
	DeleteModeration(ctx context.Context, contentID string) error
}

type TagStore interface {
	// CreateTag creates a catalog entry.
	CreateTag(ctx context.Context, tag *model.TagInfo) error
	// GetTagByKeyword looks a catalog entry up case-insensitively.
	GetTagByKeyword(ctx context.Context, keyword string) (*model.TagInfo, error)
	// ListTagsFromIDs retrieves catalog entries by id.
	ListTagsFromIDs(ctx context.Context, ids []int64) ([]*model.TagInfo, error)
	// SearchTags pages through catalog entries matching a keyword substring,
	// ordered by keyword ascending.
	SearchTags(ctx context.Context, keyword string, page, size int) ([]*model.TagInfo, int64, error)
	// ReplaceContentTags deletes all links of a content id and inserts the
	// given tag ids.
	ReplaceContentTags(ctx context.Context, contentID string, tagIDs []int64) error
	// ListContentTags returns the links of one content id.
	ListContentTags(ctx context.Context, contentID string) ([]*model.ContentTag, error)
	// ListContentTagsForContents returns the links of many content ids.
	ListContentTagsForContents(ctx context.Context, contentIDs []string) ([]*model.ContentTag, error)
	// ListContentIDsWithTags returns the ids of contents carrying at least
	// one of the given tags.
	ListContentIDsWithTags(ctx context.Context, tagIDs []int64) ([]string, error)
}

type TagRelationshipStore interface {
	CreateTagRelationship(ctx context.Context, rel *model.TagRelationship) error
	GetTagRelationship(ctx context.Context, id int64) (*model.TagRelationship, error)
	// ListTagRelationshipsByCollection returns every node of one collection,
	// ordered by id for deterministic tree builds.
	ListTagRelationshipsByCollection(ctx context.Context, collectionID string) ([]*model.TagRelationship, error)
	// DeleteTagRelationships removes the given nodes in one batch. Missing
	// ids are ignored.
	DeleteTagRelationships(ctx context.Context, ids []int64) error
}

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsersFromIDs(ctx context.Context, ids []int64) ([]*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}

type WordStore interface {
	CreateWord(ctx context.Context, word *model.Word) error
	GetWord(ctx context.Context, id int64) (*model.Word, error)
	ListWordsByVocabulary(ctx context.Context, vocabularyID string) ([]*model.Word, error)
	SaveWord(ctx context.Context, word *model.Word) error
	DeleteWord(ctx context.Context, id int64) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// GetComment retrieves one comment. Logically deleted rows report
	// ErrNotFound.
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	// ListCommentsByContent returns one page of live comments of one
	// content id plus the total count, newest created first.
	ListCommentsByContent(ctx context.Context, contentID string, page, size int) ([]*model.Comment, int64, error)
	SaveComment(ctx context.Context, comment *model.Comment) error
}
