package service

import (
	"time"

	"github.com/stanhub/blog/internal/model"
)

// TagRef is one tag catalog entry as exposed on views.
type TagRef struct {
	ID      int64  `json:"value"`
	Keyword string `json:"label"`
}

// View is the composed read model of one content item: general info, the
// kind-specific facet, moderation state, tag links and owner decoration.
type View[F any] struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	CoverImgURL      string            `json:"coverImgUrl"`
	PublicToAll      bool              `json:"publicToAll"`
	ContentProtected bool              `json:"contentProtected"`
	PublishTime      *time.Time        `json:"publishTime"`
	ViewCount        int64             `json:"viewCount"`
	LikeCount        int64             `json:"likeCount"`
	OwnerID          int64             `json:"ownerId"`
	Kind             model.ContentKind `json:"contentKind"`
	Topic            model.Topic       `json:"topic"`
	CreatedAt        time.Time         `json:"createTime"`
	UpdatedAt        time.Time         `json:"updateTime"`

	Banned      bool    `json:"banned"`
	Recommended bool    `json:"recommended"`
	Reason      *string `json:"reason"`

	OwnerName string `json:"ownerName"`
	AvatarURL string `json:"avatarUrl"`

	Tags  []TagRef `json:"tags"`
	Facet F        `json:"facet"`

	// TagTree is populated for COLLECTION content only.
	TagTree []*TagNode `json:"tagTree,omitempty"`
}

// Page is one page of search results.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

func emptyPage[T any](page, size int) *Page[T] {
	return &Page[T]{Items: []T{}, Total: 0, Page: page, Size: size}
}

// CreateInput carries the fields of a new content item. ID is generated
// when left empty. The facet holds the kind-specific fields and may be nil.
type CreateInput[F any] struct {
	ID               string
	Title            string
	Description      string
	CoverImgURL      string
	Topic            model.Topic
	ContentProtected bool
	Tags             []int64
	Facet            F
}

// UpdateInput carries a partial update. Nil pointers leave the current
// value untouched; Tags always replaces the full link set.
type UpdateInput[U any] struct {
	ID               string
	Title            *string
	Description      *string
	CoverImgURL      *string
	Topic            *model.Topic
	ContentProtected *bool
	Tags             []int64
	Facet            U
}

// Visibility is the two-state visibility machine target.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// SearchFilter narrows owner-scoped content searches.
type SearchFilter struct {
	// Status is "", "PUBLISHED" or "DRAFT".
	Status     string
	Topic      model.Topic
	CreateFrom *time.Time
	CreateTo   *time.Time
	UpdateFrom *time.Time
	UpdateTo   *time.Time
	Keyword    string
	// Tags keeps contents carrying at least one of the given tag ids.
	Tags []int64
}
