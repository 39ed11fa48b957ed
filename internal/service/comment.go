package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/queue"
	"github.com/stanhub/blog/internal/store"
)

// replySnippetLimit caps the quoted parent excerpt carried by replies.
const replySnippetLimit = 100

// CommentInput carries the fields of a new comment. ParentID marks the
// comment as a reply.
type CommentInput struct {
	ContentID string
	Content   string
	ParentID  *int64
	IPAddress string
}

var commentLimits = FieldLimits{
	"content": 2000,
}

// CommentService manages reader comments on content items. Comments are
// not owner-scoped: anyone may comment on any content, and only the
// comment author may delete their comment. Deletion is logical. New
// comments notify the content owner, replies the parent comment author,
// both on a best-effort basis.
type CommentService struct {
	store    store.Store
	notifier queue.Notifier
}

func NewCommentService(s store.Store, notifier queue.Notifier) *CommentService {
	if notifier == nil {
		notifier = queue.NopNotifier{}
	}
	return &CommentService{store: s, notifier: notifier}
}

// Create persists a new comment by callerID. Replies to a live parent
// comment carry the parent author's name and a quoted snippet; a missing
// or deleted parent degrades the reply into a top-level comment.
func (s *CommentService) Create(ctx context.Context, in CommentInput, callerID int64) (*model.Comment, error) {
	if in.Content == "" {
		return nil, &ValidationError{Field: "content", Message: "must not be empty"}
	}
	if err := commentLimits.CheckAll(map[string]string{"content": in.Content}); err != nil {
		return nil, err
	}

	general, err := s.store.GetContent(ctx, in.ContentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "content", ID: in.ContentID}
	}
	if err != nil {
		return nil, err
	}

	author, err := s.store.GetUser(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "user", ID: strconv.FormatInt(callerID, 10)}
	}
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ContentID:     in.ContentID,
		Content:       in.Content,
		UserID:        callerID,
		UserName:      author.DisplayName(),
		UserAvatarURL: author.AvatarURL,
		IPAddress:     in.IPAddress,
	}

	var parent *model.Comment
	if in.ParentID != nil {
		parent, err = s.store.GetComment(ctx, *in.ParentID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if parent != nil {
			comment.ParentID = in.ParentID
			comment.ReplyToUserName = parent.UserName
			comment.ReplyToContent = snippet(parent.Content, replySnippetLimit)
		}
	}

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	logrus.Infof("comment %d created on content %s by user %d", comment.ID, in.ContentID, callerID)

	notification := &queue.Notification{
		Type:        queue.NotificationContentCommented,
		ContentID:   general.ID,
		Title:       general.Title,
		ContentKind: general.Kind,
		RecipientID: general.OwnerID,
		ActorID:     callerID,
		Message:     in.Content,
	}
	if parent != nil {
		notification.Type = queue.NotificationCommentReplied
		notification.RecipientID = parent.UserID
	}
	if err := s.notifier.Publish(ctx, notification); err != nil {
		logrus.WithError(err).Warnf("failed to publish %s notification for content %s", notification.Type, general.ID)
	}

	return comment, nil
}

// Get returns one live comment.
func (s *CommentService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	comment, err := s.store.GetComment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "comment", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByContent returns one page of live comments of a content item,
// newest first.
func (s *CommentService) ListByContent(ctx context.Context, contentID string, page, size int) (*Page[*model.Comment], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	comments, total, err := s.store.ListCommentsByContent(ctx, contentID, page, size)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	return &Page[*model.Comment]{Items: comments, Total: total, Page: page, Size: size}, nil
}

// Delete logically removes a comment. Only the comment author may delete
// it; the row stays in the table but vanishes from every read.
func (s *CommentService) Delete(ctx context.Context, id int64, callerID int64) error {
	comment, err := s.store.GetComment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "comment", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return err
	}
	if comment.UserID != callerID {
		return &OwnershipError{ContentID: comment.ContentID, OwnerID: comment.UserID, CallerID: callerID}
	}

	comment.Deleted = true
	if err := s.store.SaveComment(ctx, comment); err != nil {
		return err
	}
	logrus.Infof("comment %d deleted by user %d", id, callerID)
	return nil
}

// ToggleLike adds or removes one like on a comment and returns the
// updated count. The count never goes below zero.
func (s *CommentService) ToggleLike(ctx context.Context, id int64, like bool) (int64, error) {
	comment, err := s.store.GetComment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return 0, &NotFoundError{Resource: "comment", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return 0, err
	}

	if like {
		comment.LikeCount++
	} else if comment.LikeCount > 0 {
		comment.LikeCount--
	}
	if err := s.store.SaveComment(ctx, comment); err != nil {
		return 0, err
	}
	return comment.LikeCount, nil
}

// snippet truncates s to at most limit runes, marking the cut with an
// ellipsis.
func snippet(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
