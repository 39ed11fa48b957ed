package queue

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/stanhub/blog/internal/model"
)

// NotificationQueue is the redis list delivery workers consume from.
var NotificationQueue = "notification:queue"

const (
	NotificationContentBanned      = "CONTENT_BANNED"
	NotificationContentRecommended = "CONTENT_RECOMMENDED"
	NotificationContentCommented   = "CONTENT_COMMENTED"
	NotificationCommentReplied     = "COMMENT_REPLIED"
)

// Notification is one outbound message about an action on a content item,
// a moderation flag change or a new comment. Delivery (in-app, e-mail)
// happens outside this module.
type Notification struct {
	Type        string            `json:"type"`
	ContentID   string            `json:"contentId"`
	Title       string            `json:"title"`
	ContentKind model.ContentKind `json:"contentKind"`
	// RecipientID is the user the message is addressed to.
	RecipientID int64 `json:"recipientId"`
	// ActorID is the user whose action triggered the message.
	ActorID int64 `json:"actorId"`
	// Message carries the comment text for comment notifications.
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier hands notifications to the delivery pipeline.
type Notifier interface {
	Publish(ctx context.Context, n *Notification) error
}

var _ Notifier = (*RedisNotifier)(nil)

// RedisNotifier appends notifications to a redis list.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (r *RedisNotifier) Publish(ctx context.Context, n *Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, NotificationQueue, data).Err()
}

var _ Notifier = (*NopNotifier)(nil)

// NopNotifier drops notifications. Used in tests.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

func (NopNotifier) Publish(ctx context.Context, n *Notification) error {
	return nil
}
