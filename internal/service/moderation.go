package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/queue"
	"github.com/stanhub/blog/internal/store"
)

// Administrative audit reasons stamped onto the moderation record.
const (
	ReasonBanned        = "Violating content, blocked by administrators"
	ReasonUnbanned      = "Content has been reviewed and unbanned by administrators"
	ReasonRecommended   = "High-quality content, recommended by administrators"
	ReasonUnrecommended = "Content recommendation has been removed by administrators"
)

// ModerationView is the moderation state of one content item.
type ModerationView struct {
	ContentID   string  `json:"contentId"`
	Banned      bool    `json:"banned"`
	Recommended bool    `json:"recommended"`
	Reason      *string `json:"reason"`
}

// ModerationService applies the administrative ban and recommend flags.
// It is not owner-scoped: moderation acts on any content. Flag changes
// notify the content owner on a best-effort basis.
type ModerationService struct {
	store    store.Store
	notifier queue.Notifier
}

func NewModerationService(s store.Store, notifier queue.Notifier) *ModerationService {
	if notifier == nil {
		notifier = queue.NopNotifier{}
	}
	return &ModerationService{store: s, notifier: notifier}
}

// Ban blocks a content item from public reads.
func (s *ModerationService) Ban(ctx context.Context, contentID string, adminID int64) (*ModerationView, error) {
	return s.setFlag(ctx, contentID, adminID, queue.NotificationContentBanned, func(mod *model.ContentModeration) {
		mod.Banned = true
		reason := ReasonBanned
		mod.Reason = &reason
	})
}

// Unban lifts a ban.
func (s *ModerationService) Unban(ctx context.Context, contentID string, adminID int64) (*ModerationView, error) {
	return s.setFlag(ctx, contentID, adminID, "", func(mod *model.ContentModeration) {
		mod.Banned = false
		reason := ReasonUnbanned
		mod.Reason = &reason
	})
}

// Recommend marks a content item as editorially recommended.
func (s *ModerationService) Recommend(ctx context.Context, contentID string, adminID int64) (*ModerationView, error) {
	return s.setFlag(ctx, contentID, adminID, queue.NotificationContentRecommended, func(mod *model.ContentModeration) {
		mod.Recommended = true
		reason := ReasonRecommended
		mod.Reason = &reason
	})
}

// Unrecommend withdraws a recommendation.
func (s *ModerationService) Unrecommend(ctx context.Context, contentID string, adminID int64) (*ModerationView, error) {
	return s.setFlag(ctx, contentID, adminID, "", func(mod *model.ContentModeration) {
		mod.Recommended = false
		reason := ReasonUnrecommended
		mod.Reason = &reason
	})
}

// Get returns the moderation state of one content item.
func (s *ModerationService) Get(ctx context.Context, contentID string) (*ModerationView, error) {
	mod, err := s.store.GetModeration(ctx, contentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "moderation", ID: contentID}
	}
	if err != nil {
		return nil, err
	}
	return moderationView(mod), nil
}

func (s *ModerationService) setFlag(ctx context.Context, contentID string, adminID int64, notifyType string, apply func(*model.ContentModeration)) (*ModerationView, error) {
	general, err := s.store.GetContent(ctx, contentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "content", ID: contentID}
	}
	if err != nil {
		return nil, err
	}

	var result *model.ContentModeration
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		mod, err := tx.GetModeration(ctx, contentID)
		if errors.Is(err, store.ErrNotFound) {
			// Content created before moderation records existed.
			mod = &model.ContentModeration{ContentID: contentID}
			if err := tx.CreateModeration(ctx, mod); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		apply(mod)
		result = mod
		return tx.SaveModeration(ctx, mod)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("admin %d set moderation flags on content %s: banned=%t recommended=%t",
		adminID, contentID, result.Banned, result.Recommended)

	if notifyType != "" {
		notification := &queue.Notification{
			Type:        notifyType,
			ContentID:   contentID,
			Title:       general.Title,
			ContentKind: general.Kind,
			RecipientID: general.OwnerID,
			ActorID:     adminID,
		}
		if err := s.notifier.Publish(ctx, notification); err != nil {
			logrus.WithError(err).Warnf("failed to publish %s notification for content %s", notifyType, contentID)
		}
	}
	return moderationView(result), nil
}

func moderationView(mod *model.ContentModeration) *ModerationView {
	return &ModerationView{
		ContentID:   mod.ContentID,
		Banned:      mod.Banned,
		Recommended: mod.Recommended,
		Reason:      mod.Reason,
	}
}
