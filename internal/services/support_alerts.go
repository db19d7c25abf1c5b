package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
)

const (
	supportAlertMessage = "%s has had a difficult week. Consider reaching out to offer your support."
	selfCheckInMessage  = "Your recent entries suggest this week has been hard. Consider reaching out to someone you trust."
)

// AlertPublisher delivers a stored notification to live subscribers.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, note models.Notification) error
}

// Notifier is told when the weekly check flags a bad week.
type Notifier interface {
	NotifyBadWeek(ctx context.Context, userID uuid.UUID, summary models.WeeklySummary) error
}

// SupportAlerts writes a support alert for each accepted friend plus a
// check-in note for the user, then publishes each one.
type SupportAlerts struct {
	store     store.Store
	notes     NotificationStore
	publisher AlertPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewSupportAlerts(st store.Store, notes NotificationStore, publisher AlertPublisher, logger *zap.Logger) *SupportAlerts {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupportAlerts{store: st, notes: notes, publisher: publisher, logger: logger, now: time.Now}
}

func (a *SupportAlerts) NotifyBadWeek(ctx context.Context, userID uuid.UUID, summary models.WeeklySummary) error {
	name := "Your friend"
	if user, err := a.store.GetUserByID(ctx, userID); err == nil {
		name = user.Email
		if user.FullName != "" {
			name = user.FullName
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("load user: %w", err)
	}

	friends, err := a.store.ListFriends(ctx, userID)
	if err != nil {
		return fmt.Errorf("list friends: %w", err)
	}

	now := a.now().UTC()
	notes := []models.Notification{{
		RecipientID: userID.String(),
		SubjectID:   userID.String(),
		Kind:        models.NotificationSelfCheckIn,
		Message:     selfCheckInMessage,
		CreatedAt:   now,
	}}
	for _, f := range friends {
		if f.Status != models.FriendStatusAccepted {
			continue
		}
		notes = append(notes, models.Notification{
			RecipientID: f.UserID.String(),
			SubjectID:   userID.String(),
			SubjectName: name,
			Kind:        models.NotificationSupportAlert,
			Message:     fmt.Sprintf(supportAlertMessage, name),
			CreatedAt:   now,
		})
	}

	if err := a.notes.InsertNotifications(ctx, notes); err != nil {
		return fmt.Errorf("store notifications: %w", err)
	}

	if a.publisher != nil {
		for _, n := range notes {
			if err := a.publisher.PublishAlert(ctx, n); err != nil {
				a.logger.Warn("failed to publish support alert",
					zap.String("recipient_id", n.RecipientID),
					zap.Error(err))
			}
		}
	}

	a.logger.Info("support alerts sent",
		zap.String("user_id", userID.String()),
		zap.Int("recipients", len(notes)),
		zap.String("summary", summary.Summary))
	return nil
}
