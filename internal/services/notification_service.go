package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/cache"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

const (
	// ListPageSize caps notification listings.
	ListPageSize = 20

	unreadCountTTL = 60 * time.Second
)

// NotificationService owns the append-only notification records. The
// unread counter is served through a short-lived cache entry invalidated
// by every mutation; the database stays the source of truth.
type NotificationService struct {
	repo  repositories.NotificationRepository
	cache cache.Cache // nil disables caching
}

func NewNotificationService(repo repositories.NotificationRepository, c cache.Cache) *NotificationService {
	return &NotificationService{repo: repo, cache: c}
}

func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, message string, propertyID *uuid.UUID) (*models.Notification, error) {
	if message == "" {
		return nil, utils.ErrMessageRequired
	}

	n := &models.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propertyID,
		Message:    message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	s.invalidateUnread(ctx, userID)
	return n, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.NotificationWithProperty, error) {
	return s.repo.ListForUser(ctx, userID, ListPageSize)
}

// CountUnread serves from cache when possible and falls back to the
// database on any cache failure.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	key := unreadKey(userID)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			if n, convErr := strconv.Atoi(string(raw)); convErr == nil {
				return n, nil
			}
		}
	}

	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, []byte(strconv.Itoa(n)), unreadCountTTL); err != nil {
			utils.Logger.WithError(err).Debug("Failed to cache unread count")
		}
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	err := s.repo.MarkRead(ctx, notificationID)
	if err != nil {
		if isNotFound(err) {
			return utils.ErrNotFound
		}
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// MarkAllRead is a successful no-op when the user has nothing unread.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, unreadKey(userID)); err != nil {
		utils.Logger.WithError(err).Debug("Failed to invalidate unread count")
	}
}

func unreadKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}
