package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// In-app notifications
	CreateInApp(ctx context.Context, n *InAppNotification) error
	ListInAppByUser(ctx context.Context, userID uint, eventID *string, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)

	// FCM device tokens
	SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error
	GetUserDeviceTokens(ctx context.Context, userID uint) ([]string, error)
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error

	// Fan-out targets: the host plus every accepted team member.
	EventTeamUserIDs(ctx context.Context, eventID string) ([]uint, error)

	// Reminders
	EventsStartingBetween(ctx context.Context, from, to time.Time) ([]UpcomingEvent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ------------------------------
// In-app notifications
// ------------------------------

func (r *repository) CreateInApp(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListInAppByUser(ctx context.Context, userID uint, eventID *string, limit int) ([]InAppNotification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if eventID != nil {
		q = q.Where("event_id = ?", *eventID)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var out []InAppNotification
	err := q.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *repository) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// ------------------------------
// FCM device tokens
// ------------------------------

func (r *repository) SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error {
	token.LastUsedAt = time.Now().UTC()
	token.IsActive = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "device_token"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_active", "last_used_at", "device_type", "device_name"}),
		}).
		Create(token).Error
}

func (r *repository) GetUserDeviceTokens(ctx context.Context, userID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("device_token", &tokens).Error
	return tokens, err
}

func (r *repository) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Update("is_active", false).Error
}

// ------------------------------
// Fan-out / reminders
// ------------------------------

func (r *repository) EventTeamUserIDs(ctx context.Context, eventID string) ([]uint, error) {
	var hostIDs []uint
	err := r.db.WithContext(ctx).
		Table("events").
		Where("id = ?", eventID).
		Pluck("host_id", &hostIDs).Error
	if err != nil {
		return nil, err
	}

	var memberIDs []uint
	err = r.db.WithContext(ctx).
		Table("event_members").
		Where("event_id = ? AND status = ? AND user_id IS NOT NULL", eventID, "accepted").
		Pluck("user_id", &memberIDs).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(hostIDs)+len(memberIDs))
	out := make([]uint, 0, len(hostIDs)+len(memberIDs))
	for _, id := range append(hostIDs, memberIDs...) {
		if id != 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *repository) EventsStartingBetween(ctx context.Context, from, to time.Time) ([]UpcomingEvent, error) {
	var rows []UpcomingEvent
	err := r.db.WithContext(ctx).
		Table("events").
		Select("id AS event_id, title, start_time, host_id").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Scan(&rows).Error
	return rows, err
}
