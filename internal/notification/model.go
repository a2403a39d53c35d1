package notification

import "time"

// ===========================
// 🔔 Notification Models
// ===========================

// InAppNotification is one bell entry for one user, scoped to an event.
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	EventID   *string   `gorm:"type:uuid;index" json:"event_id,omitempty"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // rsvp, reminder, team, system
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FCMDeviceToken stores a user's push tokens. The same account may be
// signed in on several devices; stale tokens get deactivated on refresh.
type FCMDeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_user_token" json:"user_id"`
	DeviceToken string    `gorm:"size:255;not null;index:idx_user_token,unique" json:"device_token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"` // android, ios, web
	DeviceName  string    `gorm:"size:100" json:"device_name"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	LastUsedAt  time.Time `json:"last_used_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (InAppNotification) TableName() string { return "in_app_notifications" }
func (FCMDeviceToken) TableName() string    { return "fcm_device_tokens" }

// Categories for the bell feed.
const (
	CategoryRSVP     = "rsvp"
	CategoryReminder = "reminder"
	CategoryTeam     = "team"
	CategorySystem   = "system"
)

// UpcomingEvent is the reminder projection: an event starting soon,
// with the host to notify.
type UpcomingEvent struct {
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	HostID    uint      `json:"host_id"`
}
