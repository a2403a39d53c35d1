package event

import (
	"time"

	"gorm.io/datatypes"
)

// ============================
// 🔷 Event Aggregate Root
//
// The event owns its guests, functions, budget, seating tables and team
// members; deleting it cascades through all of them in one transaction.
type Event struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"type:varchar(100)" json:"category"`
	Privacy      string         `gorm:"type:varchar(20);default:'private'" json:"privacy"` // public / private / inviteOnly
	LocationName string         `gorm:"type:varchar(255)" json:"location_name"`
	StartTime    time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime      *time.Time     `json:"end_time,omitempty"`
	Capacity     *int           `json:"capacity,omitempty"` // advisory only, never enforced
	Features     datatypes.JSON `gorm:"type:jsonb" json:"features"`
	HostID       uint           `gorm:"not null;index" json:"host_id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Privacy      string   `json:"privacy"`
	LocationName string   `json:"location_name"`
	StartTime    string   `json:"start_time" binding:"required"` // RFC 3339
	EndTime      string   `json:"end_time,omitempty"`
	Capacity     *int     `json:"capacity,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Privacy      string   `json:"privacy"`
	LocationName string   `json:"location_name"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time,omitempty"`
	Capacity     *int     `json:"capacity,omitempty"`
	Features     []string `json:"features,omitempty"`
	// Stale-write guard: the updated_at the client last read. An update
	// against a newer row is rejected instead of silently overwriting.
	UpdatedAt string `json:"updated_at" binding:"required"`
}

// ============================
// 📊 Guest / RSVP summary, always computed from the guest table on demand.
// attending + maybe + pending + declined + waitlisted == total_guests.
type Summary struct {
	TotalGuests         int  `json:"total_guests"`
	AttendingCount      int  `json:"attending_count"`
	MaybeCount          int  `json:"maybe_count"`
	PendingCount        int  `json:"pending_count"`
	DeclinedCount       int  `json:"declined_count"`
	WaitlistedCount     int  `json:"waitlisted_count"`
	TotalGuestHeadcount int  `json:"total_guest_headcount"`
	Capacity            *int `json:"capacity,omitempty"`
}

// Links exposes the stable deep-link forms consumed by the mobile router.
type Links struct {
	EventLink string `json:"event_link"`
}
