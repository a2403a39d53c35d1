package export

import "time"

// ===========================
// 📦 Export Projections
// ===========================

// The account export is a read-only JSON projection, not a
// re-importable format. Dates render as RFC3339 (ISO-8601) and the
// document marshals with sorted keys.

type Profile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type HostedFunction struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

type HostedEvent struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      *time.Time       `json:"end_time,omitempty"`
	LocationName string           `json:"location_name"`
	Privacy      string           `json:"privacy"`
	CreatedAt    time.Time        `json:"created_at"`
	GuestCount   int              `json:"guest_count"`
	Functions    []HostedFunction `json:"functions"`
}

type AttendingEvent struct {
	Title       string     `json:"title"`
	Date        time.Time  `json:"date"`
	RSVPStatus  string     `json:"rsvp_status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type Ticket struct {
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	GuestID    string `json:"guest_id"`
	DeepLink   string `json:"deep_link"`
}

// GuestRow is one line of the guest-list spreadsheet.
type GuestRow struct {
	Name         string
	Email        string
	Phone        string
	Status       string
	Role         string
	PlusOneCount int
	PartySize    int
	MealChoice   string
	RespondedAt  *time.Time
}
