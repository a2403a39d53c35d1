package seating

import "time"

// ===========================
// 🪑 Seating Models
// ===========================

// SeatingTable is a named table with a hard seat capacity. Unlike the
// event-level capacity (which is advisory), table capacity is enforced:
// an assignment that would overflow a table is rejected.
type SeatingTable struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;index;not null" json:"event_id"`
	Name      string    `gorm:"not null" json:"name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeatingAssignment places one guest at one table. The unique index on
// (event_id, guest_id) makes exclusivity structural: a guest cannot sit
// at two tables, and assigning an already-seated guest moves them.
type SeatingAssignment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_seat_event_guest" json:"event_id"`
	TableID   string    `gorm:"type:uuid;index;not null" json:"table_id"`
	GuestID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_seat_event_guest" json:"guest_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SeatingTable) TableName() string      { return "seating_tables" }
func (SeatingAssignment) TableName() string { return "seating_assignments" }

// ===========================
// 📥 Requests / 📤 Views
// ===========================

type CreateTableRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
	Position int    `json:"position"`
}

type AssignGuestRequest struct {
	GuestID string `json:"guest_id" binding:"required"`
}

// TableView is a table plus its current occupants, as rendered on the
// seating chart screen.
type TableView struct {
	SeatingTable
	Seated    []SeatedGuest `json:"seated"`
	SeatsUsed int           `json:"seats_used"`
	SeatsFree int           `json:"seats_free"`
}

// SeatedGuest is the minimal guest projection a seating chart needs.
type SeatedGuest struct {
	GuestID   string `json:"guest_id"`
	GuestName string `json:"guest_name"`
	Status    string `json:"status"`
}

// UnassignedGuest is a guest with no seat yet.
type UnassignedGuest struct {
	GuestID   string `json:"guest_id"`
	GuestName string `json:"guest_name"`
	Status    string `json:"status"`
	Headcount int    `json:"headcount"`
}
