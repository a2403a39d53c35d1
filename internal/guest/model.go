package guest

import (
	"time"

	"gorm.io/datatypes"
)

// RSVP statuses
const (
	StatusPending    = "pending"
	StatusAttending  = "attending"
	StatusMaybe      = "maybe"
	StatusDeclined   = "declined"
	StatusWaitlisted = "waitlisted"
)

// Guest roles
const (
	RoleGuest  = "guest"
	RoleVIP    = "vip"
	RoleCohost = "cohost"
)

// ======================
// 🔹 Guest Model
//
// One invited party. A guest exists independently of any user account;
// UserID is an optional link filled in when an account holder claims the
// invitation.
type Guest struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      string         `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID       *uint          `gorm:"index" json:"user_id,omitempty"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone        string         `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Status       string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Role         string         `gorm:"type:varchar(20);default:'guest'" json:"role"`
	PlusOneCount int            `gorm:"default:0" json:"plus_one_count"`
	RespondedAt  *time.Time     `json:"responded_at,omitempty"`
	MealChoice   string         `gorm:"type:varchar(100)" json:"meal_choice,omitempty"`
	DietaryNotes string         `gorm:"type:text" json:"dietary_notes,omitempty"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	Metadata     datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	PartyMembers []PartyMember `gorm:"foreignKey:GuestID" json:"party_members,omitempty"`
}

func (Guest) TableName() string {
	return "guests"
}

// TotalHeadcount is the number of people this record represents. The named
// member list wins over the bare numeric count when both exist, so the two
// representations can never diverge in what they report.
func (g *Guest) TotalHeadcount() int {
	extra := g.PlusOneCount
	if len(g.PartyMembers) > extra {
		extra = len(g.PartyMembers)
	}
	return 1 + extra
}

// ======================
// 🔹 Party Member Model
type PartyMember struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	GuestID      string    `gorm:"type:uuid;not null;index" json:"guest_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Relationship string    `gorm:"type:varchar(50)" json:"relationship"`
	DietaryNote  string    `gorm:"type:varchar(255)" json:"dietary_note,omitempty"`
	Position     int       `gorm:"default:0" json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PartyMember) TableName() string {
	return "party_members"
}

// ======================
// Requests

type AddGuestRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	PlusOneCount int    `json:"plus_one_count"`
	MealChoice   string `json:"meal_choice"`
	DietaryNotes string `json:"dietary_notes"`
	Notes        string `json:"notes"`
}

type SetRSVPRequest struct {
	Status       string `json:"status" binding:"required"`
	PlusOneCount *int   `json:"plus_one_count,omitempty"`
}

type AddPartyMemberRequest struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship"`
	DietaryNote  string `json:"dietary_note"`
}
