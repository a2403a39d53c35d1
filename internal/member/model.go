package member

import "time"

// ===========================
// 👥 Team Member Models
// ===========================

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"

	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// RolePermissions documents what each role may do. Rendered verbatim on
// the team screen next to the role picker.
var RolePermissions = map[string]string{
	RoleAdmin:   "Full access: edit event, manage guests, budget, seating, and team",
	RoleManager: "Edit access: manage guests, invites, budget, and seating",
	RoleViewer:  "Read-only access: view event details, guest list, and budget",
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// EventMember is a collaborator invited to help run an event. UserID is
// nil until someone accepts the invite code while signed in; from then
// on the member's role applies to that account.
type EventMember struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     string     `gorm:"type:uuid;index;not null" json:"event_id"`
	UserID      *uint      `gorm:"index" json:"user_id,omitempty"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `gorm:"not null;default:'viewer'" json:"role"`
	Status      string     `gorm:"not null;default:'pending'" json:"status"`
	InviteCode  string     `gorm:"uniqueIndex" json:"invite_code,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (EventMember) TableName() string { return "event_members" }

// ===========================
// 📥 Requests
// ===========================

type InviteMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// MemberView decorates a member with its role's permission description.
type MemberView struct {
	EventMember
	Permissions string `json:"permissions"`
}
