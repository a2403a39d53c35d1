package function

import (
	"time"
)

// Invite lifecycle
const (
	InviteNotSent   = "notSent"
	InviteSent      = "sent"
	InviteResponded = "responded"
)

// Invite responses
const (
	ResponseYes   = "yes"
	ResponseNo    = "no"
	ResponseMaybe = "maybe"
)

// ======================
// 🔹 Event Function (sub-event)
//
// A function is a sub-event of one Event (rehearsal dinner, reception)
// with its own schedule, location and independent RSVP tracking.
type EventFunction struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      string     `gorm:"type:uuid;not null;index" json:"event_id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	StartTime    time.Time  `gorm:"not null" json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	LocationName string     `gorm:"type:varchar(255)" json:"location_name"`
	DressCode    string     `gorm:"type:varchar(100)" json:"dress_code,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (EventFunction) TableName() string {
	return "event_functions"
}

// ======================
// 🔹 Function Invite
//
// Exactly one row per (guest, function) pair, enforced by a unique index
// and upsert-only writes, so retried requests can never duplicate it.
// State walks notSent → sent → responded; a later response overwrites the
// earlier one in place.
type FunctionInvite struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	FunctionID  string     `gorm:"type:uuid;not null;uniqueIndex:idx_invite_function_guest" json:"function_id"`
	GuestID     string     `gorm:"type:uuid;not null;uniqueIndex:idx_invite_function_guest" json:"guest_id"`
	Status      string     `gorm:"type:varchar(20);default:'notSent';index" json:"status"`
	Response    *string    `gorm:"type:varchar(10)" json:"response,omitempty"` // yes / no / maybe, set iff responded
	PartySize   int        `gorm:"default:1" json:"party_size"`
	Note        string     `gorm:"type:text" json:"note,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	SentChannel string     `gorm:"type:varchar(20)" json:"sent_channel,omitempty"` // whatsapp / sms / email
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (FunctionInvite) TableName() string {
	return "function_invites"
}

// ======================
// Requests

type CreateFunctionRequest struct {
	Name         string `json:"name" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"` // RFC 3339
	EndTime      string `json:"end_time,omitempty"`
	LocationName string `json:"location_name"`
	DressCode    string `json:"dress_code"`
}

type BulkInviteRequest struct {
	GuestIDs    []string `json:"guest_ids" binding:"required"`
	FunctionIDs []string `json:"function_ids" binding:"required"`
}

type MarkSentRequest struct {
	Channel string `json:"channel" binding:"required"` // whatsapp / sms / email
}

type RecordResponseRequest struct {
	Response  string `json:"response" binding:"required"` // yes / no / maybe
	PartySize *int   `json:"party_size,omitempty"`
	Note      string `json:"note"`
}

// PreparedMessage is what the core hands to a channel adapter: plain text
// plus the contact value to deliver it to. The adapter owns the
// whatsapp:// / sms: / mailto: encoding.
type PreparedMessage struct {
	GuestID   string `json:"guest_id"`
	GuestName string `json:"guest_name"`
	Contact   string `json:"contact"`
	Channel   string `json:"channel"`
	Body      string `json:"body"`
}

// BulkSendResult reports a bulk send: one attempt per guest, failures
// counted rather than aborting the batch.
type BulkSendResult struct {
	Prepared []PreparedMessage `json:"prepared"`
	Sent     int               `json:"sent"`
	Failed   int               `json:"failed"`
	Failures []string          `json:"failures,omitempty"`
}
