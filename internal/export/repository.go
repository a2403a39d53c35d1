package export

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// UserProfile pulls the exporting account's identity row.
func (r *Repository) UserProfile(userID uint) (*Profile, error) {
	var row struct {
		ID       uint
		FullName string
		Email    string
	}
	res := r.DB.Table("users").
		Select("id, full_name, email").
		Where("id = ?", userID).
		Limit(1).
		Find(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &Profile{ID: row.ID, Name: row.FullName, Email: row.Email}, nil
}

// HostedEvents returns every event the user hosts, with guest counts
// and the function list attached.
func (r *Repository) HostedEvents(userID uint) ([]HostedEvent, error) {
	type evRow struct {
		ID           string
		Title        string
		Description  string
		Category     string
		StartTime    time.Time
		EndTime      *time.Time
		LocationName string
		Privacy      string
		CreatedAt    time.Time
		GuestCount   int
	}
	var evs []evRow
	err := r.DB.Table("events").
		Select(`events.id, events.title, events.description, events.category,
			events.start_time, events.end_time, events.location_name, events.privacy,
			events.created_at, COUNT(guests.id) AS guest_count`).
		Joins("LEFT JOIN guests ON guests.event_id = events.id").
		Where("events.host_id = ?", userID).
		Group(`events.id, events.title, events.description, events.category,
			events.start_time, events.end_time, events.location_name, events.privacy, events.created_at`).
		Order("events.start_time ASC").
		Scan(&evs).Error
	if err != nil {
		return nil, err
	}

	out := make([]HostedEvent, 0, len(evs))
	for _, ev := range evs {
		var fns []HostedFunction
		err := r.DB.Table("event_functions").
			Select("id, name, start_time, end_time").
			Where("event_id = ?", ev.ID).
			Order("start_time ASC").
			Scan(&fns).Error
		if err != nil {
			return nil, err
		}
		if fns == nil {
			fns = []HostedFunction{}
		}
		out = append(out, HostedEvent{
			ID:           ev.ID,
			Title:        ev.Title,
			Description:  ev.Description,
			Category:     ev.Category,
			StartTime:    ev.StartTime,
			EndTime:      ev.EndTime,
			LocationName: ev.LocationName,
			Privacy:      ev.Privacy,
			CreatedAt:    ev.CreatedAt,
			GuestCount:   ev.GuestCount,
			Functions:    fns,
		})
	}
	return out, nil
}

// AttendingEvents lists events where the user appears on the guest list
// of someone else's event.
func (r *Repository) AttendingEvents(userID uint) ([]AttendingEvent, error) {
	var rows []AttendingEvent
	err := r.DB.Table("guests").
		Select("events.title, events.start_time AS date, guests.status AS rsvp_status, guests.responded_at").
		Joins("JOIN events ON events.id = guests.event_id").
		Where("guests.user_id = ? AND events.host_id <> ?", userID, userID).
		Order("events.start_time ASC").
		Scan(&rows).Error
	return rows, err
}

// Tickets lists the user's attending guest records; the service turns
// them into deep links.
func (r *Repository) Tickets(userID uint) ([]Ticket, error) {
	var rows []Ticket
	err := r.DB.Table("guests").
		Select("guests.event_id, events.title AS event_title, guests.id AS guest_id").
		Joins("JOIN events ON events.id = guests.event_id").
		Where("guests.user_id = ? AND guests.status = ?", userID, "attending").
		Order("events.start_time ASC").
		Scan(&rows).Error
	return rows, err
}

// GuestRows flattens the guest list for the spreadsheet export.
func (r *Repository) GuestRows(eventID string) ([]GuestRow, error) {
	type row struct {
		Name         string
		Email        string
		Phone        string
		Status       string
		Role         string
		PlusOneCount int
		MemberCount  int
		MealChoice   string
		RespondedAt  *time.Time
	}
	var rows []row
	err := r.DB.Table("guests").
		Select(`guests.name, guests.email, guests.phone, guests.status, guests.role,
			guests.plus_one_count, COUNT(party_members.id) AS member_count,
			guests.meal_choice, guests.responded_at`).
		Joins("LEFT JOIN party_members ON party_members.guest_id = guests.id").
		Where("guests.event_id = ?", eventID).
		Group(`guests.id, guests.name, guests.email, guests.phone, guests.status, guests.role,
			guests.plus_one_count, guests.meal_choice, guests.responded_at`).
		Order("guests.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]GuestRow, 0, len(rows))
	for _, g := range rows {
		extra := g.PlusOneCount
		if g.MemberCount > extra {
			extra = g.MemberCount
		}
		out = append(out, GuestRow{
			Name:         g.Name,
			Email:        g.Email,
			Phone:        g.Phone,
			Status:       g.Status,
			Role:         g.Role,
			PlusOneCount: g.PlusOneCount,
			PartySize:    1 + extra,
			MealChoice:   g.MealChoice,
			RespondedAt:  g.RespondedAt,
		})
	}
	return out, nil
}

// EventTitle reads a title for file naming.
func (r *Repository) EventTitle(eventID string) (string, error) {
	var title string
	err := r.DB.Table("events").Where("id = ?", eventID).Pluck("title", &title).Error
	return title, err
}
