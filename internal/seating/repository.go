package seating

import (
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🪑 Tables
// ===========================

func (r *Repository) CreateTable(t *SeatingTable) error {
	return r.DB.Create(t).Error
}

func (r *Repository) GetTable(eventID, tableID string) (*SeatingTable, error) {
	var t SeatingTable
	err := r.DB.Where("id = ? AND event_id = ?", tableID, eventID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListTables(eventID string) ([]SeatingTable, error) {
	var tables []SeatingTable
	err := r.DB.Where("event_id = ?", eventID).
		Order("position ASC, created_at ASC").
		Find(&tables).Error
	return tables, err
}

// DeleteTable removes a table and frees its seats in one transaction.
// The guests themselves are untouched; they just become unassigned.
func (r *Repository) DeleteTable(eventID, tableID string) (bool, error) {
	var deleted bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_id = ?", tableID).Delete(&SeatingAssignment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND event_id = ?", tableID, eventID).Delete(&SeatingTable{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ===========================
// 🎫 Assignments
// ===========================

// AssignTx runs fn inside a transaction so the capacity check and the
// write are atomic. On any error the table is left exactly as it was.
func (r *Repository) AssignTx(fn func(tx *gorm.DB) error) error {
	return r.DB.Transaction(fn)
}

func (r *Repository) GetAssignment(eventID, guestID string) (*SeatingAssignment, error) {
	var a SeatingAssignment
	err := r.DB.Where("event_id = ? AND guest_id = ?", eventID, guestID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// CountSeatsUsed counts occupied seats at a table within a transaction.
func CountSeatsUsed(tx *gorm.DB, tableID string) (int64, error) {
	var n int64
	err := tx.Model(&SeatingAssignment{}).Where("table_id = ?", tableID).Count(&n).Error
	return n, err
}

func (r *Repository) RemoveAssignment(eventID, guestID string) (bool, error) {
	res := r.DB.Where("event_id = ? AND guest_id = ?", eventID, guestID).Delete(&SeatingAssignment{})
	return res.RowsAffected > 0, res.Error
}

// SeatedByTable returns all occupants of every table of the event,
// joined against the guest list for names.
func (r *Repository) SeatedByTable(eventID string) (map[string][]SeatedGuest, error) {
	type row struct {
		TableID   string
		GuestID   string
		GuestName string
		Status    string
	}
	var rows []row
	err := r.DB.Table("seating_assignments").
		Select("seating_assignments.table_id, seating_assignments.guest_id, guests.name AS guest_name, guests.status").
		Joins("JOIN guests ON guests.id = seating_assignments.guest_id").
		Where("seating_assignments.event_id = ?", eventID).
		Order("seating_assignments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byTable := make(map[string][]SeatedGuest, len(rows))
	for _, r := range rows {
		byTable[r.TableID] = append(byTable[r.TableID], SeatedGuest{
			GuestID:   r.GuestID,
			GuestName: r.GuestName,
			Status:    r.Status,
		})
	}
	return byTable, nil
}

// UnassignedGuests lists the event's guests that have no seat yet, with
// their party headcount so the planner can pick a big-enough table.
func (r *Repository) UnassignedGuests(eventID string) ([]UnassignedGuest, error) {
	type row struct {
		GuestID      string
		GuestName    string
		Status       string
		PlusOneCount int
		MemberCount  int
	}
	var rows []row
	err := r.DB.Table("guests").
		Select("guests.id AS guest_id, guests.name AS guest_name, guests.status, guests.plus_one_count, COUNT(party_members.id) AS member_count").
		Joins("LEFT JOIN party_members ON party_members.guest_id = guests.id").
		Where("guests.event_id = ?", eventID).
		Where("guests.id NOT IN (?)", r.DB.Table("seating_assignments").Select("guest_id").Where("event_id = ?", eventID)).
		Group("guests.id, guests.name, guests.status, guests.plus_one_count").
		Order("guests.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]UnassignedGuest, 0, len(rows))
	for _, r := range rows {
		extra := r.PlusOneCount
		if r.MemberCount > extra {
			extra = r.MemberCount
		}
		out = append(out, UnassignedGuest{
			GuestID:   r.GuestID,
			GuestName: r.GuestName,
			Status:    r.Status,
			Headcount: 1 + extra,
		})
	}
	return out, nil
}

// GuestExists checks the guest belongs to the event before seating them.
func (r *Repository) GuestExists(eventID, guestID string) (bool, error) {
	var n int64
	err := r.DB.Table("guests").Where("id = ? AND event_id = ?", guestID, eventID).Count(&n).Error
	return n > 0, err
}
