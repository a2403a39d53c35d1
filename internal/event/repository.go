package event

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

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID
func (r *Repository) GetEventByID(id string) (*Event, error) {
	var e Event
	err := r.DB.Where("id = ?", id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 List events hosted by a user
func (r *Repository) ListEventsByHost(hostID uint, limit, offset int, search string) ([]Event, error) {
	var events []Event

	query := r.DB.Where("host_id = ?", hostID)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	err := query.
		Order("start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Update Event with optimistic concurrency: the write only lands if
// nobody has committed since the caller read the row.
func (r *Repository) UpdateEvent(e *Event, expectedUpdatedAt time.Time) (bool, error) {
	res := r.DB.Model(&Event{}).
		Where("id = ? AND updated_at = ?", e.ID, expectedUpdatedAt).
		Updates(map[string]interface{}{
			"title":         e.Title,
			"description":   e.Description,
			"category":      e.Category,
			"privacy":       e.Privacy,
			"location_name": e.LocationName,
			"start_time":    e.StartTime,
			"end_time":      e.EndTime,
			"capacity":      e.Capacity,
			"features":      e.Features,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ===========================
// ❌ Delete Event with full cascade, all-or-nothing. Raw deletes keep the
// ordering explicit: leaves first, root last.
func (r *Repository) DeleteEventCascade(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			`DELETE FROM function_invites WHERE function_id IN (SELECT id FROM event_functions WHERE event_id = ?)`,
			`DELETE FROM event_functions WHERE event_id = ?`,
			`DELETE FROM party_members WHERE guest_id IN (SELECT id FROM guests WHERE event_id = ?)`,
			`DELETE FROM seating_assignments WHERE event_id = ?`,
			`DELETE FROM seating_tables WHERE event_id = ?`,
			`DELETE FROM expenses WHERE category_id IN (SELECT id FROM budget_categories WHERE budget_id IN (SELECT id FROM budgets WHERE event_id = ?))`,
			`DELETE FROM budget_categories WHERE budget_id IN (SELECT id FROM budgets WHERE event_id = ?)`,
			`DELETE FROM payment_splits WHERE budget_id IN (SELECT id FROM budgets WHERE event_id = ?)`,
			`DELETE FROM budgets WHERE event_id = ?`,
			`DELETE FROM event_members WHERE event_id = ?`,
			`DELETE FROM guests WHERE event_id = ?`,
			`DELETE FROM events WHERE id = ?`,
		}
		for _, stmt := range stmts {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ===========================
// 📊 RSVP status counts straight off the guest table, never cached.
func (r *Repository) CountGuestsByStatus(eventID string) (map[string]int, error) {
	type row struct {
		Status string
		N      int
	}
	var rows []row
	err := r.DB.Table("guests").
		Select("status, COUNT(*) AS n").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}

// ===========================
// 🔢 Per-guest headcount inputs. Headcount is 1 + max(plus_one_count,
// named party members), so both values come back per guest.
type headcountRow struct {
	PlusOneCount int
	MemberCount  int
}

func (r *Repository) GuestHeadcountRows(eventID string) ([]headcountRow, error) {
	var rows []headcountRow
	err := r.DB.Table("guests g").
		Select("g.plus_one_count AS plus_one_count, COUNT(pm.id) AS member_count").
		Joins("LEFT JOIN party_members pm ON pm.guest_id = g.id").
		Where("g.event_id = ?", eventID).
		Group("g.id, g.plus_one_count").
		Scan(&rows).Error
	return rows, err
}
