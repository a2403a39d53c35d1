package guest

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Guest
func (r *Repository) CreateGuest(g *Guest) error {
	return r.DB.Create(g).Error
}

// ===========================
// 🔍 Get guest by id within an event
func (r *Repository) GetGuest(eventID, guestID string) (*Guest, error) {
	var g Guest
	err := r.DB.Preload("PartyMembers", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ? AND event_id = ?", guestID, eventID).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ===========================
// 📄 List guests of an event
func (r *Repository) ListGuests(eventID string, status string) ([]Guest, error) {
	var guests []Guest
	query := r.DB.Preload("PartyMembers", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at ASC").Find(&guests).Error
	return guests, err
}

// ===========================
// 🛠 Update guest
func (r *Repository) UpdateGuest(g *Guest) error {
	return r.DB.Save(g).Error
}

// ===========================
// ❌ Remove guest plus everything keyed to it: party members, function
// invites across every function of the event, seating assignment. One
// transaction so nothing is left dangling.
func (r *Repository) RemoveGuestCascade(eventID, guestID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			`DELETE FROM party_members WHERE guest_id = ?`,
			`DELETE FROM function_invites WHERE guest_id = ?`,
			`DELETE FROM seating_assignments WHERE guest_id = ?`,
		}
		for _, stmt := range stmts {
			if err := tx.Exec(stmt, guestID).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ? AND event_id = ?", guestID, eventID).Delete(&Guest{}).Error
	})
}

// ===========================
// 👥 Party members
func (r *Repository) AddPartyMember(m *PartyMember) error {
	return r.DB.Create(m).Error
}

func (r *Repository) RemovePartyMember(guestID, memberID string) (int64, error) {
	res := r.DB.Where("id = ? AND guest_id = ?", memberID, guestID).Delete(&PartyMember{})
	return res.RowsAffected, res.Error
}

func (r *Repository) NextPartyMemberPosition(guestID string) (int, error) {
	var max *int
	err := r.DB.Table("party_members").
		Select("MAX(position)").
		Where("guest_id = ?", guestID).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// ===========================
// 🔎 Event title lookup for notification payloads
func (r *Repository) GetEventTitle(eventID string) (string, error) {
	var title string
	err := r.DB.Table("events").Select("title").Where("id = ?", eventID).Scan(&title).Error
	return title, err
}
