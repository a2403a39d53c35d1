package function

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateFunction(f *EventFunction) error
	GetFunction(eventID, functionID string) (*EventFunction, error)
	ListFunctions(eventID string) ([]EventFunction, error)
	UpdateFunction(f *EventFunction) error
	DeleteFunctionCascade(eventID, functionID string) error

	UpsertInvite(inv *FunctionInvite) error
	UpsertInvitesTx(invites []FunctionInvite) error
	GetInviteByID(inviteID string) (*FunctionInvite, error)
	GetInvite(functionID, guestID string) (*FunctionInvite, error)
	ListInvitesByFunction(functionID string) ([]FunctionInvite, error)
	ListInvitesByGuest(guestID string) ([]FunctionInvite, error)
	SaveInvite(inv *FunctionInvite) error

	GuestContact(eventID, guestID string) (*GuestContact, error)
	GuestContacts(eventID string, guestIDs []string) ([]GuestContact, error)
	EventInfo(eventID string) (*EventInfo, error)
}

// GuestContact is the slice of the guest row the invite flow needs:
// identity, reachable contact values and headcount inputs.
type GuestContact struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PlusOneCount int
	MemberCount  int
}

// Headcount mirrors the guest aggregate rule: 1 + max(count, members).
func (g GuestContact) Headcount() int {
	extra := g.PlusOneCount
	if g.MemberCount > extra {
		extra = g.MemberCount
	}
	return 1 + extra
}

// EventInfo is the event slice embedded in invite messages.
type EventInfo struct {
	ID           string
	Title        string
	LocationName string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🔹 Functions

func (r *repository) CreateFunction(f *EventFunction) error {
	return r.db.Create(f).Error
}

func (r *repository) GetFunction(eventID, functionID string) (*EventFunction, error) {
	var f EventFunction
	err := r.db.Where("id = ? AND event_id = ?", functionID, eventID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) ListFunctions(eventID string) ([]EventFunction, error) {
	var fs []EventFunction
	err := r.db.Where("event_id = ?", eventID).Order("start_time ASC").Find(&fs).Error
	return fs, err
}

func (r *repository) UpdateFunction(f *EventFunction) error {
	return r.db.Save(f).Error
}

func (r *repository) DeleteFunctionCascade(eventID, functionID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("function_id = ?", functionID).Delete(&FunctionInvite{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND event_id = ?", functionID, eventID).Delete(&EventFunction{}).Error
	})
}

// ===========================
// 🔹 Invites: insert-or-ignore on the (function, guest) key, so calling
// create any number of times yields exactly one row.

func (r *repository) UpsertInvite(inv *FunctionInvite) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "function_id"}, {Name: "guest_id"}},
		DoNothing: true,
	}).Create(inv).Error
}

func (r *repository) UpsertInvitesTx(invites []FunctionInvite) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range invites {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "function_id"}, {Name: "guest_id"}},
				DoNothing: true,
			}).Create(&invites[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetInviteByID(inviteID string) (*FunctionInvite, error) {
	var inv FunctionInvite
	if err := r.db.Where("id = ?", inviteID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) GetInvite(functionID, guestID string) (*FunctionInvite, error) {
	var inv FunctionInvite
	err := r.db.Where("function_id = ? AND guest_id = ?", functionID, guestID).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) ListInvitesByFunction(functionID string) ([]FunctionInvite, error) {
	var invs []FunctionInvite
	err := r.db.Where("function_id = ?", functionID).Order("created_at ASC").Find(&invs).Error
	return invs, err
}

func (r *repository) ListInvitesByGuest(guestID string) ([]FunctionInvite, error) {
	var invs []FunctionInvite
	err := r.db.Where("guest_id = ?", guestID).Order("created_at ASC").Find(&invs).Error
	return invs, err
}

func (r *repository) SaveInvite(inv *FunctionInvite) error {
	return r.db.Save(inv).Error
}

// ===========================
// 🔎 Read models off neighbouring tables

func (r *repository) GuestContact(eventID, guestID string) (*GuestContact, error) {
	contacts, err := r.GuestContacts(eventID, []string{guestID})
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &contacts[0], nil
}

func (r *repository) GuestContacts(eventID string, guestIDs []string) ([]GuestContact, error) {
	var contacts []GuestContact
	query := r.db.Table("guests g").
		Select("g.id, g.name, g.email, g.phone, g.plus_one_count, COUNT(pm.id) AS member_count").
		Joins("LEFT JOIN party_members pm ON pm.guest_id = g.id").
		Where("g.event_id = ?", eventID).
		Group("g.id, g.name, g.email, g.phone, g.plus_one_count")
	if len(guestIDs) > 0 {
		query = query.Where("g.id IN ?", guestIDs)
	}
	err := query.Scan(&contacts).Error
	return contacts, err
}

func (r *repository) EventInfo(eventID string) (*EventInfo, error) {
	var info EventInfo
	err := r.db.Table("events").
		Select("id, title, location_name").
		Where("id = ?", eventID).
		Scan(&info).Error
	if err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &info, nil
}
