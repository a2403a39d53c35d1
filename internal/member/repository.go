package member

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

func (r *Repository) CreateMember(m *EventMember) error {
	return r.DB.Create(m).Error
}

func (r *Repository) GetMember(eventID, memberID string) (*EventMember, error) {
	var m EventMember
	err := r.DB.Where("id = ? AND event_id = ?", memberID, eventID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repository) GetMemberByCode(code string) (*EventMember, error) {
	var m EventMember
	err := r.DB.Where("invite_code = ?", code).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListMembers(eventID string) ([]EventMember, error) {
	var members []EventMember
	err := r.DB.Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *Repository) UpdateMember(m *EventMember) error {
	return r.DB.Save(m).Error
}

func (r *Repository) DeleteMember(eventID, memberID string) (bool, error) {
	res := r.DB.Where("id = ? AND event_id = ?", memberID, eventID).Delete(&EventMember{})
	return res.RowsAffected > 0, res.Error
}

// EventHostID reads the host straight off the events table.
func (r *Repository) EventHostID(eventID string) (uint, bool, error) {
	var row struct{ HostID uint }
	res := r.DB.Table("events").Select("host_id").Where("id = ?", eventID).Limit(1).Find(&row)
	if res.Error != nil {
		return 0, false, res.Error
	}
	return row.HostID, res.RowsAffected > 0, nil
}

// RoleForUser returns the accepted member role a user holds on an event.
func (r *Repository) RoleForUser(eventID string, userID uint) (string, error) {
	var row struct{ Role string }
	res := r.DB.Table("event_members").
		Select("role").
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, StatusAccepted).
		Limit(1).
		Find(&row)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", nil
	}
	return row.Role, nil
}

func (r *Repository) GetMemberByID(id string) (*EventMember, error) {
	var m EventMember
	err := r.DB.Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
