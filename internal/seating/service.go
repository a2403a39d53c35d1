package seating

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
)

type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// ===========================
// 🪑 Tables
// ===========================

func (s *Service) CreateTable(eventID string, req *CreateTableRequest) (*SeatingTable, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("createTable", "seating table", "name is required")
	}
	if req.Capacity <= 0 {
		return nil, apperrors.Validation("createTable", "seating table", "capacity must be positive")
	}

	t := &SeatingTable{
		ID:       uuid.NewString(),
		EventID:  eventID,
		Name:     name,
		Capacity: req.Capacity,
		Position: req.Position,
	}
	if err := s.Repo.CreateTable(t); err != nil {
		return nil, apperrors.Persistence("createTable", "seating table", err)
	}
	return t, nil
}

// SeatingChart returns every table with its occupants and free-seat count.
func (s *Service) SeatingChart(eventID string) ([]TableView, error) {
	tables, err := s.Repo.ListTables(eventID)
	if err != nil {
		return nil, apperrors.Persistence("seatingChart", "seating table", err)
	}
	byTable, err := s.Repo.SeatedByTable(eventID)
	if err != nil {
		return nil, apperrors.Persistence("seatingChart", "seating assignment", err)
	}

	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		seated := byTable[t.ID]
		if seated == nil {
			seated = []SeatedGuest{}
		}
		views = append(views, TableView{
			SeatingTable: t,
			Seated:       seated,
			SeatsUsed:    len(seated),
			SeatsFree:    t.Capacity - len(seated),
		})
	}
	return views, nil
}

func (s *Service) DeleteTable(eventID, tableID string, userID uint, ip string) error {
	deleted, err := s.Repo.DeleteTable(eventID, tableID)
	if err != nil {
		return apperrors.Persistence("deleteTable", "seating table", err)
	}
	if !deleted {
		return apperrors.NotFound("deleteTable", "seating table", tableID)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "SEATING_TABLE_DELETED",
		map[string]interface{}{"table_id": tableID}, ip, "success")
	return nil
}

// ===========================
// 🎫 Assignments
// ===========================

// AssignGuest seats a guest at a table. Assigning an already-seated guest
// to another table moves them; re-assigning to the same table is a no-op.
// The capacity check and the write share one transaction, so a failed
// assignment leaves the chart untouched.
func (s *Service) AssignGuest(eventID, tableID, guestID string, userID uint, ip string) (*SeatingAssignment, error) {
	table, err := s.Repo.GetTable(eventID, tableID)
	if err != nil {
		return nil, apperrors.Persistence("assignGuest", "seating table", err)
	}
	if table == nil {
		return nil, apperrors.NotFound("assignGuest", "seating table", tableID)
	}

	exists, err := s.Repo.GuestExists(eventID, guestID)
	if err != nil {
		return nil, apperrors.Persistence("assignGuest", "guest", err)
	}
	if !exists {
		return nil, apperrors.NotFound("assignGuest", "guest", guestID)
	}

	var out *SeatingAssignment
	err = s.Repo.AssignTx(func(tx *gorm.DB) error {
		var current SeatingAssignment
		res := tx.Where("event_id = ? AND guest_id = ?", eventID, guestID).Limit(1).Find(&current)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 && current.TableID == tableID {
			out = &current
			return nil
		}

		used, err := CountSeatsUsed(tx, tableID)
		if err != nil {
			return err
		}
		if used >= int64(table.Capacity) {
			return apperrors.Capacity("assignGuest", "seating table", tableID,
				fmt.Sprintf("table %q is full (%d/%d seats)", table.Name, used, table.Capacity))
		}

		if res.RowsAffected > 0 {
			// Move: point the existing assignment at the new table.
			current.TableID = tableID
			if err := tx.Save(&current).Error; err != nil {
				return err
			}
			out = &current
			return nil
		}

		a := &SeatingAssignment{
			ID:      uuid.NewString(),
			EventID: eventID,
			TableID: tableID,
			GuestID: guestID,
		}
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		if apperrors.IsCapacityExceeded(err) {
			return nil, err
		}
		return nil, apperrors.Persistence("assignGuest", "seating assignment", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "GUEST_SEATED",
		map[string]interface{}{"guest_id": guestID, "table_id": tableID}, ip, "success")
	return out, nil
}

// UnassignGuest clears the guest's seat if one exists. A guest with no
// assignment is already in the desired state, so the call succeeds and
// retried removals never fail.
func (s *Service) UnassignGuest(eventID, guestID string, userID uint, ip string) error {
	removed, err := s.Repo.RemoveAssignment(eventID, guestID)
	if err != nil {
		return apperrors.Persistence("unassignGuest", "seating assignment", err)
	}
	if !removed {
		return nil
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "GUEST_UNSEATED",
		map[string]interface{}{"guest_id": guestID}, ip, "success")
	return nil
}

func (s *Service) UnassignedGuests(eventID string) ([]UnassignedGuest, error) {
	guests, err := s.Repo.UnassignedGuests(eventID)
	if err != nil {
		return nil, apperrors.Persistence("unassignedGuests", "guest", err)
	}
	return guests, nil
}
