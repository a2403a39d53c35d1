package guest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/utils"
)

// Service wraps party-composition logic: who is invited, how many people
// each invitation represents, and the event-level RSVP.
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

var validStatus = map[string]bool{
	StatusPending:    true,
	StatusAttending:  true,
	StatusMaybe:      true,
	StatusDeclined:   true,
	StatusWaitlisted: true,
}

var validRole = map[string]bool{RoleGuest: true, RoleVIP: true, RoleCohost: true}

// ===========================
// 🎯 Add Guest
func (s *Service) AddGuest(eventID string, req *AddGuestRequest, userID uint, ip string) (*Guest, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("addGuest", "guest", "name is required")
	}
	if req.PlusOneCount < 0 {
		return nil, apperrors.Validation("addGuest", "guest", "plus_one_count cannot be negative")
	}

	role := req.Role
	if role == "" {
		role = RoleGuest
	}
	if !validRole[role] {
		return nil, apperrors.Validation("addGuest", "guest", "role must be guest, vip or cohost")
	}

	g := &Guest{
		ID:           uuid.NewString(),
		EventID:      eventID,
		Name:         name,
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Status:       StatusPending,
		Role:         role,
		PlusOneCount: req.PlusOneCount,
		MealChoice:   req.MealChoice,
		DietaryNotes: req.DietaryNotes,
		Notes:        req.Notes,
	}

	if err := s.Repo.CreateGuest(g); err != nil {
		return nil, apperrors.Persistence("addGuest", "guest", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "GUEST_ADDED",
		map[string]interface{}{"guest_id": g.ID, "name": g.Name, "role": g.Role}, ip, "success")

	return g, nil
}

// ===========================
// 🙋 Set event-level RSVP. Idempotent: repeating the same status just
// refreshes the response timestamp, it never duplicates anything.
func (s *Service) SetRSVP(eventID, guestID string, req *SetRSVPRequest, ip string) (*Guest, error) {
	if !validStatus[req.Status] {
		return nil, apperrors.Validation("setRSVP", "guest", "invalid RSVP status")
	}
	if req.PlusOneCount != nil && *req.PlusOneCount < 0 {
		return nil, apperrors.Validation("setRSVP", "guest", "plus_one_count cannot be negative")
	}

	g, err := s.getGuest(eventID, guestID, "setRSVP")
	if err != nil {
		return nil, err
	}

	g.Status = req.Status
	if req.PlusOneCount != nil {
		g.PlusOneCount = *req.PlusOneCount
	}
	if req.Status == StatusPending {
		g.RespondedAt = nil
	} else {
		now := time.Now().UTC()
		g.RespondedAt = &now
	}

	if err := s.Repo.UpdateGuest(g); err != nil {
		return nil, apperrors.Persistence("setRSVP", "guest", err)
	}

	s.AuditSvc.LogAction(context.Background(), nil, &eventID, "RSVP_RECORDED",
		map[string]interface{}{"guest_id": g.ID, "status": g.Status}, ip, "success")

	// Notification trigger: the host's team learns about the response.
	if g.Status != StatusPending {
		title, _ := s.Repo.GetEventTitle(eventID)
		utils.PublishRSVPEvent(context.Background(), utils.RSVPEvent{
			EventID:    eventID,
			EventTitle: title,
			GuestID:    g.ID,
			GuestName:  g.Name,
			Response:   g.Status,
			PartySize:  g.TotalHeadcount(),
			OccurredAt: time.Now().UTC(),
		})
	}

	return g, nil
}

// ===========================
// 👥 Add Party Member. Headcount is never stored; it is recomputed from
// the member list on read.
func (s *Service) AddPartyMember(eventID, guestID string, req *AddPartyMemberRequest, ip string) (*PartyMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("addPartyMember", "partyMember", "name is required")
	}

	if _, err := s.getGuest(eventID, guestID, "addPartyMember"); err != nil {
		return nil, err
	}

	pos, err := s.Repo.NextPartyMemberPosition(guestID)
	if err != nil {
		return nil, apperrors.Persistence("addPartyMember", "partyMember", err)
	}

	m := &PartyMember{
		ID:           uuid.NewString(),
		GuestID:      guestID,
		Name:         name,
		Relationship: req.Relationship,
		DietaryNote:  req.DietaryNote,
		Position:     pos,
	}

	if err := s.Repo.AddPartyMember(m); err != nil {
		return nil, apperrors.Persistence("addPartyMember", "partyMember", err)
	}

	return m, nil
}

// ===========================
// 👥 Remove Party Member
func (s *Service) RemovePartyMember(eventID, guestID, memberID string) error {
	if _, err := s.getGuest(eventID, guestID, "removePartyMember"); err != nil {
		return err
	}

	n, err := s.Repo.RemovePartyMember(guestID, memberID)
	if err != nil {
		return apperrors.Persistence("removePartyMember", "partyMember", err)
	}
	if n == 0 {
		return apperrors.NotFound("removePartyMember", "partyMember", memberID)
	}
	return nil
}

// ===========================
// ❌ Remove Guest (cascades invites and seating)
func (s *Service) RemoveGuest(eventID, guestID string, userID uint, ip string) error {
	g, err := s.getGuest(eventID, guestID, "removeGuest")
	if err != nil {
		return err
	}

	if err := s.Repo.RemoveGuestCascade(eventID, guestID); err != nil {
		s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "GUEST_REMOVED",
			map[string]interface{}{"guest_id": guestID, "error": err.Error()}, ip, "failure")
		return apperrors.Persistence("removeGuest", "guest", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "GUEST_REMOVED",
		map[string]interface{}{"guest_id": guestID, "name": g.Name}, ip, "success")
	return nil
}

// ===========================
// 🔍 Reads
func (s *Service) GetGuest(eventID, guestID string) (*Guest, error) {
	return s.getGuest(eventID, guestID, "getGuest")
}

func (s *Service) ListGuests(eventID, status string) ([]Guest, error) {
	if status != "" && !validStatus[status] {
		return nil, apperrors.Validation("listGuests", "guest", "invalid RSVP status filter")
	}
	return s.Repo.ListGuests(eventID, status)
}

func (s *Service) getGuest(eventID, guestID, op string) (*Guest, error) {
	g, err := s.Repo.GetGuest(eventID, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "guest", guestID)
		}
		return nil, err
	}
	return g, nil
}
