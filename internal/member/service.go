package member

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/utils"
)

type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// inviteCodeAlphabet drops easily-confused characters (0/O, 1/I/L) since
// codes get read out loud and typed by hand.
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func generateInviteCode() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	for i := range buf {
		buf[i] = inviteCodeAlphabet[int(buf[i])%len(inviteCodeAlphabet)]
	}
	return string(buf)
}

// ===========================
// ✉️ Invite
// ===========================

func (s *Service) InviteMember(eventID string, req *InviteMemberRequest, userID uint, ip string) (*EventMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("inviteMember", "event member", "name is required")
	}
	if !ValidRole(req.Role) {
		return nil, apperrors.Validation("inviteMember", "event member", "role must be admin, manager, or viewer")
	}

	m := &EventMember{
		ID:         uuid.NewString(),
		EventID:    eventID,
		Name:       name,
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Role:       req.Role,
		Status:     StatusPending,
		InviteCode: generateInviteCode(),
	}
	if err := s.Repo.CreateMember(m); err != nil {
		return nil, apperrors.Persistence("inviteMember", "event member", err)
	}

	// Cache the code for quick lookup on accept. A miss falls back to
	// the table, so a cold cache never breaks acceptance.
	utils.CacheInviteCode(context.Background(), m.InviteCode, m.ID, 30*24*time.Hour)

	if m.Email != "" {
		go func(to, code string) {
			body := fmt.Sprintf("You've been invited to help plan an event.\n\nYour invite code: %s\n\nOpen the app and enter the code to join the team.", code)
			if err := utils.SendEmail(to, "You're invited to an event team", body); err != nil {
				log.Printf("⚠️ Invite email to %s failed: %v", to, err)
			}
		}(m.Email, m.InviteCode)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "MEMBER_INVITED",
		map[string]interface{}{"member_id": m.ID, "role": m.Role}, ip, "success")
	return m, nil
}

// ===========================
// ✅ Accept
// ===========================

// AcceptInvite claims a pending invite code for the signed-in user:
// pending → accepted, responded timestamp stamped, and the member row
// linked to the account so role resolution works from then on.
func (s *Service) AcceptInvite(code string, userID uint, ip string) (*EventMember, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.Validation("acceptInvite", "event member", "invite code is required")
	}

	var m *EventMember
	var err error
	if id := utils.LookupInviteCode(context.Background(), code); id != "" {
		m, err = s.Repo.GetMemberByID(id)
	}
	if m == nil && err == nil {
		m, err = s.Repo.GetMemberByCode(code)
	}
	if err != nil {
		return nil, apperrors.Persistence("acceptInvite", "event member", err)
	}
	if m == nil {
		return nil, apperrors.NotFound("acceptInvite", "event member", code)
	}
	if m.Status == StatusAccepted {
		return m, nil
	}

	now := time.Now().UTC()
	m.Status = StatusAccepted
	m.UserID = &userID
	m.RespondedAt = &now
	if err := s.Repo.UpdateMember(m); err != nil {
		return nil, apperrors.Persistence("acceptInvite", "event member", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &m.EventID, "MEMBER_ACCEPTED",
		map[string]interface{}{"member_id": m.ID, "role": m.Role}, ip, "success")
	return m, nil
}

// ===========================
// 🔧 Role / Remove
// ===========================

// ChangeRole swaps the member's role. Deliberately unconstrained by
// status: a pending member's role can be corrected before they accept.
func (s *Service) ChangeRole(eventID, memberID, role string, userID uint, ip string) (*EventMember, error) {
	if !ValidRole(role) {
		return nil, apperrors.Validation("changeRole", "event member", "role must be admin, manager, or viewer")
	}

	m, err := s.Repo.GetMember(eventID, memberID)
	if err != nil {
		return nil, apperrors.Persistence("changeRole", "event member", err)
	}
	if m == nil {
		return nil, apperrors.NotFound("changeRole", "event member", memberID)
	}

	m.Role = role
	if err := s.Repo.UpdateMember(m); err != nil {
		return nil, apperrors.Persistence("changeRole", "event member", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "MEMBER_ROLE_CHANGED",
		map[string]interface{}{"member_id": memberID, "role": role}, ip, "success")
	return m, nil
}

func (s *Service) RemoveMember(eventID, memberID string, userID uint, ip string) error {
	removed, err := s.Repo.DeleteMember(eventID, memberID)
	if err != nil {
		return apperrors.Persistence("removeMember", "event member", err)
	}
	if !removed {
		return apperrors.NotFound("removeMember", "event member", memberID)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "MEMBER_REMOVED",
		map[string]interface{}{"member_id": memberID}, ip, "success")
	return nil
}

func (s *Service) ListMembers(eventID string) ([]MemberView, error) {
	members, err := s.Repo.ListMembers(eventID)
	if err != nil {
		return nil, apperrors.Persistence("listMembers", "event member", err)
	}

	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, MemberView{
			EventMember: m,
			Permissions: RolePermissions[m.Role],
		})
	}
	return views, nil
}

// ===========================
// 🔐 Role Resolution
// ===========================

// ResolveEventRole maps (event, user) to an event-scoped role for the
// access middleware. The host outranks any membership row.
func (s *Service) ResolveEventRole(eventID string, userID uint) (string, error) {
	hostID, found, err := s.Repo.EventHostID(eventID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperrors.NotFound("resolveRole", "event", eventID)
	}
	if hostID == userID {
		return "host", nil
	}
	return s.Repo.RoleForUser(eventID, userID)
}
