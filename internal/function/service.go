package function

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/config"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/utils"
)

type Service interface {
	CreateFunction(eventID string, req *CreateFunctionRequest, userID uint, ip string) (*EventFunction, error)
	GetFunction(eventID, functionID string) (*EventFunction, error)
	ListFunctions(eventID string) ([]EventFunction, error)
	DeleteFunction(eventID, functionID string, userID uint, ip string) error

	CreateInvite(eventID, functionID, guestID string) (*FunctionInvite, error)
	BulkInvite(eventID string, req *BulkInviteRequest, userID uint, ip string) ([]FunctionInvite, error)
	MarkSent(eventID, inviteID, channel string) (*FunctionInvite, error)
	RecordResponse(eventID, inviteID string, req *RecordResponseRequest, ip string) (*FunctionInvite, error)
	SubmitGuestResponse(eventID, guestID, functionID string, req *RecordResponseRequest, ip string) (*FunctionInvite, error)
	ListInvites(eventID, functionID string) ([]FunctionInvite, error)
	GuestInvites(eventID, guestID string) ([]FunctionInvite, error)

	PrepareBulkSend(ctx context.Context, eventID string, functionIDs []string, channel string, userID uint, ip string) (*BulkSendResult, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	cfg      *config.Config
}

func NewService(repo Repository, auditSvc auditlog.Service, cfg *config.Config) Service {
	return &service{repo: repo, auditSvc: auditSvc, cfg: cfg}
}

var validChannel = map[string]bool{"whatsapp": true, "sms": true, "email": true}
var validResponse = map[string]bool{ResponseYes: true, ResponseNo: true, ResponseMaybe: true}

// ==============================
// Functions (sub-events)
// ==============================

func (s *service) CreateFunction(eventID string, req *CreateFunctionRequest, userID uint, ip string) (*EventFunction, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("createFunction", "function", "name is required")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("createFunction", "function", "invalid start_time, use RFC 3339")
	}

	var endPtr *time.Time
	if req.EndTime != "" {
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return nil, apperrors.Validation("createFunction", "function", "invalid end_time, use RFC 3339")
		}
		endPtr = &end
	}

	f := &EventFunction{
		ID:           uuid.NewString(),
		EventID:      eventID,
		Name:         name,
		StartTime:    start,
		EndTime:      endPtr,
		LocationName: req.LocationName,
		DressCode:    req.DressCode,
	}

	if err := s.repo.CreateFunction(f); err != nil {
		return nil, apperrors.Persistence("createFunction", "function", err)
	}

	s.auditSvc.LogAction(context.Background(), &userID, &eventID, "FUNCTION_CREATED",
		map[string]interface{}{"function_id": f.ID, "name": f.Name}, ip, "success")

	return f, nil
}

func (s *service) GetFunction(eventID, functionID string) (*EventFunction, error) {
	f, err := s.repo.GetFunction(eventID, functionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("getFunction", "function", functionID)
		}
		return nil, apperrors.Persistence("getFunction", "function", err)
	}
	return f, nil
}

func (s *service) ListFunctions(eventID string) ([]EventFunction, error) {
	return s.repo.ListFunctions(eventID)
}

func (s *service) DeleteFunction(eventID, functionID string, userID uint, ip string) error {
	if _, err := s.GetFunction(eventID, functionID); err != nil {
		return err
	}
	if err := s.repo.DeleteFunctionCascade(eventID, functionID); err != nil {
		return apperrors.Persistence("deleteFunction", "function", err)
	}
	s.auditSvc.LogAction(context.Background(), &userID, &eventID, "FUNCTION_DELETED",
		map[string]interface{}{"function_id": functionID}, ip, "success")
	return nil
}

// ==============================
// Invites
// ==============================

// CreateInvite is idempotent: the (guest, function) pair gets exactly one
// invite no matter how many times this runs. Party size defaults to the
// guest's event-level headcount on first creation.
func (s *service) CreateInvite(eventID, functionID, guestID string) (*FunctionInvite, error) {
	if _, err := s.GetFunction(eventID, functionID); err != nil {
		return nil, err
	}

	contact, err := s.repo.GuestContact(eventID, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("createInvite", "guest", guestID)
		}
		return nil, apperrors.Persistence("createInvite", "guest", err)
	}

	inv := &FunctionInvite{
		ID:         uuid.NewString(),
		FunctionID: functionID,
		GuestID:    guestID,
		Status:     InviteNotSent,
		PartySize:  contact.Headcount(),
	}
	if err := s.repo.UpsertInvite(inv); err != nil {
		return nil, apperrors.Persistence("createInvite", "invite", err)
	}

	// The upsert may have been a no-op against an existing row; read back
	// the canonical one either way.
	out, err := s.repo.GetInvite(functionID, guestID)
	if err != nil {
		return nil, apperrors.Persistence("createInvite", "invite", err)
	}
	return out, nil
}

// BulkInvite creates invites for every (guest, function) combination in a
// single transaction. Existing pairs are untouched.
func (s *service) BulkInvite(eventID string, req *BulkInviteRequest, userID uint, ip string) ([]FunctionInvite, error) {
	if len(req.GuestIDs) == 0 || len(req.FunctionIDs) == 0 {
		return nil, apperrors.Validation("bulkInvite", "invite", "guest_ids and function_ids must be non-empty")
	}

	contacts, err := s.repo.GuestContacts(eventID, req.GuestIDs)
	if err != nil {
		return nil, apperrors.Persistence("bulkInvite", "guest", err)
	}
	headcounts := make(map[string]int, len(contacts))
	for _, ct := range contacts {
		headcounts[ct.ID] = ct.Headcount()
	}

	var invites []FunctionInvite
	for _, fid := range req.FunctionIDs {
		if _, err := s.GetFunction(eventID, fid); err != nil {
			return nil, err
		}
		for _, gid := range req.GuestIDs {
			hc, ok := headcounts[gid]
			if !ok {
				return nil, apperrors.NotFound("bulkInvite", "guest", gid)
			}
			invites = append(invites, FunctionInvite{
				ID:         uuid.NewString(),
				FunctionID: fid,
				GuestID:    gid,
				Status:     InviteNotSent,
				PartySize:  hc,
			})
		}
	}

	if err := s.repo.UpsertInvitesTx(invites); err != nil {
		return nil, apperrors.Persistence("bulkInvite", "invite", err)
	}

	s.auditSvc.LogAction(context.Background(), &userID, &eventID, "INVITES_CREATED",
		map[string]interface{}{"guests": len(req.GuestIDs), "functions": len(req.FunctionIDs)}, ip, "success")

	var out []FunctionInvite
	for _, fid := range req.FunctionIDs {
		for _, gid := range req.GuestIDs {
			inv, err := s.repo.GetInvite(fid, gid)
			if err != nil {
				return nil, err
			}
			out = append(out, *inv)
		}
	}
	return out, nil
}

// MarkSent records delivery. Re-sending just refreshes channel and
// timestamp: last write wins.
func (s *service) MarkSent(eventID, inviteID, channel string) (*FunctionInvite, error) {
	if !validChannel[channel] {
		return nil, apperrors.Validation("markSent", "invite", "channel must be whatsapp, sms or email")
	}

	inv, err := s.getInviteInEvent(eventID, inviteID, "markSent")
	if err != nil {
		return nil, err
	}
	if inv.Status == InviteResponded {
		return nil, apperrors.Validation("markSent", "invite", "invite already responded")
	}

	now := time.Now().UTC()
	inv.Status = InviteSent
	inv.SentAt = &now
	inv.SentChannel = channel

	if err := s.repo.SaveInvite(inv); err != nil {
		return nil, apperrors.Persistence("markSent", "invite", err)
	}
	return inv, nil
}

// RecordResponse moves any state to responded, overwriting a previous
// response in place. A decline always means zero attendees.
func (s *service) RecordResponse(eventID, inviteID string, req *RecordResponseRequest, ip string) (*FunctionInvite, error) {
	inv, err := s.getInviteInEvent(eventID, inviteID, "recordResponse")
	if err != nil {
		return nil, err
	}
	return s.applyResponse(eventID, inv, req, ip)
}

// SubmitGuestResponse is the self-service path behind the RSVP deep link:
// the invite is addressed by (guest, function) and created on the fly if
// the host never explicitly invited the guest to the function.
func (s *service) SubmitGuestResponse(eventID, guestID, functionID string, req *RecordResponseRequest, ip string) (*FunctionInvite, error) {
	inv, err := s.CreateInvite(eventID, functionID, guestID)
	if err != nil {
		return nil, err
	}
	return s.applyResponse(eventID, inv, req, ip)
}

func (s *service) applyResponse(eventID string, inv *FunctionInvite, req *RecordResponseRequest, ip string) (*FunctionInvite, error) {
	if !validResponse[req.Response] {
		return nil, apperrors.Validation("recordResponse", "invite", "response must be yes, no or maybe")
	}

	partySize := inv.PartySize
	if req.PartySize != nil {
		if *req.PartySize < 0 {
			return nil, apperrors.Validation("recordResponse", "invite", "party_size cannot be negative")
		}
		partySize = *req.PartySize
	}
	if req.Response == ResponseNo {
		partySize = 0
	}

	now := time.Now().UTC()
	response := req.Response
	inv.Status = InviteResponded
	inv.Response = &response
	inv.PartySize = partySize
	inv.Note = req.Note
	inv.RespondedAt = &now

	if err := s.repo.SaveInvite(inv); err != nil {
		return nil, apperrors.Persistence("recordResponse", "invite", err)
	}

	s.auditSvc.LogAction(context.Background(), nil, &eventID, "FUNCTION_RSVP_RECORDED",
		map[string]interface{}{"invite_id": inv.ID, "response": response, "party_size": partySize}, ip, "success")

	// Notification trigger for the host's team.
	info, infoErr := s.repo.EventInfo(eventID)
	fn, fnErr := s.repo.GetFunction(eventID, inv.FunctionID)
	if infoErr == nil && fnErr == nil {
		contact, err := s.repo.GuestContact(eventID, inv.GuestID)
		guestName := ""
		if err == nil {
			guestName = contact.Name
		}
		utils.PublishRSVPEvent(context.Background(), utils.RSVPEvent{
			EventID:      eventID,
			EventTitle:   info.Title,
			GuestID:      inv.GuestID,
			GuestName:    guestName,
			FunctionID:   fn.ID,
			FunctionName: fn.Name,
			Response:     response,
			PartySize:    partySize,
			OccurredAt:   now,
		})
	}

	return inv, nil
}

func (s *service) ListInvites(eventID, functionID string) ([]FunctionInvite, error) {
	if _, err := s.GetFunction(eventID, functionID); err != nil {
		return nil, err
	}
	return s.repo.ListInvitesByFunction(functionID)
}

// GuestInvites returns every function invite for one guest: the payload
// behind the guest-facing RSVP page.
func (s *service) GuestInvites(eventID, guestID string) ([]FunctionInvite, error) {
	if _, err := s.repo.GuestContact(eventID, guestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("guestInvites", "guest", guestID)
		}
		return nil, apperrors.Persistence("guestInvites", "guest", err)
	}
	return s.repo.ListInvitesByGuest(guestID)
}

// ==============================
// Bulk send
// ==============================

// PrepareBulkSend walks the guests invited to the selected functions and
// prepares one message per guest, marking their invites sent. A guest
// without a usable contact for the channel is counted as a failure and the
// loop moves on; cancellation is honoured between guests so an abandoned
// batch never corrupts invites already committed.
func (s *service) PrepareBulkSend(ctx context.Context, eventID string, functionIDs []string, channel string, userID uint, ip string) (*BulkSendResult, error) {
	if !validChannel[channel] {
		return nil, apperrors.Validation("bulkSend", "invite", "channel must be whatsapp, sms or email")
	}

	info, err := s.repo.EventInfo(eventID)
	if err != nil {
		return nil, apperrors.NotFound("bulkSend", "event", eventID)
	}

	var functions []EventFunction
	guestFunctions := make(map[string][]EventFunction)
	guestInvites := make(map[string][]*FunctionInvite)

	for _, fid := range functionIDs {
		f, err := s.GetFunction(eventID, fid)
		if err != nil {
			return nil, err
		}
		functions = append(functions, *f)

		invites, err := s.repo.ListInvitesByFunction(fid)
		if err != nil {
			return nil, apperrors.Persistence("bulkSend", "invite", err)
		}
		for i := range invites {
			inv := &invites[i]
			guestFunctions[inv.GuestID] = append(guestFunctions[inv.GuestID], *f)
			guestInvites[inv.GuestID] = append(guestInvites[inv.GuestID], inv)
		}
	}

	guestIDs := make([]string, 0, len(guestFunctions))
	for gid := range guestFunctions {
		guestIDs = append(guestIDs, gid)
	}
	contacts, err := s.repo.GuestContacts(eventID, guestIDs)
	if err != nil {
		return nil, apperrors.Persistence("bulkSend", "guest", err)
	}
	contactByID := make(map[string]GuestContact, len(contacts))
	for _, ct := range contacts {
		contactByID[ct.ID] = ct
	}

	result := &BulkSendResult{}
	for _, gid := range guestIDs {
		// One suspension point per guest: a cancelled batch stops here,
		// leaving already-sent invites committed.
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ct, ok := contactByID[gid]
		if !ok {
			result.Failed++
			result.Failures = append(result.Failures, gid+": guest not found")
			continue
		}

		target := ct.Phone
		if channel == "email" {
			target = ct.Email
		}
		if target == "" {
			result.Failed++
			result.Failures = append(result.Failures, gid+": no "+channel+" contact")
			continue
		}

		rsvpLink := utils.RSVPLink(s.cfg.AppScheme, eventID, gid)
		body := BuildInviteMessage(ct.Name, info, guestFunctions[gid], rsvpLink, s.cfg.AppInstallURL)

		now := time.Now().UTC()
		sendFailed := false
		for _, inv := range guestInvites[gid] {
			if inv.Status == InviteResponded {
				continue
			}
			inv.Status = InviteSent
			inv.SentAt = &now
			inv.SentChannel = channel
			if err := s.repo.SaveInvite(inv); err != nil {
				sendFailed = true
				result.Failures = append(result.Failures, gid+": "+err.Error())
				break
			}
		}
		if sendFailed {
			result.Failed++
			continue
		}

		result.Prepared = append(result.Prepared, PreparedMessage{
			GuestID:   gid,
			GuestName: ct.Name,
			Contact:   target,
			Channel:   channel,
			Body:      body,
		})
		result.Sent++
	}

	s.auditSvc.LogAction(context.Background(), &userID, &eventID, "INVITES_SENT",
		map[string]interface{}{"channel": channel, "sent": result.Sent, "failed": result.Failed}, ip, "success")

	return result, nil
}

func (s *service) getInviteInEvent(eventID, inviteID, op string) (*FunctionInvite, error) {
	inv, err := s.repo.GetInviteByID(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "invite", inviteID)
		}
		return nil, apperrors.Persistence(op, "invite", err)
	}
	// The invite's function must belong to the addressed event.
	if _, err := s.repo.GetFunction(eventID, inv.FunctionID); err != nil {
		return nil, apperrors.NotFound(op, "invite", inviteID)
	}
	return inv, nil
}
