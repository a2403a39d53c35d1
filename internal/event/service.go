package event

import (
	"context"
	"encoding/json"
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

// Service wraps business logic for the event aggregate
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	Cfg      *config.Config
}

func NewService(r *Repository, auditSvc auditlog.Service, cfg *config.Config) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
		Cfg:      cfg,
	}
}

var validPrivacy = map[string]bool{"public": true, "private": true, "inviteOnly": true}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, userID uint, ip string) (*Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("createEvent", "event", "title is required")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("createEvent", "event", "invalid start_time, use RFC 3339")
	}

	var endPtr *time.Time
	if req.EndTime != "" {
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return nil, apperrors.Validation("createEvent", "event", "invalid end_time, use RFC 3339")
		}
		if end.Before(start) {
			return nil, apperrors.Validation("createEvent", "event", "end_time before start_time")
		}
		endPtr = &end
	}

	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, apperrors.Validation("createEvent", "event", "capacity must be a positive integer")
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = "private"
	}
	if !validPrivacy[privacy] {
		return nil, apperrors.Validation("createEvent", "event", "privacy must be public, private or inviteOnly")
	}

	features, _ := json.Marshal(req.Features)

	e := &Event{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  req.Description,
		Category:     req.Category,
		Privacy:      privacy,
		LocationName: req.LocationName,
		StartTime:    start,
		EndTime:      endPtr,
		Capacity:     req.Capacity,
		Features:     features,
		HostID:       userID,
	}

	if err := s.Repo.CreateEvent(e); err != nil {
		s.AuditSvc.LogAction(context.Background(), &userID, nil, "EVENT_CREATED",
			map[string]interface{}{"title": title, "error": err.Error()}, ip, "failure")
		return nil, apperrors.Persistence("createEvent", "event", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &e.ID, "EVENT_CREATED",
		map[string]interface{}{"title": e.Title, "category": e.Category}, ip, "success")

	return e, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEventByID(id string) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("getEvent", "event", id)
		}
		return nil, err
	}
	return e, nil
}

// ===========================
// 📄 List hosted events
func (s *Service) ListEventsByHost(hostID uint, limit, offset int, search string) ([]Event, error) {
	return s.Repo.ListEventsByHost(hostID, limit, offset, search)
}

// ===========================
// 🛠 Update Event. The client sends back the updated_at it last read;
// a stale stamp means someone else committed first.
func (s *Service) UpdateEvent(id string, req *UpdateEventRequest, userID uint, ip string) (*Event, error) {
	e, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	expected, err := time.Parse(time.RFC3339Nano, req.UpdatedAt)
	if err != nil {
		return nil, apperrors.Validation("updateEvent", "event", "invalid updated_at stamp")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("updateEvent", "event", "title is required")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("updateEvent", "event", "invalid start_time, use RFC 3339")
	}

	var endPtr *time.Time
	if req.EndTime != "" {
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return nil, apperrors.Validation("updateEvent", "event", "invalid end_time, use RFC 3339")
		}
		endPtr = &end
	}

	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, apperrors.Validation("updateEvent", "event", "capacity must be a positive integer")
	}
	if req.Privacy != "" && !validPrivacy[req.Privacy] {
		return nil, apperrors.Validation("updateEvent", "event", "privacy must be public, private or inviteOnly")
	}

	e.Title = title
	e.Description = req.Description
	e.Category = req.Category
	if req.Privacy != "" {
		e.Privacy = req.Privacy
	}
	e.LocationName = req.LocationName
	e.StartTime = start
	e.EndTime = endPtr
	e.Capacity = req.Capacity
	e.Features, _ = json.Marshal(req.Features)

	ok, err := s.Repo.UpdateEvent(e, expected)
	if err != nil {
		s.AuditSvc.LogAction(context.Background(), &userID, &id, "EVENT_UPDATED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, apperrors.Persistence("updateEvent", "event", err)
	}
	if !ok {
		s.AuditSvc.LogAction(context.Background(), &userID, &id, "EVENT_UPDATED",
			map[string]interface{}{"error": "stale update"}, ip, "failure")
		return nil, apperrors.Persistence("updateEvent", "event", errors.New("event was modified concurrently, reload and retry"))
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &id, "EVENT_UPDATED",
		map[string]interface{}{"title": e.Title}, ip, "success")

	return s.GetEventByID(id)
}

// ===========================
// ❌ Delete Event (full cascade)
func (s *Service) DeleteEvent(id string, userID uint, ip string) error {
	e, err := s.GetEventByID(id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteEventCascade(id); err != nil {
		s.AuditSvc.LogAction(context.Background(), &userID, &id, "EVENT_DELETED",
			map[string]interface{}{"title": e.Title, "error": err.Error()}, ip, "failure")
		return apperrors.Persistence("deleteEvent", "event", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &id, "EVENT_DELETED",
		map[string]interface{}{"title": e.Title}, ip, "success")
	return nil
}

// ===========================
// 📊 Summary counts, computed from the guest table on every call.
// Capacity rides along as advisory display data only.
func (s *Service) GetSummary(id string) (*Summary, error) {
	e, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	counts, err := s.Repo.CountGuestsByStatus(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repo.GuestHeadcountRows(id)
	if err != nil {
		return nil, err
	}
	headcount := 0
	for _, rw := range rows {
		extra := rw.PlusOneCount
		if rw.MemberCount > extra {
			extra = rw.MemberCount
		}
		headcount += 1 + extra
	}

	sum := &Summary{
		AttendingCount:      counts["attending"],
		MaybeCount:          counts["maybe"],
		PendingCount:        counts["pending"],
		DeclinedCount:       counts["declined"],
		WaitlistedCount:     counts["waitlisted"],
		TotalGuestHeadcount: headcount,
		Capacity:            e.Capacity,
	}
	sum.TotalGuests = sum.AttendingCount + sum.MaybeCount + sum.PendingCount + sum.DeclinedCount + sum.WaitlistedCount

	return sum, nil
}

// ===========================
// 🔗 Deep links for the mobile router
func (s *Service) GetLinks(id string) (*Links, error) {
	if _, err := s.GetEventByID(id); err != nil {
		return nil, err
	}
	return &Links{
		EventLink: utils.EventLink(s.Cfg.AppScheme, id),
	}, nil
}
