package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/config"
	"github.com/sandeepvarma05/event-planner-backend/utils"
)

type Service interface {
	// In-app notifications
	CreateInAppNotification(ctx context.Context, userID uint, eventID *string, title, message, category string) error
	ListInAppByUser(ctx context.Context, userID uint, eventID *string, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)

	// Device tokens
	RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType, deviceName string) error
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error

	// Fan-out: bell entry plus push for the host and accepted team.
	NotifyEventTeam(ctx context.Context, eventID, title, message, category string) error

	// RSVP trigger handling (fed by the Kafka consumer).
	HandleRSVPEvent(ctx context.Context, ev utils.RSVPEvent) error

	// Reminders for events starting within the window.
	SendUpcomingReminders(ctx context.Context, window time.Duration) (int, error)
}

type service struct {
	repo  Repository
	cfg   *config.Config
	email Channel
	fcm   Channel
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:  repo,
		cfg:   cfg,
		email: NewEmailSender(cfg),
		fcm:   NewFCMChannel(),
	}
}

// ------------------------------
// In-app
// ------------------------------

func (s *service) CreateInAppNotification(ctx context.Context, userID uint, eventID *string, title, message, category string) error {
	n := &InAppNotification{
		UserID:   userID,
		EventID:  eventID,
		Title:    title,
		Message:  message,
		Category: category,
	}
	if err := s.repo.CreateInApp(ctx, n); err != nil {
		return apperrors.Persistence("createNotification", "notification", err)
	}
	return nil
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, eventID *string, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, eventID, limit)
}

func (s *service) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	if err := s.repo.MarkInAppAsRead(ctx, id, userID); err != nil {
		return apperrors.NotFound("markRead", "notification", fmt.Sprint(id))
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

// ------------------------------
// Device tokens
// ------------------------------

func (s *service) RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType, deviceName string) error {
	if deviceToken == "" {
		return apperrors.Validation("registerToken", "device token", "device token is required")
	}
	token := &FCMDeviceToken{
		UserID:      userID,
		DeviceToken: deviceToken,
		DeviceType:  deviceType,
		DeviceName:  deviceName,
	}
	if err := s.repo.SaveDeviceToken(ctx, token); err != nil {
		return apperrors.Persistence("registerToken", "device token", err)
	}
	return nil
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return s.repo.RemoveDeviceToken(ctx, userID, deviceToken)
}

// ------------------------------
// Fan-out
// ------------------------------

// NotifyEventTeam writes a bell entry for every team member and pushes
// to their devices. Push failures are logged, never returned: the
// in-app record is the durable part.
func (s *service) NotifyEventTeam(ctx context.Context, eventID, title, message, category string) error {
	userIDs, err := s.repo.EventTeamUserIDs(ctx, eventID)
	if err != nil {
		return apperrors.Persistence("notifyTeam", "notification", err)
	}

	for _, uid := range userIDs {
		if err := s.CreateInAppNotification(ctx, uid, &eventID, title, message, category); err != nil {
			log.Printf("⚠️ Failed to create in-app notification for user %d: %v", uid, err)
			continue
		}

		tokens, err := s.repo.GetUserDeviceTokens(ctx, uid)
		if err != nil || len(tokens) == 0 {
			continue
		}
		if err := s.fcm.Send(tokens, title, message); err != nil {
			log.Printf("⚠️ Push delivery failed for user %d: %v", uid, err)
		}
	}
	return nil
}

// ------------------------------
// RSVP triggers
// ------------------------------

func (s *service) HandleRSVPEvent(ctx context.Context, ev utils.RSVPEvent) error {
	title := "RSVP update"
	scope := ev.EventTitle
	if ev.FunctionName != "" {
		scope = ev.FunctionName + " · " + ev.EventTitle
	}

	var message string
	switch ev.Response {
	case "attending", "yes":
		message = fmt.Sprintf("%s is attending %s (party of %d)", ev.GuestName, scope, ev.PartySize)
	case "declined", "no":
		message = fmt.Sprintf("%s declined %s", ev.GuestName, scope)
	case "maybe":
		message = fmt.Sprintf("%s might attend %s", ev.GuestName, scope)
	default:
		message = fmt.Sprintf("%s responded %q to %s", ev.GuestName, ev.Response, scope)
	}

	return s.NotifyEventTeam(ctx, ev.EventID, title, message, CategoryRSVP)
}

// ------------------------------
// Reminders
// ------------------------------

// SendUpcomingReminders notifies hosts about events starting within the
// window. Returns how many reminders were sent.
func (s *service) SendUpcomingReminders(ctx context.Context, window time.Duration) (int, error) {
	now := time.Now().UTC()
	events, err := s.repo.EventsStartingBetween(ctx, now, now.Add(window))
	if err != nil {
		return 0, apperrors.Persistence("sendReminders", "event", err)
	}

	sent := 0
	for _, ev := range events {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		title := "Upcoming event"
		message := fmt.Sprintf("%s starts %s", ev.Title, ev.StartTime.Format("Monday, Jan 2 at 3:04 PM"))
		if err := s.NotifyEventTeam(ctx, ev.EventID, title, message, CategoryReminder); err != nil {
			log.Printf("⚠️ Reminder failed for event %s: %v", ev.EventID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
