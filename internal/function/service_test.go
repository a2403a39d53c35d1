package function_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/config"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/internal/event"
	"github.com/sandeepvarma05/event-planner-backend/internal/function"
	"github.com/sandeepvarma05/event-planner-backend/internal/guest"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&event.Event{},
		&guest.Guest{},
		&guest.PartyMember{},
		&function.EventFunction{},
		&function.FunctionInvite{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	svc     function.Service
	db      *gorm.DB
	eventID string
	guestID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{AppScheme: "planora", AppInstallURL: "https://planora.app/get"}
	svc := function.NewService(function.NewRepository(db), auditlog.NewService(auditlog.NewRepository(db)), cfg)

	ev := &event.Event{ID: uuid.NewString(), Title: "Garden Party", Privacy: "private", StartTime: time.Now().Add(72 * time.Hour), LocationName: "Rose Garden", HostID: 1}
	if err := db.Create(ev).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	g := &guest.Guest{ID: uuid.NewString(), EventID: ev.ID, Name: "Nina Patel", Email: "nina@example.com", Phone: "+15550101", Status: guest.StatusPending, Role: guest.RoleGuest, PlusOneCount: 1}
	if err := db.Create(g).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	return &fixture{svc: svc, db: db, eventID: ev.ID, guestID: g.ID}
}

func (f *fixture) createFunction(t *testing.T, name string) *function.EventFunction {
	t.Helper()
	fn, err := f.svc.CreateFunction(f.eventID, &function.CreateFunctionRequest{
		Name:      name,
		StartTime: time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}, 1, "")
	if err != nil {
		t.Fatalf("create function: %v", err)
	}
	return fn
}

func TestCreateFunctionValidation(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.CreateFunction(f.eventID, &function.CreateFunctionRequest{Name: " ", StartTime: time.Now().Format(time.RFC3339)}, 1, ""); !apperrors.IsValidation(err) {
		t.Fatalf("empty name should be validation error, got %v", err)
	}
	if _, err := f.svc.CreateFunction(f.eventID, &function.CreateFunctionRequest{Name: "Brunch", StartTime: "next tuesday"}, 1, ""); !apperrors.IsValidation(err) {
		t.Fatalf("bad start_time should be validation error, got %v", err)
	}
}

func TestCreateInviteIdempotent(t *testing.T) {
	f := newFixture(t)
	fn := f.createFunction(t, "Reception")

	first, err := f.svc.CreateInvite(f.eventID, fn.ID, f.guestID)
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if first.Status != function.InviteNotSent {
		t.Errorf("new invite status = %q, want notSent", first.Status)
	}
	if first.PartySize != 2 {
		t.Errorf("party size = %d, want guest headcount 2", first.PartySize)
	}

	second, err := f.svc.CreateInvite(f.eventID, fn.ID, f.guestID)
	if err != nil {
		t.Fatalf("repeat create invite: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("repeat created a second invite for the same (guest, function)")
	}

	var n int64
	f.db.Model(&function.FunctionInvite{}).Where("function_id = ? AND guest_id = ?", fn.ID, f.guestID).Count(&n)
	if n != 1 {
		t.Fatalf("invite rows = %d, want exactly 1", n)
	}
}

func TestBulkInviteSkipsExisting(t *testing.T) {
	f := newFixture(t)
	fn1 := f.createFunction(t, "Ceremony")
	fn2 := f.createFunction(t, "Reception")

	g2 := &guest.Guest{ID: uuid.NewString(), EventID: f.eventID, Name: "Raj", Status: guest.StatusPending, Role: guest.RoleGuest}
	if err := f.db.Create(g2).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}

	existing, err := f.svc.CreateInvite(f.eventID, fn1.ID, f.guestID)
	if err != nil {
		t.Fatalf("seed invite: %v", err)
	}

	out, err := f.svc.BulkInvite(f.eventID, &function.BulkInviteRequest{
		GuestIDs:    []string{f.guestID, g2.ID},
		FunctionIDs: []string{fn1.ID, fn2.ID},
	}, 1, "")
	if err != nil {
		t.Fatalf("bulk invite: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("bulk returned %d invites, want 4", len(out))
	}

	// The pre-existing pair must survive untouched, not be replaced.
	for _, inv := range out {
		if inv.FunctionID == fn1.ID && inv.GuestID == f.guestID && inv.ID != existing.ID {
			t.Fatal("bulk invite replaced an existing invite row")
		}
	}

	var n int64
	f.db.Model(&function.FunctionInvite{}).Count(&n)
	if n != 4 {
		t.Fatalf("total invite rows = %d, want 4", n)
	}

	if _, err := f.svc.BulkInvite(f.eventID, &function.BulkInviteRequest{GuestIDs: []string{uuid.NewString()}, FunctionIDs: []string{fn1.ID}}, 1, ""); !apperrors.IsNotFound(err) {
		t.Fatalf("unknown guest should be NotFound, got %v", err)
	}
}

func TestMarkSentTransitions(t *testing.T) {
	f := newFixture(t)
	fn := f.createFunction(t, "Reception")
	inv, _ := f.svc.CreateInvite(f.eventID, fn.ID, f.guestID)

	if _, err := f.svc.MarkSent(f.eventID, inv.ID, "pigeon"); !apperrors.IsValidation(err) {
		t.Fatalf("bad channel should be validation error, got %v", err)
	}

	sent, err := f.svc.MarkSent(f.eventID, inv.ID, "whatsapp")
	if err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if sent.Status != function.InviteSent || sent.SentAt == nil || sent.SentChannel != "whatsapp" {
		t.Fatalf("sent invite not stamped: %+v", sent)
	}

	// Re-sending on another channel is allowed; last write wins.
	resent, err := f.svc.MarkSent(f.eventID, inv.ID, "email")
	if err != nil {
		t.Fatalf("re-send: %v", err)
	}
	if resent.SentChannel != "email" {
		t.Fatalf("sent_channel = %q, want email", resent.SentChannel)
	}

	// Once responded, marking sent again is rejected.
	if _, err := f.svc.RecordResponse(f.eventID, inv.ID, &function.RecordResponseRequest{Response: function.ResponseYes}, ""); err != nil {
		t.Fatalf("record response: %v", err)
	}
	if _, err := f.svc.MarkSent(f.eventID, inv.ID, "sms"); !apperrors.IsValidation(err) {
		t.Fatalf("mark sent after response should be rejected, got %v", err)
	}
}

func TestRecordResponseOverwritesInPlace(t *testing.T) {
	f := newFixture(t)
	fn := f.createFunction(t, "Reception")
	inv, _ := f.svc.CreateInvite(f.eventID, fn.ID, f.guestID)

	size := 3
	yes, err := f.svc.RecordResponse(f.eventID, inv.ID, &function.RecordResponseRequest{Response: function.ResponseYes, PartySize: &size}, "")
	if err != nil {
		t.Fatalf("record yes: %v", err)
	}
	if yes.Status != function.InviteResponded || yes.Response == nil || *yes.Response != function.ResponseYes || yes.PartySize != 3 {
		t.Fatalf("yes response not recorded: %+v", yes)
	}

	// Changing the mind overwrites the same row; declining zeroes the
	// party regardless of any requested size.
	big := 5
	no, err := f.svc.RecordResponse(f.eventID, inv.ID, &function.RecordResponseRequest{Response: function.ResponseNo, PartySize: &big}, "")
	if err != nil {
		t.Fatalf("record no: %v", err)
	}
	if no.ID != yes.ID {
		t.Fatal("response created a new invite row")
	}
	if no.PartySize != 0 {
		t.Fatalf("declined party size = %d, want 0", no.PartySize)
	}

	neg := -1
	if _, err := f.svc.RecordResponse(f.eventID, inv.ID, &function.RecordResponseRequest{Response: function.ResponseYes, PartySize: &neg}, ""); !apperrors.IsValidation(err) {
		t.Fatalf("negative party size should be validation error, got %v", err)
	}
	if _, err := f.svc.RecordResponse(f.eventID, inv.ID, &function.RecordResponseRequest{Response: "probably"}, ""); !apperrors.IsValidation(err) {
		t.Fatalf("bad response should be validation error, got %v", err)
	}
}

func TestSubmitGuestResponseCreatesInviteOnTheFly(t *testing.T) {
	f := newFixture(t)
	fn := f.createFunction(t, "After Party")

	// No invite exists yet; the self-service path creates and answers it
	// in one step.
	inv, err := f.svc.SubmitGuestResponse(f.eventID, f.guestID, fn.ID, &function.RecordResponseRequest{Response: function.ResponseMaybe}, "")
	if err != nil {
		t.Fatalf("submit guest response: %v", err)
	}
	if inv.Status != function.InviteResponded || inv.Response == nil || *inv.Response != function.ResponseMaybe {
		t.Fatalf("self-service response not recorded: %+v", inv)
	}

	invites, err := f.svc.GuestInvites(f.eventID, f.guestID)
	if err != nil {
		t.Fatalf("guest invites: %v", err)
	}
	if len(invites) != 1 {
		t.Fatalf("guest has %d invites, want 1", len(invites))
	}
}

func TestPrepareBulkSend(t *testing.T) {
	f := newFixture(t)
	fn := f.createFunction(t, "Reception")

	// Second guest has no phone, so a whatsapp batch counts them failed.
	g2 := &guest.Guest{ID: uuid.NewString(), EventID: f.eventID, Name: "Mail Only", Email: "mail@example.com", Status: guest.StatusPending, Role: guest.RoleGuest}
	if err := f.db.Create(g2).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	if _, err := f.svc.BulkInvite(f.eventID, &function.BulkInviteRequest{GuestIDs: []string{f.guestID, g2.ID}, FunctionIDs: []string{fn.ID}}, 1, ""); err != nil {
		t.Fatalf("bulk invite: %v", err)
	}

	res, err := f.svc.PrepareBulkSend(context.Background(), f.eventID, []string{fn.ID}, "whatsapp", 1, "")
	if err != nil {
		t.Fatalf("bulk send: %v", err)
	}
	if res.Sent != 1 || res.Failed != 1 {
		t.Fatalf("sent=%d failed=%d, want 1/1", res.Sent, res.Failed)
	}
	if len(res.Prepared) != 1 {
		t.Fatalf("prepared %d messages, want 1", len(res.Prepared))
	}

	msg := res.Prepared[0]
	if msg.Contact != "+15550101" {
		t.Errorf("contact = %q, want the guest's phone", msg.Contact)
	}
	wantLink := "planora://rsvp/" + f.eventID + "/" + f.guestID
	if !strings.Contains(msg.Body, wantLink) {
		t.Errorf("message body missing RSVP link %s:\n%s", wantLink, msg.Body)
	}
	if !strings.Contains(msg.Body, "Nina") {
		t.Errorf("message body missing guest first name:\n%s", msg.Body)
	}

	// The sent invite is stamped; the failed guest's invite is untouched.
	sentInv, _ := f.svc.GuestInvites(f.eventID, f.guestID)
	if sentInv[0].Status != function.InviteSent {
		t.Errorf("sent guest invite status = %q, want sent", sentInv[0].Status)
	}
	failedInv, _ := f.svc.GuestInvites(f.eventID, g2.ID)
	if failedInv[0].Status != function.InviteNotSent {
		t.Errorf("failed guest invite status = %q, want notSent", failedInv[0].Status)
	}
}

func TestPrepareBulkSendHonoursCancellation(t *testing.T) {
	f := newFixture(t)
	fn := f.createFunction(t, "Reception")
	if _, err := f.svc.CreateInvite(f.eventID, fn.ID, f.guestID); err != nil {
		t.Fatalf("invite: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := f.svc.PrepareBulkSend(ctx, f.eventID, []string{fn.ID}, "sms", 1, "")
	if err != context.Canceled {
		t.Fatalf("cancelled batch error = %v, want context.Canceled", err)
	}
	if res.Sent != 0 {
		t.Fatalf("cancelled batch sent %d messages", res.Sent)
	}
}
