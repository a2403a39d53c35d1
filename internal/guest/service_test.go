package guest_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/internal/event"
	"github.com/sandeepvarma05/event-planner-backend/internal/function"
	"github.com/sandeepvarma05/event-planner-backend/internal/guest"
	"github.com/sandeepvarma05/event-planner-backend/internal/seating"
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
		&seating.SeatingTable{},
		&seating.SeatingAssignment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newService(t *testing.T) (*guest.Service, *gorm.DB, string) {
	t.Helper()
	db := newTestDB(t)
	svc := guest.NewService(guest.NewRepository(db), auditlog.NewService(auditlog.NewRepository(db)))

	ev := &event.Event{
		ID:        uuid.NewString(),
		Title:     "Summer Wedding",
		Privacy:   "private",
		StartTime: time.Now().Add(48 * time.Hour),
		HostID:    1,
	}
	if err := db.Create(ev).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return svc, db, ev.ID
}

func TestAddGuestValidation(t *testing.T) {
	svc, _, eventID := newService(t)

	cases := []struct {
		name string
		req  guest.AddGuestRequest
	}{
		{"empty name", guest.AddGuestRequest{Name: "   "}},
		{"negative plus ones", guest.AddGuestRequest{Name: "Ana", PlusOneCount: -1}},
		{"unknown role", guest.AddGuestRequest{Name: "Ana", Role: "butler"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddGuest(eventID, &tc.req, 1, "127.0.0.1"); !apperrors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAddGuestDefaults(t *testing.T) {
	svc, _, eventID := newService(t)

	g, err := svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "  Maya Rao  "}, 1, "127.0.0.1")
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if g.Name != "Maya Rao" {
		t.Errorf("name not trimmed: %q", g.Name)
	}
	if g.Status != guest.StatusPending {
		t.Errorf("new guest status = %q, want pending", g.Status)
	}
	if g.Role != guest.RoleGuest {
		t.Errorf("default role = %q, want guest", g.Role)
	}
}

func TestTotalHeadcountPrefersNamedParty(t *testing.T) {
	svc, _, eventID := newService(t)

	g, err := svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "Leo", PlusOneCount: 2}, 1, "")
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}

	got, err := svc.GetGuest(eventID, g.ID)
	if err != nil {
		t.Fatalf("get guest: %v", err)
	}
	if hc := got.TotalHeadcount(); hc != 3 {
		t.Fatalf("headcount with 2 plus-ones = %d, want 3", hc)
	}

	// Naming three companions outgrows the numeric count: the member
	// list wins.
	for _, name := range []string{"Mia", "Noah", "Ivy"} {
		if _, err := svc.AddPartyMember(eventID, g.ID, &guest.AddPartyMemberRequest{Name: name}, ""); err != nil {
			t.Fatalf("add party member %s: %v", name, err)
		}
	}

	got, err = svc.GetGuest(eventID, g.ID)
	if err != nil {
		t.Fatalf("get guest: %v", err)
	}
	if hc := got.TotalHeadcount(); hc != 4 {
		t.Fatalf("headcount with 3 named members = %d, want 4", hc)
	}
	if got.PlusOneCount != 2 {
		t.Errorf("plus_one_count changed to %d, should stay 2", got.PlusOneCount)
	}
}

func TestPartyMemberPositions(t *testing.T) {
	svc, _, eventID := newService(t)

	g, _ := svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "Zoe"}, 1, "")
	first, err := svc.AddPartyMember(eventID, g.ID, &guest.AddPartyMemberRequest{Name: "A"}, "")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	second, err := svc.AddPartyMember(eventID, g.ID, &guest.AddPartyMemberRequest{Name: "B"}, "")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if second.Position <= first.Position {
		t.Errorf("positions not increasing: %d then %d", first.Position, second.Position)
	}

	if err := svc.RemovePartyMember(eventID, g.ID, first.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if err := svc.RemovePartyMember(eventID, g.ID, first.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("second removal should be NotFound, got %v", err)
	}
}

func TestSetRSVPIdempotent(t *testing.T) {
	svc, _, eventID := newService(t)

	g, _ := svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "Omar"}, 1, "")

	updated, err := svc.SetRSVP(eventID, g.ID, &guest.SetRSVPRequest{Status: guest.StatusAttending}, "")
	if err != nil {
		t.Fatalf("set rsvp: %v", err)
	}
	if updated.Status != guest.StatusAttending {
		t.Fatalf("status = %q, want attending", updated.Status)
	}
	if updated.RespondedAt == nil {
		t.Fatal("responded_at not stamped on response")
	}

	// Retrying the same submission must not error or duplicate anything.
	again, err := svc.SetRSVP(eventID, g.ID, &guest.SetRSVPRequest{Status: guest.StatusAttending}, "")
	if err != nil {
		t.Fatalf("repeat rsvp: %v", err)
	}
	if again.Status != guest.StatusAttending {
		t.Fatalf("repeat status = %q", again.Status)
	}

	// Going back to pending clears the response timestamp.
	back, err := svc.SetRSVP(eventID, g.ID, &guest.SetRSVPRequest{Status: guest.StatusPending}, "")
	if err != nil {
		t.Fatalf("reset rsvp: %v", err)
	}
	if back.RespondedAt != nil {
		t.Fatal("responded_at should clear when back to pending")
	}
}

func TestSetRSVPValidation(t *testing.T) {
	svc, _, eventID := newService(t)
	g, _ := svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "Pia"}, 1, "")

	if _, err := svc.SetRSVP(eventID, g.ID, &guest.SetRSVPRequest{Status: "perhaps"}, ""); !apperrors.IsValidation(err) {
		t.Fatalf("bad status should be validation error, got %v", err)
	}
	neg := -2
	if _, err := svc.SetRSVP(eventID, g.ID, &guest.SetRSVPRequest{Status: guest.StatusAttending, PlusOneCount: &neg}, ""); !apperrors.IsValidation(err) {
		t.Fatalf("negative party should be validation error, got %v", err)
	}
	if _, err := svc.SetRSVP(eventID, uuid.NewString(), &guest.SetRSVPRequest{Status: guest.StatusAttending}, ""); !apperrors.IsNotFound(err) {
		t.Fatalf("unknown guest should be NotFound, got %v", err)
	}
}

func TestRemoveGuestCascades(t *testing.T) {
	svc, db, eventID := newService(t)

	g, _ := svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "Ravi"}, 1, "")
	if _, err := svc.AddPartyMember(eventID, g.ID, &guest.AddPartyMemberRequest{Name: "Asha"}, ""); err != nil {
		t.Fatalf("add party member: %v", err)
	}

	// Seed dependents the cascade must sweep.
	fn := &function.EventFunction{ID: uuid.NewString(), EventID: eventID, Name: "Reception", StartTime: time.Now()}
	if err := db.Create(fn).Error; err != nil {
		t.Fatalf("seed function: %v", err)
	}
	inv := &function.FunctionInvite{ID: uuid.NewString(), FunctionID: fn.ID, GuestID: g.ID, Status: function.InviteNotSent, PartySize: 1}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed invite: %v", err)
	}
	table := &seating.SeatingTable{ID: uuid.NewString(), EventID: eventID, Name: "T1", Capacity: 8}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	if err := db.Create(&seating.SeatingAssignment{ID: uuid.NewString(), EventID: eventID, TableID: table.ID, GuestID: g.ID}).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	if err := svc.RemoveGuest(eventID, g.ID, 1, ""); err != nil {
		t.Fatalf("remove guest: %v", err)
	}

	for _, check := range []struct {
		table string
		where string
	}{
		{"guests", "id"},
		{"party_members", "guest_id"},
		{"function_invites", "guest_id"},
		{"seating_assignments", "guest_id"},
	} {
		var n int64
		if err := db.Table(check.table).Where(check.where+" = ?", g.ID).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", check.table, err)
		}
		if n != 0 {
			t.Errorf("%s still has %d rows for removed guest", check.table, n)
		}
	}
}

func TestListGuestsStatusFilter(t *testing.T) {
	svc, _, eventID := newService(t)

	a, _ := svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "A"}, 1, "")
	svc.AddGuest(eventID, &guest.AddGuestRequest{Name: "B"}, 1, "")
	if _, err := svc.SetRSVP(eventID, a.ID, &guest.SetRSVPRequest{Status: guest.StatusAttending}, ""); err != nil {
		t.Fatalf("rsvp: %v", err)
	}

	attending, err := svc.ListGuests(eventID, guest.StatusAttending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attending) != 1 || attending[0].ID != a.ID {
		t.Fatalf("attending filter returned %d guests", len(attending))
	}

	if _, err := svc.ListGuests(eventID, "ghosted"); !apperrors.IsValidation(err) {
		t.Fatalf("bad filter should be validation error, got %v", err)
	}
}
