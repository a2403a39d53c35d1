package event_test

import (
	"errors"
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
	"github.com/sandeepvarma05/event-planner-backend/internal/budget"
	"github.com/sandeepvarma05/event-planner-backend/internal/event"
	"github.com/sandeepvarma05/event-planner-backend/internal/function"
	"github.com/sandeepvarma05/event-planner-backend/internal/guest"
	"github.com/sandeepvarma05/event-planner-backend/internal/member"
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
		&budget.Budget{},
		&budget.BudgetCategory{},
		&budget.Expense{},
		&budget.PaymentSplit{},
		&member.EventMember{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newService(t *testing.T) (*event.Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{AppScheme: "planora"}
	svc := event.NewService(event.NewRepository(db), auditlog.NewService(auditlog.NewRepository(db)), cfg)
	return svc, db
}

func createEvent(t *testing.T, svc *event.Service) *event.Event {
	t.Helper()
	e, err := svc.CreateEvent(&event.CreateEventRequest{
		Title:     "Housewarming",
		Privacy:   "private",
		StartTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, 7, "127.0.0.1")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return e
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newService(t)

	bad := []event.CreateEventRequest{
		{Title: "  ", StartTime: time.Now().Format(time.RFC3339)},
		{Title: "Party", StartTime: "tomorrow-ish"},
		{Title: "Party", StartTime: time.Now().Format(time.RFC3339), Privacy: "secret"},
	}
	zero := 0
	bad = append(bad, event.CreateEventRequest{Title: "Party", StartTime: time.Now().Format(time.RFC3339), Capacity: &zero})

	for i, req := range bad {
		if _, err := svc.CreateEvent(&req, 1, ""); !apperrors.IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestUpdateEventOptimisticConcurrency(t *testing.T) {
	svc, _ := newService(t)
	e := createEvent(t, svc)

	stamp := e.UpdatedAt.Format(time.RFC3339Nano)
	start := e.StartTime.Format(time.RFC3339)

	updated, err := svc.UpdateEvent(e.ID, &event.UpdateEventRequest{
		Title: "Housewarming 2.0", StartTime: start, UpdatedAt: stamp,
	}, 7, "")
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if updated.Title != "Housewarming 2.0" {
		t.Fatalf("title = %q", updated.Title)
	}

	// Replaying the original stamp is a stale write: rejected, nothing
	// silently overwritten.
	_, err = svc.UpdateEvent(e.ID, &event.UpdateEventRequest{
		Title: "Hijacked", StartTime: start, UpdatedAt: stamp,
	}, 7, "")
	if err == nil {
		t.Fatal("stale update succeeded")
	}
	if !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("stale update error = %v, want persistence kind", err)
	}

	current, _ := svc.GetEventByID(e.ID)
	if current.Title != "Housewarming 2.0" {
		t.Fatalf("stale write changed the row: %q", current.Title)
	}
}

func TestSummaryCountsAlwaysReconcile(t *testing.T) {
	svc, db := newService(t)
	e := createEvent(t, svc)

	statuses := []string{
		guest.StatusAttending, guest.StatusAttending, guest.StatusMaybe,
		guest.StatusPending, guest.StatusDeclined, guest.StatusWaitlisted,
	}
	for i, st := range statuses {
		g := &guest.Guest{ID: uuid.NewString(), EventID: e.ID, Name: fmt.Sprintf("G%d", i), Status: st, Role: guest.RoleGuest, PlusOneCount: 1}
		if err := db.Create(g).Error; err != nil {
			t.Fatalf("seed guest: %v", err)
		}
	}

	sum, err := svc.GetSummary(e.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	counted := sum.AttendingCount + sum.MaybeCount + sum.PendingCount + sum.DeclinedCount + sum.WaitlistedCount
	if counted != sum.TotalGuests || sum.TotalGuests != len(statuses) {
		t.Fatalf("status counts sum to %d, total %d, want %d", counted, sum.TotalGuests, len(statuses))
	}
	// Six guests, each bringing one: 12 heads.
	if sum.TotalGuestHeadcount != 12 {
		t.Fatalf("headcount = %d, want 12", sum.TotalGuestHeadcount)
	}
}

func TestDeleteEventCascadesEverything(t *testing.T) {
	svc, db := newService(t)
	e := createEvent(t, svc)

	// 3 guests, 2 functions with invites for all 3, 1 budget with 2
	// categories and 4 expenses, 1 seating table, 1 team member.
	var guestIDs []string
	for i := 0; i < 3; i++ {
		g := &guest.Guest{ID: uuid.NewString(), EventID: e.ID, Name: fmt.Sprintf("G%d", i), Status: guest.StatusPending, Role: guest.RoleGuest}
		if err := db.Create(g).Error; err != nil {
			t.Fatalf("seed guest: %v", err)
		}
		guestIDs = append(guestIDs, g.ID)
		db.Create(&guest.PartyMember{ID: uuid.NewString(), GuestID: g.ID, Name: "P"})
	}
	for i := 0; i < 2; i++ {
		fn := &function.EventFunction{ID: uuid.NewString(), EventID: e.ID, Name: fmt.Sprintf("F%d", i), StartTime: time.Now()}
		if err := db.Create(fn).Error; err != nil {
			t.Fatalf("seed function: %v", err)
		}
		for _, gid := range guestIDs {
			db.Create(&function.FunctionInvite{ID: uuid.NewString(), FunctionID: fn.ID, GuestID: gid, Status: function.InviteNotSent, PartySize: 1})
		}
	}
	b := &budget.Budget{ID: uuid.NewString(), EventID: e.ID, TotalBudget: 3000}
	db.Create(b)
	for i := 0; i < 2; i++ {
		c := &budget.BudgetCategory{ID: uuid.NewString(), BudgetID: b.ID, EventID: e.ID, Name: fmt.Sprintf("C%d", i), Allocated: 100}
		db.Create(c)
		for j := 0; j < 2; j++ {
			db.Create(&budget.Expense{ID: uuid.NewString(), CategoryID: c.ID, EventID: e.ID, Name: "E", Amount: 10})
		}
	}
	db.Create(&budget.PaymentSplit{ID: uuid.NewString(), BudgetID: b.ID, EventID: e.ID, Name: "S", ShareAmount: 100})
	table := &seating.SeatingTable{ID: uuid.NewString(), EventID: e.ID, Name: "T", Capacity: 8}
	db.Create(table)
	db.Create(&seating.SeatingAssignment{ID: uuid.NewString(), EventID: e.ID, TableID: table.ID, GuestID: guestIDs[0]})
	db.Create(&member.EventMember{ID: uuid.NewString(), EventID: e.ID, Name: "M", Role: member.RoleViewer, Status: member.StatusPending, InviteCode: "ZZTESTZZ"})

	if err := svc.DeleteEvent(e.ID, 7, ""); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	for _, table := range []string{
		"events", "guests", "party_members", "event_functions", "function_invites",
		"seating_tables", "seating_assignments", "budgets", "budget_categories",
		"expenses", "payment_splits", "event_members",
	} {
		var n int64
		if err := db.Table(table).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d orphaned rows after cascade", table, n)
		}
	}

	if _, err := svc.GetEventByID(e.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("deleted event lookup = %v, want NotFound", err)
	}
}

func TestGetLinks(t *testing.T) {
	svc, _ := newService(t)
	e := createEvent(t, svc)

	links, err := svc.GetLinks(e.ID)
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	want := "planora://event/" + e.ID
	if links.EventLink != want {
		t.Fatalf("event link = %q, want %q", links.EventLink, want)
	}
}
