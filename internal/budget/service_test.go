package budget_test

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/internal/budget"
	"github.com/sandeepvarma05/event-planner-backend/internal/event"
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
		&budget.Budget{},
		&budget.BudgetCategory{},
		&budget.Expense{},
		&budget.PaymentSplit{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newFixture(t *testing.T) (*budget.Service, string) {
	t.Helper()
	db := newTestDB(t)
	svc := budget.NewService(budget.NewRepository(db), auditlog.NewService(auditlog.NewRepository(db)))

	ev := &event.Event{ID: uuid.NewString(), Title: "Birthday Bash", Privacy: "private", StartTime: time.Now().Add(24 * time.Hour), HostID: 1}
	if err := db.Create(ev).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return svc, ev.ID
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestCreateBudgetOnePerEvent(t *testing.T) {
	svc, eventID := newFixture(t)

	if _, err := svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: -5}, 1, ""); !apperrors.IsValidation(err) {
		t.Fatalf("negative budget should be validation error, got %v", err)
	}

	if _, err := svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: 3000}, 1, ""); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	if _, err := svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: 5000}, 1, ""); !apperrors.IsAlreadyExists(err) {
		t.Fatalf("second budget should be AlreadyExists, got %v", err)
	}
}

// Ledger rollup against a known scenario: five categories, mixed paid
// state, checked to the cent.
func TestSummaryArithmetic(t *testing.T) {
	svc, eventID := newFixture(t)

	if _, err := svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: 3000}, 1, ""); err != nil {
		t.Fatalf("create budget: %v", err)
	}

	scenario := []struct {
		name      string
		allocated float64
		spent     float64
	}{
		{"Venue", 800, 800},
		{"Food & Drinks", 1200, 450},
		{"DJ", 500, 500},
		{"Decorations", 300, 180},
		{"Photo Booth", 200, 0},
	}

	for i, sc := range scenario {
		cat, err := svc.AddCategory(eventID, &budget.AddCategoryRequest{Name: sc.name, Allocated: sc.allocated, SortOrder: i})
		if err != nil {
			t.Fatalf("add category %s: %v", sc.name, err)
		}
		if sc.spent > 0 {
			if _, err := svc.AddExpense(eventID, cat.ID, &budget.AddExpenseRequest{Name: sc.name + " bill", Amount: sc.spent, IsPaid: true}); err != nil {
				t.Fatalf("add expense: %v", err)
			}
		}
		// Unpaid expenses never count toward spent.
		if _, err := svc.AddExpense(eventID, cat.ID, &budget.AddExpenseRequest{Name: sc.name + " pending", Amount: 999, IsPaid: false}); err != nil {
			t.Fatalf("add unpaid expense: %v", err)
		}
	}

	sum, err := svc.GetSummary(eventID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !almostEqual(sum.TotalAllocated, 3000) {
		t.Errorf("totalAllocated = %.2f, want 3000", sum.TotalAllocated)
	}
	if !almostEqual(sum.TotalSpent, 1930) {
		t.Errorf("totalSpent = %.2f, want 1930", sum.TotalSpent)
	}
	if !almostEqual(sum.Remaining, 1070) {
		t.Errorf("remaining = %.2f, want 1070", sum.Remaining)
	}
	if !almostEqual(sum.PercentSpent, 64.33) {
		t.Errorf("percentSpent = %.2f, want ≈64.33", sum.PercentSpent)
	}

	for _, cv := range sum.Categories {
		switch cv.Name {
		case "Venue":
			if !almostEqual(cv.PercentSpent, 100) {
				t.Errorf("Venue percent = %.2f, want 100", cv.PercentSpent)
			}
			if cv.IsOverBudget {
				t.Error("spending exactly the allocation is not over budget")
			}
		case "Food & Drinks":
			if !almostEqual(cv.PercentSpent, 37.5) {
				t.Errorf("Food percent = %.2f, want 37.5", cv.PercentSpent)
			}
		case "Photo Booth":
			if cv.Spent != 0 || cv.PercentSpent != 0 {
				t.Errorf("Photo Booth spent=%.2f percent=%.2f, want 0/0", cv.Spent, cv.PercentSpent)
			}
		}
	}
}

func TestZeroBudgetGuard(t *testing.T) {
	svc, eventID := newFixture(t)

	if _, err := svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: 0}, 1, ""); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	cat, err := svc.AddCategory(eventID, &budget.AddCategoryRequest{Name: "Misc", Allocated: 0})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := svc.AddExpense(eventID, cat.ID, &budget.AddExpenseRequest{Name: "Cab", Amount: 40, IsPaid: true}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	sum, err := svc.GetSummary(eventID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	// Division guards: 0 out, never NaN or Inf.
	if sum.PercentSpent != 0 {
		t.Errorf("percentSpent on zero budget = %v, want 0", sum.PercentSpent)
	}
	if math.IsNaN(sum.PercentSpent) || math.IsInf(sum.PercentSpent, 0) {
		t.Error("percentSpent is NaN/Inf")
	}
	if sum.Categories[0].PercentSpent != 0 {
		t.Errorf("category percent on zero allocation = %v, want 0", sum.Categories[0].PercentSpent)
	}
	if !sum.Categories[0].IsOverBudget {
		t.Error("spending against a zero allocation should flag over-budget")
	}
}

func TestMarkPaidSwapsDates(t *testing.T) {
	svc, eventID := newFixture(t)
	svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: 1000}, 1, "")
	cat, _ := svc.AddCategory(eventID, &budget.AddCategoryRequest{Name: "Venue", Allocated: 500})

	due := time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second)
	exp, err := svc.AddExpense(eventID, cat.ID, &budget.AddExpenseRequest{Name: "Deposit", Amount: 200, IsPaid: false, Date: due.Format(time.RFC3339)})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if exp.IsPaid || exp.DueDate == nil || exp.PaidDate != nil {
		t.Fatalf("unpaid expense dates wrong: %+v", exp)
	}

	paid, err := svc.MarkPaid(eventID, exp.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !paid.IsPaid || paid.PaidDate == nil || paid.DueDate != nil {
		t.Fatalf("paid expense dates wrong: paid=%v due=%v", paid.PaidDate, paid.DueDate)
	}

	// Idempotent: marking paid twice changes nothing.
	again, err := svc.MarkPaid(eventID, exp.ID)
	if err != nil {
		t.Fatalf("repeat mark paid: %v", err)
	}
	if !again.PaidDate.Equal(*paid.PaidDate) {
		t.Error("repeat markPaid moved the paid date")
	}

	back, err := svc.MarkUnpaid(eventID, exp.ID)
	if err != nil {
		t.Fatalf("mark unpaid: %v", err)
	}
	if back.IsPaid || back.DueDate == nil || back.PaidDate != nil {
		t.Fatalf("unpaid-again expense dates wrong: paid=%v due=%v", back.PaidDate, back.DueDate)
	}

	// Spent follows the flag through the swaps.
	sum, _ := svc.GetSummary(eventID)
	if sum.TotalSpent != 0 {
		t.Errorf("totalSpent after unpay = %.2f, want 0", sum.TotalSpent)
	}
}

func TestExpenseValidation(t *testing.T) {
	svc, eventID := newFixture(t)
	svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: 100}, 1, "")
	cat, _ := svc.AddCategory(eventID, &budget.AddCategoryRequest{Name: "Misc", Allocated: 100})

	if _, err := svc.AddExpense(eventID, cat.ID, &budget.AddExpenseRequest{Name: " ", Amount: 10}); !apperrors.IsValidation(err) {
		t.Fatalf("empty name should be validation error, got %v", err)
	}
	if _, err := svc.AddExpense(eventID, cat.ID, &budget.AddExpenseRequest{Name: "Free", Amount: 0}); !apperrors.IsValidation(err) {
		t.Fatalf("zero amount should be validation error, got %v", err)
	}
	if _, err := svc.AddExpense(eventID, uuid.NewString(), &budget.AddExpenseRequest{Name: "X", Amount: 10}); !apperrors.IsNotFound(err) {
		t.Fatalf("unknown category should be NotFound, got %v", err)
	}
}

func TestPaymentSplitBalance(t *testing.T) {
	svc, eventID := newFixture(t)
	svc.CreateBudget(eventID, &budget.CreateBudgetRequest{TotalBudget: 900}, 1, "")

	if _, err := svc.RecordSplit(eventID, &budget.RecordSplitRequest{Name: "Sam", ShareAmount: 300, PaidAmount: 120}); err != nil {
		t.Fatalf("record split: %v", err)
	}
	if _, err := svc.RecordSplit(eventID, &budget.RecordSplitRequest{Name: "", ShareAmount: 300}); !apperrors.IsValidation(err) {
		t.Fatalf("empty split name should be validation error, got %v", err)
	}

	sum, err := svc.GetSummary(eventID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(sum.Splits) != 1 {
		t.Fatalf("splits = %d, want 1", len(sum.Splits))
	}
	if !almostEqual(sum.Splits[0].Balance, 180) {
		t.Errorf("balance = %.2f, want 180", sum.Splits[0].Balance)
	}
}
