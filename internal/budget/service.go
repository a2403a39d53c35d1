package budget

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

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

// percent guards division by zero: a zero denominator reports 0, never
// NaN or Inf.
func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// ===========================
// 💰 Budget
// ===========================

func (s *Service) CreateBudget(eventID string, req *CreateBudgetRequest, userID uint, ip string) (*Budget, error) {
	if req.TotalBudget < 0 {
		return nil, apperrors.Validation("createBudget", "budget", "total budget cannot be negative")
	}

	existing, err := s.Repo.GetBudgetByEvent(eventID)
	if err != nil {
		return nil, apperrors.Persistence("createBudget", "budget", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("createBudget", "budget", existing.ID)
	}

	b := &Budget{
		ID:          uuid.NewString(),
		EventID:     eventID,
		TotalBudget: req.TotalBudget,
	}
	if err := s.Repo.CreateBudget(b); err != nil {
		return nil, apperrors.Persistence("createBudget", "budget", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "BUDGET_CREATED",
		map[string]interface{}{"budget_id": b.ID, "total_budget": b.TotalBudget}, ip, "success")
	return b, nil
}

func (s *Service) UpdateTotalBudget(eventID string, total float64) (*Budget, error) {
	if total < 0 {
		return nil, apperrors.Validation("updateBudget", "budget", "total budget cannot be negative")
	}
	b, err := s.mustGetBudget("updateBudget", eventID)
	if err != nil {
		return nil, err
	}
	b.TotalBudget = total
	if err := s.Repo.UpdateBudget(b); err != nil {
		return nil, apperrors.Persistence("updateBudget", "budget", err)
	}
	return b, nil
}

func (s *Service) mustGetBudget(op, eventID string) (*Budget, error) {
	b, err := s.Repo.GetBudgetByEvent(eventID)
	if err != nil {
		return nil, apperrors.Persistence(op, "budget", err)
	}
	if b == nil {
		return nil, apperrors.NotFound(op, "budget", eventID)
	}
	return b, nil
}

// ===========================
// 📂 Categories
// ===========================

func (s *Service) AddCategory(eventID string, req *AddCategoryRequest) (*BudgetCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("addCategory", "budget category", "name is required")
	}
	if req.Allocated < 0 {
		return nil, apperrors.Validation("addCategory", "budget category", "allocated amount cannot be negative")
	}

	b, err := s.mustGetBudget("addCategory", eventID)
	if err != nil {
		return nil, err
	}

	c := &BudgetCategory{
		ID:        uuid.NewString(),
		BudgetID:  b.ID,
		EventID:   eventID,
		Name:      name,
		Icon:      req.Icon,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		Allocated: req.Allocated,
	}
	if err := s.Repo.CreateCategory(c); err != nil {
		return nil, apperrors.Persistence("addCategory", "budget category", err)
	}
	return c, nil
}

func (s *Service) DeleteCategory(eventID, categoryID string, userID uint, ip string) error {
	deleted, err := s.Repo.DeleteCategory(eventID, categoryID)
	if err != nil {
		return apperrors.Persistence("deleteCategory", "budget category", err)
	}
	if !deleted {
		return apperrors.NotFound("deleteCategory", "budget category", categoryID)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "BUDGET_CATEGORY_DELETED",
		map[string]interface{}{"category_id": categoryID}, ip, "success")
	return nil
}

// ===========================
// 🧾 Expenses
// ===========================

// AddExpense records one ledger entry. Exactly one of paid/due date is
// stamped, matching the paid flag.
func (s *Service) AddExpense(eventID, categoryID string, req *AddExpenseRequest) (*Expense, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("addExpense", "expense", "name is required")
	}
	if req.Amount <= 0 {
		return nil, apperrors.Validation("addExpense", "expense", "amount must be positive")
	}

	cat, err := s.Repo.GetCategory(eventID, categoryID)
	if err != nil {
		return nil, apperrors.Persistence("addExpense", "budget category", err)
	}
	if cat == nil {
		return nil, apperrors.NotFound("addExpense", "budget category", categoryID)
	}

	when := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, apperrors.Validation("addExpense", "expense", "date must be RFC3339")
		}
		when = parsed
	}

	e := &Expense{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		EventID:    eventID,
		Name:       name,
		Amount:     req.Amount,
		IsPaid:     req.IsPaid,
		VendorName: strings.TrimSpace(req.VendorName),
		PayerName:  strings.TrimSpace(req.PayerName),
	}
	if req.IsPaid {
		e.PaidDate = &when
	} else {
		e.DueDate = &when
	}

	if err := s.Repo.CreateExpense(e); err != nil {
		return nil, apperrors.Persistence("addExpense", "expense", err)
	}
	return e, nil
}

// MarkPaid flips an unpaid expense to paid, swapping the due date for a
// paid date. Already-paid expenses pass through unchanged.
func (s *Service) MarkPaid(eventID, expenseID string) (*Expense, error) {
	return s.togglePaid("markPaid", eventID, expenseID, true)
}

// MarkUnpaid is the inverse: paid date becomes a due date again.
func (s *Service) MarkUnpaid(eventID, expenseID string) (*Expense, error) {
	return s.togglePaid("markUnpaid", eventID, expenseID, false)
}

func (s *Service) togglePaid(op, eventID, expenseID string, paid bool) (*Expense, error) {
	e, err := s.Repo.GetExpense(eventID, expenseID)
	if err != nil {
		return nil, apperrors.Persistence(op, "expense", err)
	}
	if e == nil {
		return nil, apperrors.NotFound(op, "expense", expenseID)
	}
	if e.IsPaid == paid {
		return e, nil
	}

	e.IsPaid = paid
	if paid {
		// The due date becomes the paid date; fall back to now when the
		// entry never carried one.
		when := time.Now().UTC()
		if e.DueDate != nil {
			when = *e.DueDate
		}
		e.PaidDate = &when
		e.DueDate = nil
	} else {
		when := time.Now().UTC()
		if e.PaidDate != nil {
			when = *e.PaidDate
		}
		e.DueDate = &when
		e.PaidDate = nil
	}

	if err := s.Repo.UpdateExpense(e); err != nil {
		return nil, apperrors.Persistence(op, "expense", err)
	}
	return e, nil
}

func (s *Service) DeleteExpense(eventID, expenseID string) error {
	deleted, err := s.Repo.DeleteExpense(eventID, expenseID)
	if err != nil {
		return apperrors.Persistence("deleteExpense", "expense", err)
	}
	if !deleted {
		return apperrors.NotFound("deleteExpense", "expense", expenseID)
	}
	return nil
}

func (s *Service) ListExpenses(eventID, categoryID string) ([]Expense, error) {
	cat, err := s.Repo.GetCategory(eventID, categoryID)
	if err != nil {
		return nil, apperrors.Persistence("listExpenses", "budget category", err)
	}
	if cat == nil {
		return nil, apperrors.NotFound("listExpenses", "budget category", categoryID)
	}
	exps, err := s.Repo.ListExpenses(categoryID)
	if err != nil {
		return nil, apperrors.Persistence("listExpenses", "expense", err)
	}
	return exps, nil
}

// ===========================
// 🤝 Splits
// ===========================

func (s *Service) RecordSplit(eventID string, req *RecordSplitRequest) (*PaymentSplit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("recordSplit", "payment split", "name is required")
	}
	if req.ShareAmount < 0 || req.PaidAmount < 0 {
		return nil, apperrors.Validation("recordSplit", "payment split", "amounts cannot be negative")
	}

	b, err := s.mustGetBudget("recordSplit", eventID)
	if err != nil {
		return nil, err
	}

	split := &PaymentSplit{
		ID:          uuid.NewString(),
		BudgetID:    b.ID,
		EventID:     eventID,
		Name:        name,
		Email:       strings.TrimSpace(req.Email),
		ShareAmount: req.ShareAmount,
		PaidAmount:  req.PaidAmount,
	}
	if err := s.Repo.CreateSplit(split); err != nil {
		return nil, apperrors.Persistence("recordSplit", "payment split", err)
	}
	return split, nil
}

func (s *Service) DeleteSplit(eventID, splitID string) error {
	deleted, err := s.Repo.DeleteSplit(eventID, splitID)
	if err != nil {
		return apperrors.Persistence("deleteSplit", "payment split", err)
	}
	if !deleted {
		return apperrors.NotFound("deleteSplit", "payment split", splitID)
	}
	return nil
}

// ===========================
// 📊 Summary
// ===========================

// GetSummary computes the full rollup from the ledger: per-category
// spent from paid expenses, totals, remaining, and guarded percentages.
func (s *Service) GetSummary(eventID string) (*Summary, error) {
	b, err := s.mustGetBudget("budgetSummary", eventID)
	if err != nil {
		return nil, err
	}

	cats, err := s.Repo.ListCategories(b.ID)
	if err != nil {
		return nil, apperrors.Persistence("budgetSummary", "budget category", err)
	}
	spentBy, err := s.Repo.SpentByCategory(eventID)
	if err != nil {
		return nil, apperrors.Persistence("budgetSummary", "expense", err)
	}
	splits, err := s.Repo.ListSplits(b.ID)
	if err != nil {
		return nil, apperrors.Persistence("budgetSummary", "payment split", err)
	}

	summary := &Summary{
		BudgetID:    b.ID,
		EventID:     eventID,
		TotalBudget: b.TotalBudget,
		Categories:  make([]CategoryView, 0, len(cats)),
		Splits:      make([]SplitView, 0, len(splits)),
	}

	for _, c := range cats {
		spent := spentBy[c.ID]
		summary.TotalAllocated += c.Allocated
		summary.TotalSpent += spent
		summary.Categories = append(summary.Categories, CategoryView{
			BudgetCategory: c,
			Spent:          spent,
			PercentSpent:   percent(spent, c.Allocated),
			IsOverBudget:   spent > c.Allocated,
		})
	}

	summary.Remaining = b.TotalBudget - summary.TotalSpent
	summary.PercentSpent = percent(summary.TotalSpent, b.TotalBudget)

	for _, sp := range splits {
		summary.Splits = append(summary.Splits, SplitView{
			PaymentSplit: sp,
			Balance:      sp.Balance(),
		})
	}

	return summary, nil
}
