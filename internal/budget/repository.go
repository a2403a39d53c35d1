package budget

import (
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 💰 Budget
// ===========================

func (r *Repository) CreateBudget(b *Budget) error {
	return r.DB.Create(b).Error
}

func (r *Repository) GetBudgetByEvent(eventID string) (*Budget, error) {
	var b Budget
	err := r.DB.Where("event_id = ?", eventID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repository) UpdateBudget(b *Budget) error {
	return r.DB.Save(b).Error
}

// ===========================
// 📂 Categories
// ===========================

func (r *Repository) CreateCategory(c *BudgetCategory) error {
	return r.DB.Create(c).Error
}

func (r *Repository) GetCategory(eventID, categoryID string) (*BudgetCategory, error) {
	var c BudgetCategory
	err := r.DB.Where("id = ? AND event_id = ?", categoryID, eventID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCategories(budgetID string) ([]BudgetCategory, error) {
	var cats []BudgetCategory
	err := r.DB.Where("budget_id = ?", budgetID).
		Order("sort_order ASC, created_at ASC").
		Find(&cats).Error
	return cats, err
}

// DeleteCategory removes the category and its expenses together.
func (r *Repository) DeleteCategory(eventID, categoryID string) (bool, error) {
	var deleted bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&Expense{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND event_id = ?", categoryID, eventID).Delete(&BudgetCategory{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ===========================
// 🧾 Expenses
// ===========================

func (r *Repository) CreateExpense(e *Expense) error {
	return r.DB.Create(e).Error
}

func (r *Repository) GetExpense(eventID, expenseID string) (*Expense, error) {
	var e Expense
	err := r.DB.Where("id = ? AND event_id = ?", expenseID, eventID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repository) UpdateExpense(e *Expense) error {
	return r.DB.Save(e).Error
}

func (r *Repository) ListExpenses(categoryID string) ([]Expense, error) {
	var exps []Expense
	err := r.DB.Where("category_id = ?", categoryID).
		Order("created_at ASC").
		Find(&exps).Error
	return exps, err
}

func (r *Repository) DeleteExpense(eventID, expenseID string) (bool, error) {
	res := r.DB.Where("id = ? AND event_id = ?", expenseID, eventID).Delete(&Expense{})
	return res.RowsAffected > 0, res.Error
}

// SpentByCategory sums paid expenses per category for the whole event.
// This is the canonical "spent" figure; nothing stores it.
func (r *Repository) SpentByCategory(eventID string) (map[string]float64, error) {
	type row struct {
		CategoryID string
		Spent      float64
	}
	var rows []row
	err := r.DB.Table("expenses").
		Select("category_id, COALESCE(SUM(amount), 0) AS spent").
		Where("event_id = ? AND is_paid = ?", eventID, true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	spent := make(map[string]float64, len(rows))
	for _, r := range rows {
		spent[r.CategoryID] = r.Spent
	}
	return spent, nil
}

// ===========================
// 🤝 Splits
// ===========================

func (r *Repository) CreateSplit(s *PaymentSplit) error {
	return r.DB.Create(s).Error
}

func (r *Repository) ListSplits(budgetID string) ([]PaymentSplit, error) {
	var splits []PaymentSplit
	err := r.DB.Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&splits).Error
	return splits, err
}

func (r *Repository) DeleteSplit(eventID, splitID string) (bool, error) {
	res := r.DB.Where("id = ? AND event_id = ?", splitID, eventID).Delete(&PaymentSplit{})
	return res.RowsAffected > 0, res.Error
}
