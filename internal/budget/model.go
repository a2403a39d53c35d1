package budget

import "time"

// ===========================
// 💰 Budget Models
// ===========================

// Budget is the single ledger root of an event. The unique index on
// event_id enforces one budget per event at the storage layer.
type Budget struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     string    `gorm:"type:uuid;uniqueIndex;not null" json:"event_id"`
	TotalBudget float64   `gorm:"not null" json:"total_budget"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BudgetCategory is an allocation bucket. There is deliberately no
// stored "spent" column: spent is always the sum of the category's paid
// expenses, computed at read time, so the ledger and the rollup cannot
// drift apart.
type BudgetCategory struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	BudgetID  string    `gorm:"type:uuid;index;not null" json:"budget_id"`
	EventID   string    `gorm:"type:uuid;index;not null" json:"event_id"`
	Name      string    `gorm:"not null" json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	Allocated float64   `gorm:"not null" json:"allocated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expense is one ledger entry. Exactly one of PaidDate/DueDate is set,
// matching IsPaid; toggling paid status swaps the two.
type Expense struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID string     `gorm:"type:uuid;index;not null" json:"category_id"`
	EventID    string     `gorm:"type:uuid;index;not null" json:"event_id"`
	Name       string     `gorm:"not null" json:"name"`
	Amount     float64    `gorm:"not null" json:"amount"`
	IsPaid     bool       `gorm:"default:false" json:"is_paid"`
	PaidDate   *time.Time `json:"paid_date,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	VendorName string     `json:"vendor_name,omitempty"`
	PayerName  string     `json:"payer_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PaymentSplit is one contributor's share of the budget.
type PaymentSplit struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	BudgetID    string    `gorm:"type:uuid;index;not null" json:"budget_id"`
	EventID     string    `gorm:"type:uuid;index;not null" json:"event_id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `json:"email,omitempty"`
	ShareAmount float64   `gorm:"not null" json:"share_amount"`
	PaidAmount  float64   `gorm:"default:0" json:"paid_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Balance is what the contributor still owes.
func (p *PaymentSplit) Balance() float64 {
	return p.ShareAmount - p.PaidAmount
}

func (Budget) TableName() string         { return "budgets" }
func (BudgetCategory) TableName() string { return "budget_categories" }
func (Expense) TableName() string        { return "expenses" }
func (PaymentSplit) TableName() string   { return "payment_splits" }

// ===========================
// 📥 Requests
// ===========================

type CreateBudgetRequest struct {
	TotalBudget float64 `json:"total_budget"`
}

type AddCategoryRequest struct {
	Name      string  `json:"name" binding:"required"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
	Allocated float64 `json:"allocated"`
	SortOrder int     `json:"sort_order"`
}

type AddExpenseRequest struct {
	Name       string  `json:"name" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	IsPaid     bool    `json:"is_paid"`
	Date       string  `json:"date"` // RFC3339; paid date when paid, due date otherwise
	VendorName string  `json:"vendor_name"`
	PayerName  string  `json:"payer_name"`
}

type RecordSplitRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email"`
	ShareAmount float64 `json:"share_amount" binding:"required"`
	PaidAmount  float64 `json:"paid_amount"`
}

// ===========================
// 📤 Views
// ===========================

// CategoryView is a category with its derived spend rollup.
type CategoryView struct {
	BudgetCategory
	Spent        float64 `json:"spent"`
	PercentSpent float64 `json:"percent_spent"`
	IsOverBudget bool    `json:"is_over_budget"`
}

// SplitView is a split with its derived balance.
type SplitView struct {
	PaymentSplit
	Balance float64 `json:"balance"`
}

// Summary is the full ledger rollup. All percentages guard division by
// zero and report 0 instead.
type Summary struct {
	BudgetID       string         `json:"budget_id"`
	EventID        string         `json:"event_id"`
	TotalBudget    float64        `json:"total_budget"`
	TotalAllocated float64        `json:"total_allocated"`
	TotalSpent     float64        `json:"total_spent"`
	Remaining      float64        `json:"remaining"`
	PercentSpent   float64        `json:"percent_spent"`
	Categories     []CategoryView `json:"categories"`
	Splits         []SplitView    `json:"splits"`
}
