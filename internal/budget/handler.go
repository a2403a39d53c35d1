package budget

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func requireWrite(c *gin.Context) (middleware.AccessContext, bool) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return ac, false
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return ac, false
	}
	return ac, true
}

// ===========================
// 💰 Create Budget - POST /events/:id/budget
func (h *Handler) CreateBudget(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	b, err := h.Service.CreateBudget(ac.EventID, &req, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ===========================
// 💰 Update Total - PUT /events/:id/budget
func (h *Handler) UpdateTotalBudget(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	b, err := h.Service.UpdateTotalBudget(ac.EventID, req.TotalBudget)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

// ===========================
// 📊 Budget Summary - GET /events/:id/budget
func (h *Handler) GetSummary(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	summary, err := h.Service.GetSummary(ac.EventID)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ===========================
// 📂 Add Category - POST /events/:id/budget/categories
func (h *Handler) AddCategory(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	cat, err := h.Service.AddCategory(ac.EventID, &req)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// ===========================
// ❌ Delete Category - DELETE /events/:id/budget/categories/:categoryId
func (h *Handler) DeleteCategory(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.DeleteCategory(ac.EventID, c.Param("categoryId"), ac.UserID, ip); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// ===========================
// 🧾 Add Expense - POST /events/:id/budget/categories/:categoryId/expenses
func (h *Handler) AddExpense(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.AddExpense(ac.EventID, c.Param("categoryId"), &req)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ===========================
// 📄 List Expenses - GET /events/:id/budget/categories/:categoryId/expenses
func (h *Handler) ListExpenses(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	exps, err := h.Service.ListExpenses(ac.EventID, c.Param("categoryId"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, exps)
}

// ===========================
// ✅ Mark Paid - POST /events/:id/budget/expenses/:expenseId/paid
func (h *Handler) MarkPaid(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	e, err := h.Service.MarkPaid(ac.EventID, c.Param("expenseId"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// ↩️ Mark Unpaid - POST /events/:id/budget/expenses/:expenseId/unpaid
func (h *Handler) MarkUnpaid(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	e, err := h.Service.MarkUnpaid(ac.EventID, c.Param("expenseId"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// ❌ Delete Expense - DELETE /events/:id/budget/expenses/:expenseId
func (h *Handler) DeleteExpense(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteExpense(ac.EventID, c.Param("expenseId")); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

// ===========================
// 🤝 Record Split - POST /events/:id/budget/splits
func (h *Handler) RecordSplit(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	var req RecordSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	split, err := h.Service.RecordSplit(ac.EventID, &req)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, split)
}

// ===========================
// ❌ Delete Split - DELETE /events/:id/budget/splits/:splitId
func (h *Handler) DeleteSplit(c *gin.Context) {
	ac, ok := requireWrite(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteSplit(ac.EventID, c.Param("splitId")); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "split deleted"})
}
