package export

import (
	"fmt"
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

// ===========================
// 📦 Account Export - GET /export/account
func (h *Handler) AccountExport(c *gin.Context) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	data, fname, mime, err := h.Service.AccountExport(v.(uint), ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}

// ===========================
// 📊 Guest List Export - GET /events/:id/export/guests?format=xlsx|csv
func (h *Handler) GuestList(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	data, fname, mime, err := h.Service.GuestList(ac.EventID, c.Query("format"), ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}

// ===========================
// 💰 Budget Report - GET /events/:id/export/budget
func (h *Handler) BudgetReport(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	data, fname, mime, err := h.Service.BudgetReport(ac.EventID, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}
