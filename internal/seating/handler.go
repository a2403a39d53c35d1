package seating

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

// ===========================
// 🪑 Create Table - POST /events/:id/tables
func (h *Handler) CreateTable(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	t, err := h.Service.CreateTable(ac.EventID, &req)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// ===========================
// 📊 Seating Chart - GET /events/:id/tables
func (h *Handler) SeatingChart(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	views, err := h.Service.SeatingChart(ac.EventID)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, views)
}

// ===========================
// ❌ Delete Table - DELETE /events/:id/tables/:tableId
func (h *Handler) DeleteTable(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.DeleteTable(ac.EventID, c.Param("tableId"), ac.UserID, ip); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "table deleted"})
}

// ===========================
// 🎫 Assign Guest - POST /events/:id/tables/:tableId/assignments
func (h *Handler) AssignGuest(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req AssignGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	a, err := h.Service.AssignGuest(ac.EventID, c.Param("tableId"), req.GuestID, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// ===========================
// ❌ Unassign Guest - DELETE /events/:id/seating/guests/:guestId
func (h *Handler) UnassignGuest(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.UnassignGuest(ac.EventID, c.Param("guestId"), ac.UserID, ip); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guest unassigned"})
}

// ===========================
// 📄 Unassigned Guests - GET /events/:id/seating/unassigned
func (h *Handler) UnassignedGuests(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	guests, err := h.Service.UnassignedGuests(ac.EventID)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, guests)
}
