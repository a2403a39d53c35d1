package event

import (
	"net/http"
	"strconv"

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
// 🎯 Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.CreateEvent(&req, userID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ===========================
// 📄 List Events - GET /events?limit=&offset=&search=
func (h *Handler) ListEvents(c *gin.Context) {
	userID := c.GetUint("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	search := c.Query("search")

	events, err := h.Service.ListEventsByHost(userID, limit, offset, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	if _, ok := middleware.GetAccessContext(c); !ok {
		return
	}

	e, err := h.Service.GetEventByID(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// 🛠 Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.UpdateEvent(c.Param("id"), &req, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// ❌ Delete Event - DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	// Only the host or an admin may destroy the whole aggregate
	if !ac.CanManageTeam() {
		c.JSON(http.StatusForbidden, gin.H{"error": "delete access denied"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.DeleteEvent(c.Param("id"), ac.UserID, ip); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}

// ===========================
// 📊 Summary - GET /events/:id/summary
func (h *Handler) GetSummary(c *gin.Context) {
	if _, ok := middleware.GetAccessContext(c); !ok {
		return
	}

	sum, err := h.Service.GetSummary(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sum)
}

// ===========================
// 🔗 Deep Links - GET /events/:id/links
func (h *Handler) GetLinks(c *gin.Context) {
	if _, ok := middleware.GetAccessContext(c); !ok {
		return
	}

	links, err := h.Service.GetLinks(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, links)
}
