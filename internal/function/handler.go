package function

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🎯 Create Function - POST /events/:id/functions
func (h *Handler) CreateFunction(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req CreateFunctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	f, err := h.Service.CreateFunction(ac.EventID, &req, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, f)
}

// ===========================
// 📄 List Functions - GET /events/:id/functions
func (h *Handler) ListFunctions(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	fs, err := h.Service.ListFunctions(ac.EventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list functions"})
		return
	}

	c.JSON(http.StatusOK, fs)
}

// ===========================
// ❌ Delete Function - DELETE /events/:id/functions/:functionId
func (h *Handler) DeleteFunction(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.DeleteFunction(ac.EventID, c.Param("functionId"), ac.UserID, ip); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "function deleted"})
}

// ===========================
// ✉️ Create Invite - POST /events/:id/functions/:functionId/invites
func (h *Handler) CreateInvite(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req struct {
		GuestID string `json:"guest_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	inv, err := h.Service.CreateInvite(ac.EventID, c.Param("functionId"), req.GuestID)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// ===========================
// ✉️ Bulk Invite - POST /events/:id/invites/bulk
func (h *Handler) BulkInvite(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req BulkInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	invites, err := h.Service.BulkInvite(ac.EventID, &req, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, invites)
}

// ===========================
// 📨 Mark Sent - POST /events/:id/invites/:inviteId/sent
func (h *Handler) MarkSent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req MarkSentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	inv, err := h.Service.MarkSent(ac.EventID, c.Param("inviteId"), req.Channel)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// ===========================
// 📝 Record Response - POST /events/:id/invites/:inviteId/response
func (h *Handler) RecordResponse(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req RecordResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	inv, err := h.Service.RecordResponse(ac.EventID, c.Param("inviteId"), &req, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// ===========================
// 📄 List Invites - GET /events/:id/functions/:functionId/invites
func (h *Handler) ListInvites(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	invites, err := h.Service.ListInvites(ac.EventID, c.Param("functionId"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invites)
}

// ===========================
// 📤 Bulk Send - POST /events/:id/invites/send
func (h *Handler) BulkSend(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req struct {
		FunctionIDs []string `json:"function_ids" binding:"required"`
		Channel     string   `json:"channel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	result, err := h.Service.PrepareBulkSend(c.Request.Context(), ac.EventID, req.FunctionIDs, req.Channel, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===========================
// 🔗 Public RSVP page - GET /rsvp/:eventId/:guestId
// Resolved from the deep link; no authentication, the guest id is the
// capability.
func (h *Handler) GuestRSVPContext(c *gin.Context) {
	eventID := c.Param("eventId")
	guestID := c.Param("guestId")

	functions, err := h.Service.ListFunctions(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load functions"})
		return
	}

	invites, err := h.Service.GuestInvites(eventID, guestID)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id":  eventID,
		"guest_id":  guestID,
		"functions": functions,
		"invites":   invites,
	})
}

// ===========================
// 🔗 Public RSVP submit - POST /rsvp/:eventId/:guestId/:functionId
func (h *Handler) GuestRSVPSubmit(c *gin.Context) {
	var req RecordResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	inv, err := h.Service.SubmitGuestResponse(c.Param("eventId"), c.Param("guestId"), c.Param("functionId"), &req, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inv)
}
