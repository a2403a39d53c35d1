package guest

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
// 🎯 Add Guest - POST /events/:id/guests
func (h *Handler) AddGuest(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req AddGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	g, err := h.Service.AddGuest(ac.EventID, &req, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, g)
}

// ===========================
// 📄 List Guests - GET /events/:id/guests?status=
func (h *Handler) ListGuests(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	guests, err := h.Service.ListGuests(ac.EventID, c.Query("status"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, guests)
}

// ===========================
// 🔍 Get Guest - GET /events/:id/guests/:guestId
func (h *Handler) GetGuest(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	g, err := h.Service.GetGuest(ac.EventID, c.Param("guestId"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, g)
}

// ===========================
// 🙋 Set RSVP - PATCH /events/:id/guests/:guestId/rsvp
func (h *Handler) SetRSVP(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req SetRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	g, err := h.Service.SetRSVP(ac.EventID, c.Param("guestId"), &req, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, g)
}

// ===========================
// 👥 Add Party Member - POST /events/:id/guests/:guestId/party-members
func (h *Handler) AddPartyMember(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	var req AddPartyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	m, err := h.Service.AddPartyMember(ac.EventID, c.Param("guestId"), &req, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ===========================
// 👥 Remove Party Member - DELETE /events/:id/guests/:guestId/party-members/:memberId
func (h *Handler) RemovePartyMember(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	err := h.Service.RemovePartyMember(ac.EventID, c.Param("guestId"), c.Param("memberId"))
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "party member removed"})
}

// ===========================
// ❌ Remove Guest - DELETE /events/:id/guests/:guestId
func (h *Handler) RemoveGuest(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "write access denied"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.RemoveGuest(ac.EventID, c.Param("guestId"), ac.UserID, ip); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guest removed"})
}
