package member

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
// ✉️ Invite Member - POST /events/:id/members
func (h *Handler) InviteMember(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanManageTeam() {
		c.JSON(http.StatusForbidden, gin.H{"error": "team management access denied"})
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	m, err := h.Service.InviteMember(ac.EventID, &req, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ===========================
// 📄 List Members - GET /events/:id/members
func (h *Handler) ListMembers(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}

	members, err := h.Service.ListMembers(ac.EventID)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, members)
}

// ===========================
// ✅ Accept Invite - POST /members/accept
// Not event-scoped: the code alone identifies the membership.
func (h *Handler) AcceptInvite(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	m, err := h.Service.AcceptInvite(req.Code, userID.(uint), ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// 🔧 Change Role - PUT /events/:id/members/:memberId/role
func (h *Handler) ChangeRole(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanManageTeam() {
		c.JSON(http.StatusForbidden, gin.H{"error": "team management access denied"})
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	m, err := h.Service.ChangeRole(ac.EventID, c.Param("memberId"), req.Role, ac.UserID, ip)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// ❌ Remove Member - DELETE /events/:id/members/:memberId
func (h *Handler) RemoveMember(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		return
	}
	if !ac.CanManageTeam() {
		c.JSON(http.StatusForbidden, gin.H{"error": "team management access denied"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.RemoveMember(ac.EventID, c.Param("memberId"), ac.UserID, ip); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}
