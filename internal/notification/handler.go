package notification

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	return v.(uint), true
}

// ===========================
// 🔔 My Notifications - GET /notifications
func (h *Handler) GetMyInApp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var eventID *string
	if v := c.Query("event_id"); v != "" {
		eventID = &v
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.Service.ListInAppByUser(c.Request.Context(), userID, eventID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}

	unread, _ := h.Service.UnreadCount(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread_count": unread})
}

// ===========================
// ✅ Mark Read - POST /notifications/:notificationId/read
func (h *Handler) MarkInAppRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("notificationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.Service.MarkInAppAsRead(c.Request.Context(), uint(id), userID); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// ===========================
// 📱 Register Device Token - POST /notifications/devices
func (h *Handler) RegisterFCMToken(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		DeviceToken string `json:"device_token" binding:"required"`
		DeviceType  string `json:"device_type"`
		DeviceName  string `json:"device_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Service.RegisterDeviceToken(c.Request.Context(), userID, req.DeviceToken, req.DeviceType, req.DeviceName); err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device registered"})
}

// ===========================
// ❌ Unregister Device Token - DELETE /notifications/devices
func (h *Handler) UnregisterFCMToken(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		DeviceToken string `json:"device_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Service.RemoveDeviceToken(c.Request.Context(), userID, req.DeviceToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device unregistered"})
}

// ===========================
// ⏰ Trigger Reminders - POST /notifications/reminders
// Normally hit by a scheduler; exposed for ops use.
func (h *Handler) SendReminders(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "1"))
	if days <= 0 || days > 30 {
		days = 1
	}

	sent, err := h.Service.SendUpcomingReminders(c.Request.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		c.JSON(apperrors.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders_sent": sent})
}
