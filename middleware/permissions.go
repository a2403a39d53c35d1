package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccessContext describes what the authenticated caller may do with the
// event addressed by the current request. The host has every permission;
// team members get role-scoped access:
//
//	admin   - full control: guests, functions, budget, seating, team
//	manager - manage guests, functions, budget and seating; not the team
//	viewer  - read-only access to everything
type AccessContext struct {
	UserID  uint
	EventID string
	Role    string // host, admin, manager, viewer
}

func (a AccessContext) CanRead() bool {
	switch a.Role {
	case "host", "admin", "manager", "viewer":
		return true
	}
	return false
}

func (a AccessContext) CanWrite() bool {
	switch a.Role {
	case "host", "admin", "manager":
		return true
	}
	return false
}

func (a AccessContext) CanManageTeam() bool {
	return a.Role == "host" || a.Role == "admin"
}

// RoleResolver maps (event, user) to an event-scoped role. Implemented by
// the member service so middleware stays free of storage concerns.
type RoleResolver interface {
	ResolveEventRole(eventID string, userID uint) (string, error)
}

// EventAccess loads the caller's role on the event named by the :id route
// parameter and aborts with 403/404 when there is none.
func EventAccess(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Param("id")
		if eventID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing event id"})
			return
		}

		userID := c.GetUint("user_id")
		role, err := resolver.ResolveEventRole(eventID, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no access to this event"})
			return
		}

		c.Set("access_context", AccessContext{
			UserID:  userID,
			EventID: eventID,
			Role:    role,
		})
		c.Next()
	}
}

// GetAccessContext retrieves the access context set by EventAccess.
func GetAccessContext(c *gin.Context) (AccessContext, bool) {
	raw, exists := c.Get("access_context")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return AccessContext{}, false
	}
	ac, ok := raw.(AccessContext)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access context"})
		return AccessContext{}, false
	}
	return ac, true
}
