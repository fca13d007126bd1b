package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CtxUserID is the gin context key holding the verified caller UID.
	CtxUserID = "auth_uid"
)

// UserID extracts the authenticated user's UID from the gin context.
// It is set by the RequireUser middleware; empty means unauthenticated.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}
