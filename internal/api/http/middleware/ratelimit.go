package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/tilemaker-app/tilemaker-backend/internal/auth"
)

// UploadRateLimit bounds upload traffic per authenticated user. Image uploads
// carry multi-megabyte bodies, so a slow refill with a small burst keeps one
// user from saturating the store.
func UploadRateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(uid string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[uid]
		if !ok {
			l = rate.NewLimiter(r, burst)
			limiters[uid] = l
		}
		return l
	}

	return func(c *gin.Context) {
		uid := auth.UserID(c)
		if uid == "" {
			// RequireUser runs first; this is a wiring error, not a user error.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !limiterFor(uid).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many uploads, slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
