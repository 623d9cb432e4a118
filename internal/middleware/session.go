package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"catalog_system/internal/domain"  // Importing domain models
	"catalog_system/internal/session" // Session token and snapshot cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// userContextKey is where the resolved acting user lives in the gin context.
const userContextKey = "user"

// CurrentUser resolves the session token (cookie first, Authorization header
// as a fallback) into a user snapshot and stores it in the request context.
// The snapshot comes from Redis when fresh and from the database otherwise.
// A missing, expired or forged token just means an anonymous request; guards
// that need authentication sit behind RequireUser.
func CurrentUser(db *gorm.DB, rdb *redis.Client, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if cookie, err := c.Cookie(session.CookieName); err == nil {
			tokenStr = cookie
		} else if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		}
		if tokenStr == "" {
			c.Next()
			return
		}
		claims, err := session.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		var user domain.User
		found, err := session.GetCache(ctx, rdb, session.UserKey(claims.Username), &user)
		if err != nil || !found {
			// Cache miss or Redis trouble: fall back to the database. A user
			// that no longer exists stays anonymous.
			if err := db.WithContext(ctx).Where("username = ?", claims.Username).First(&user).Error; err != nil {
				c.Next()
				return
			}
			_ = session.SetCache(ctx, rdb, session.UserKey(claims.Username), user, session.SnapshotTTL)
		}
		c.Set(userContextKey, &user)
		c.Next()
	}
}

// ActingUser returns the resolved session user for a request, or nil for an
// anonymous one.
func ActingUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// RequireUser aborts with 401 when the request carries no authenticated user
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActingUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
