package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"catalog_system/internal/authz"      // Authorization policy
	"catalog_system/internal/images"     // Image store collaborator
	"catalog_system/internal/middleware" // Session resolution
	"catalog_system/internal/session"    // Snapshot cache invalidation
	"catalog_system/internal/store"      // Query & account layer

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ListUsersHandler returns one window of the member list, optionally fuzzy
// filtered by ?search=
func ListUsersHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := s.ListUsers(c.Request.Context(), pageIndex(c), c.Query("search"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page})
	}
}

// GetUserHandler returns one profile with a window of its rating history
func GetUserHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		username := c.Param("username")
		user, err := s.GetUser(ctx, username)
		if err != nil {
			respondError(c, err)
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ratings, err := s.UserRatings(ctx, username, pageIndex(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "ratings": ratings})
	}
}

// Request struct for editing a profile; omitted fields stay unchanged. The
// password changes only when both password fields are sent non-blank.
type EditUserRequest struct {
	NewUsername  *string `json:"new_username"`
	ClearAvatar  bool    `json:"clear_avatar"`
	NewPassword1 *string `json:"new_password1"`
	NewPassword2 *string `json:"new_password2"`
}

// EditUserHandler partially updates a profile: the owner or an admin. A
// rename moves the avatar object and refreshes the editor's own session so
// the new name takes effect immediately.
func EditUserHandler(s *store.Store, imgs *images.Store, rdb *redis.Client, jwtSecret string, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		username := c.Param("username")
		actor := middleware.ActingUser(c)
		if !authz.CanEditUser(actor, username) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		var req EditUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		upd := store.UpdateUser{
			NewUsername:  req.NewUsername,
			NewPassword1: req.NewPassword1,
			NewPassword2: req.NewPassword2,
		}
		if req.ClearAvatar {
			cleared := false
			upd.HasAvatar = &cleared
		}
		if err := s.EditUser(ctx, username, upd); err != nil {
			respondError(c, err)
			return
		}
		renamed := req.NewUsername != nil && *req.NewUsername != username
		finalName := username
		if renamed {
			finalName = *req.NewUsername
		}
		// Avatar objects are keyed by username; follow the profile mutation.
		if req.ClearAvatar {
			if err := imgs.Remove(ctx, images.AvatarKey(username)); err != nil {
				logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Warn("Avatar removal failed")
			}
		} else if renamed {
			if err := imgs.Rename(ctx, images.AvatarKey(username), images.AvatarKey(finalName)); err != nil {
				logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Warn("Avatar rename failed")
			}
		}
		// The cached snapshot is stale now.
		_ = session.DeleteCache(ctx, rdb, session.UserKey(username))
		if actor.Username == username {
			if !issueSession(c, finalName, jwtSecret, secureCookies) {
				return
			}
		}
		user, err := s.GetUser(ctx, finalName)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// RemoveUserHandler deletes an account: the owner or an admin, but admin
// accounts can never be removed
func RemoveUserHandler(s *store.Store, imgs *images.Store, rdb *redis.Client, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		username := c.Param("username")
		actor := middleware.ActingUser(c)
		target, err := s.GetUser(ctx, username)
		if err != nil {
			respondError(c, err)
			return
		}
		if target == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if !authz.CanRemoveUser(actor, target) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if err := s.RemoveUser(ctx, username); err != nil {
			respondError(c, err)
			return
		}
		if target.HasAvatar {
			if err := imgs.Remove(ctx, images.AvatarKey(username)); err != nil {
				logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Warn("Avatar removal failed")
			}
		}
		_ = session.DeleteCache(ctx, rdb, session.UserKey(username))
		if actor.Username == username {
			clearSessionCookie(c, secureCookies)
		}
		c.JSON(http.StatusOK, gin.H{"message": "User removed"})
	}
}

// UploadAvatarHandler stores an avatar for an existing user. Only image/*
// uploads are accepted.
func UploadAvatarHandler(s *store.Store, imgs *images.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !imgs.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not available"})
			return
		}
		ctx := c.Request.Context()
		username := c.Param("username")
		if !authz.CanEditUser(middleware.ActingUser(c), username) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		user, err := s.GetUser(ctx, username)
		if err != nil {
			respondError(c, err)
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		file, err := c.FormFile("avatar")
		if err != nil {
			respondError(c, store.ErrEmptyFields)
			return
		}
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			respondError(c, store.ErrNotValidImage)
			return
		}
		src, err := file.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer src.Close()
		if err := imgs.Upload(ctx, images.AvatarKey(username), contentType, src); err != nil {
			respondError(c, err)
			return
		}
		hasAvatar := true
		if err := s.EditUser(ctx, username, store.UpdateUser{HasAvatar: &hasAvatar}); err != nil {
			respondError(c, err)
			return
		}
		_ = session.DeleteCache(ctx, rdb, session.UserKey(username))
		c.JSON(http.StatusOK, gin.H{"message": "Avatar uploaded"})
	}
}
