package api

import (
	"errors"   // Error kind matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"catalog_system/internal/store" // Domain error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError maps a domain error kind onto an HTTP status. Validation
// errors go back to the client with their message; internal failures are
// logged with the underlying cause and answered with a generic message only.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, store.ErrIncorrectCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrDuplicateUser), errors.Is(err, store.ErrDuplicateItem):
		status = http.StatusConflict
	case errors.Is(err, store.ErrEmptyFields),
		errors.Is(err, store.ErrPasswordsDiffer),
		errors.Is(err, store.ErrWeakPassword),
		errors.Is(err, store.ErrIllegalUsername),
		errors.Is(err, store.ErrIllegalLocator),
		errors.Is(err, store.ErrNotValidImage):
		status = http.StatusUnprocessableEntity
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": store.ErrInternal.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pageIndex reads the optional ?page= query parameter. Absent or malformed
// means the first page; out-of-range values are passed through so the store
// can answer with "no page".
func pageIndex(c *gin.Context) int {
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			return v
		}
	}
	return 0
}
