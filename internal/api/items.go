package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"catalog_system/internal/images"     // Image store collaborator
	"catalog_system/internal/middleware" // Session resolution
	"catalog_system/internal/store"      // Query & ranking layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListItemsHandler returns one window of the catalog, optionally fuzzy
// filtered by ?search=. An out-of-range page is answered with a 200 and a
// null page, mirroring the store's "no page" result.
func ListItemsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := s.ListItems(c.Request.Context(), pageIndex(c), c.Query("search"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page})
	}
}

// GetItemHandler returns one item with a window of its rating history and,
// for an authenticated caller, their own rating
func GetItemHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		locator := c.Param("locator")
		item, err := s.GetItem(ctx, locator)
		if err != nil {
			respondError(c, err)
			return
		}
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		ratings, err := s.ItemRatings(ctx, locator, pageIndex(c))
		if err != nil {
			respondError(c, err)
			return
		}
		var own *int16
		if actor := middleware.ActingUser(c); actor != nil {
			own, err = s.GetRating(ctx, locator, actor.Username)
			if err != nil {
				respondError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"item": item, "ratings": ratings, "your_rating": own})
	}
}

// Request struct for adding an item
type AddItemRequest struct {
	Locator     string `json:"locator" binding:"required"`     // URL-safe identifier
	Title       string `json:"title" binding:"required"`       // Display title
	Description string `json:"description" binding:"required"` // Description
}

// AddItemHandler creates a catalog item (admin only, guarded by middleware)
func AddItemHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := s.AddItem(c.Request.Context(), req.Locator, req.Title, req.Description); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Item added"})
	}
}

// Request struct for editing an item; omitted fields stay unchanged
type EditItemRequest struct {
	NewLocator     *string `json:"new_locator"`
	NewTitle       *string `json:"new_title"`
	NewDescription *string `json:"new_description"`
}

// EditItemHandler partially updates an item. A locator rename also moves the
// cover image, since images are keyed by locator.
func EditItemHandler(s *store.Store, imgs *images.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		locator := c.Param("locator")
		var req EditItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		err := s.EditItem(c.Request.Context(), locator, store.UpdateItem{
			NewLocator:     req.NewLocator,
			NewTitle:       req.NewTitle,
			NewDescription: req.NewDescription,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if req.NewLocator != nil && *req.NewLocator != locator {
			if err := imgs.Rename(c.Request.Context(), images.ItemKey(locator), images.ItemKey(*req.NewLocator)); err != nil {
				logrus.WithFields(logrus.Fields{"locator": locator, "error": err.Error()}).Warn("Cover image rename failed")
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
	}
}

// RemoveItemHandler deletes an item, its reviews (by cascade) and its cover
// image
func RemoveItemHandler(s *store.Store, imgs *images.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		locator := c.Param("locator")
		if err := s.RemoveItem(c.Request.Context(), locator); err != nil {
			respondError(c, err)
			return
		}
		if err := imgs.Remove(c.Request.Context(), images.ItemKey(locator)); err != nil {
			logrus.WithFields(logrus.Fields{"locator": locator, "error": err.Error()}).Warn("Cover image removal failed")
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
	}
}

// UploadItemImageHandler stores a cover image for an existing item. Only
// image/* uploads are accepted.
func UploadItemImageHandler(s *store.Store, imgs *images.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !imgs.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not available"})
			return
		}
		ctx := c.Request.Context()
		locator := c.Param("locator")
		item, err := s.GetItem(ctx, locator)
		if err != nil {
			respondError(c, err)
			return
		}
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		file, err := c.FormFile("image")
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
		if err := imgs.Upload(ctx, images.ItemKey(locator), contentType, src); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Image uploaded"})
	}
}
