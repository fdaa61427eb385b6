package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"robe-backend/pkg/media"
)

type uploadRequest struct {
	Image string `json:"image"`
}

// uploadHandler handles POST /upload: forward the image to the media gateway
// and return the hosted URL.
func uploadHandler(uploader media.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req uploadRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image provided"})
			return
		}

		url, err := uploader.Upload(c.Request.Context(), req.Image)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
	}
}
