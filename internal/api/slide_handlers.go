package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"robe-backend/internal/model"
	"robe-backend/internal/repository"
	apperrors "robe-backend/pkg/errors"
)

// createSlideHandler handles POST /slides
func createSlideHandler(slides repository.SlideRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.CreateSlideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "image is required"})
			return
		}

		slide := &model.Slide{
			Image:     req.Image,
			Title:     req.Title,
			Subtitle:  req.Subtitle,
			CreatedAt: time.Now(),
		}
		if err := slides.Create(c.Request.Context(), slide); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create slide"})
			return
		}

		c.JSON(http.StatusCreated, slide)
	}
}

// listSlidesHandler handles GET /slides
func listSlidesHandler(slides repository.SlideRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := slides.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list slides"})
			return
		}

		c.JSON(http.StatusOK, all)
	}
}

// getSlideHandler handles GET /slides/:id
func getSlideHandler(slides repository.SlideRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		slide, err := slides.GetByID(c.Request.Context(), id)
		if err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Slide not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get slide"})
			}
			return
		}

		c.JSON(http.StatusOK, slide)
	}
}

// updateSlideHandler handles PUT /slides/:id with a partial field merge
func updateSlideHandler(slides repository.SlideRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var req model.UpdateSlideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		fields := bson.M{}
		if req.Image != nil {
			// The banner image stays required
			if *req.Image == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "image cannot be empty"})
				return
			}
			fields["image"] = *req.Image
		}
		if req.Title != nil {
			fields["title"] = *req.Title
		}
		if req.Subtitle != nil {
			fields["subtitle"] = *req.Subtitle
		}
		if len(fields) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no fields to update"})
			return
		}

		if err := slides.Update(c.Request.Context(), id, fields); err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Slide not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update slide"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// deleteSlideHandler handles DELETE /slides/:id
func deleteSlideHandler(slides repository.SlideRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := slides.Delete(c.Request.Context(), id); err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Slide not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete slide"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
