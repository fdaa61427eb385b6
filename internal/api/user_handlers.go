package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"robe-backend/internal/model"
	"robe-backend/internal/repository"
	apperrors "robe-backend/pkg/errors"
)

// upsertUserHandler handles POST /users: create a login record on first
// login, refresh lastLogin afterwards. 201 on create, 200 on update.
func upsertUserHandler(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.UpsertUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email and uid are required"})
			return
		}

		role := req.Role
		if role == "" {
			role = "customer"
		}

		now := time.Now()
		user := &model.User{
			Email:     req.Email,
			UID:       req.UID,
			Name:      req.Name,
			Photo:     req.Photo,
			Role:      role,
			CreatedAt: now,
			LastLogin: now,
		}

		created, err := users.UpsertByEmail(c.Request.Context(), user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save user"})
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"success": true})
	}
}

// listUsersHandler handles GET /users
func listUsersHandler(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list users"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "users": all})
	}
}

// getUserRoleHandler handles GET /users/role/:email
func getUserRoleHandler(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := users.GetRoleByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"role": nil})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get role"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"role": role})
	}
}
