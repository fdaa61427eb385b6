package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"robe-backend/internal/model"
	"robe-backend/internal/service"
	apperrors "robe-backend/pkg/errors"
)

// createCouponHandler handles POST /coupons, single-user or broadcast
func createCouponHandler(svc *service.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.CreateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "code and discount are required"})
			return
		}

		coupons, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			switch err {
			case apperrors.ErrMissingUserEmail:
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			case apperrors.ErrCouponCodeExists:
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Coupon code already exists"})
			case apperrors.ErrNoUsers:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No users found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create coupon"})
			}
			return
		}

		if req.ForAll {
			c.JSON(http.StatusCreated, gin.H{"success": true, "insertedCount": len(coupons)})
			return
		}
		c.JSON(http.StatusCreated, coupons[0])
	}
}

// verifyCouponHandler handles POST /verify-coupon, the pre-checkout read
func verifyCouponHandler(svc *service.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.VerifyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "code is required"})
			return
		}

		resp, err := svc.Verify(c.Request.Context(), req.Code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to verify coupon"})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// listCouponsHandler handles GET /coupons
func listCouponsHandler(svc *service.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list coupons"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "coupons": coupons})
	}
}

// deleteCouponHandler handles DELETE /coupons/:id
func deleteCouponHandler(svc *service.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), id); err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Coupon not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete coupon"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
