package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"robe-backend/internal/model"
	"robe-backend/internal/service"
	apperrors "robe-backend/pkg/errors"
)

// placeOrderHandler handles POST /orders. A referenced coupon is redeemed in
// the same transaction as the order insert; an exhausted or unknown code
// rejects the order before anything is written.
func placeOrderHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order model.Order
		if err := c.ShouldBindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		id, err := svc.Place(c.Request.Context(), &order)
		if err != nil {
			switch err {
			case apperrors.ErrInvalidOrder:
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			case apperrors.ErrCouponAlreadyUsed:
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Coupon already used!"})
			case apperrors.ErrCouponNotFound:
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid coupon"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to place order"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"orderId": id.Hex()})
	}
}

// listOrdersHandler handles GET /orders, newest first
func listOrdersHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
