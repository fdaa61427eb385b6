package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/repository"
	apperrors "robe-backend/pkg/errors"
)

// parseID validates the :id path parameter. A malformed identifier is a
// client error, never a server error.
func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// createProductHandler handles POST /products. Products have no fixed schema;
// the request body is stored as-is.
func createProductHandler(products repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc bson.M
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		id, err := products.Create(c.Request.Context(), doc)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"insertedId": id.Hex()}})
	}
}

// listProductsHandler handles GET /products
func listProductsHandler(products repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := products.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": docs})
	}
}

// getProductHandler handles GET /products/:id
func getProductHandler(products repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		doc, err := products.GetByID(c.Request.Context(), id)
		if err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get product"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": doc})
	}
}

// updateProductHandler handles PUT /products/:id with a partial field merge
func updateProductHandler(products repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var fields bson.M
		if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		delete(fields, "_id")

		if err := products.Update(c.Request.Context(), id, fields); err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update product"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// deleteProductHandler handles DELETE /products/:id
func deleteProductHandler(products repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := products.Delete(c.Request.Context(), id); err != nil {
			switch err {
			case apperrors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete product"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
