package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"robe-backend/internal/repository"
	"robe-backend/internal/service"
	"robe-backend/pkg/media"
)

// Deps carries everything the HTTP surface needs. Handlers receive their
// collaborators explicitly; there is no package-level state.
type Deps struct {
	Logger *zap.Logger

	Products repository.ProductRepository
	Users    repository.UserRepository
	Slides   repository.SlideRepository

	Coupons *service.CouponService
	Orders  *service.OrderService

	Uploader media.Uploader

	AllowedOrigins []string
}

// NewRouter builds the gin engine with all middleware and routes registered.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(deps.Logger))
	router.Use(corsMiddleware(deps.AllowedOrigins))
	router.Use(bodySizeLimit(maxBodyBytes))

	// Liveness
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "E-Commerce of Robe by Shomshed is running..")
	})

	router.POST("/upload", uploadHandler(deps.Uploader))

	router.POST("/products", createProductHandler(deps.Products))
	router.GET("/products", listProductsHandler(deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))
	router.PUT("/products/:id", updateProductHandler(deps.Products))
	router.DELETE("/products/:id", deleteProductHandler(deps.Products))

	router.POST("/orders", placeOrderHandler(deps.Orders))
	router.GET("/orders", listOrdersHandler(deps.Orders))

	router.POST("/coupons", createCouponHandler(deps.Coupons))
	router.GET("/coupons", listCouponsHandler(deps.Coupons))
	router.DELETE("/coupons/:id", deleteCouponHandler(deps.Coupons))
	router.POST("/verify-coupon", verifyCouponHandler(deps.Coupons))

	router.POST("/users", upsertUserHandler(deps.Users))
	router.GET("/users", listUsersHandler(deps.Users))
	router.GET("/users/role/:email", getUserRoleHandler(deps.Users))

	router.POST("/slides", createSlideHandler(deps.Slides))
	router.GET("/slides", listSlidesHandler(deps.Slides))
	router.GET("/slides/:id", getSlideHandler(deps.Slides))
	router.PUT("/slides/:id", updateSlideHandler(deps.Slides))
	router.DELETE("/slides/:id", deleteSlideHandler(deps.Slides))

	return router
}
