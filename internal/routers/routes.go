package routers

import (
	auth "coverly-api-io/api/internal/auth"
	"coverly-api-io/api/internal/container"
	"coverly-api-io/api/internal/middleware"
	"coverly-api-io/api/pkg/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoute creates the Gin router with the payment method endpoints.
func InitRoute(sc *container.ServiceContainer) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.CoverlyRateLimiter(sc.Redis))
	{
		api.GET("/ping", controllers.Ping)

		paymentMethodRoutes(api, sc)
	}

	return router
}

// paymentMethodRoutes configures the payment-method endpoints, all
// behind authentication.
func paymentMethodRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	pc := sc.PaymentMethodController

	secured := api.Group("/users/:userid/payment-methods").Use(auth.Auth(sc.Redis))
	{
		secured.GET("", pc.GetPaymentMethods())
		secured.POST("", pc.AddPaymentMethod())
		secured.GET("/:methodid", pc.GetPaymentMethod())
		secured.PATCH("/:methodid", pc.UpdatePaymentMethod())
		secured.DELETE("/:methodid", pc.DeletePaymentMethod())
		secured.POST("/:methodid/default", pc.SetDefaultPaymentMethod())
	}
}
