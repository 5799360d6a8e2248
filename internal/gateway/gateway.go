package gateway

import (
	"bitbucket.org/crgw/rental-gateway/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the storefront-facing API surface: the auth
// proxy, vehicle browsing, owner catalogs and payment initiation.
func RegisterRoutes(
	router *gin.Engine,
	sessions *redis.Client,
	responsesCache *redis.Client,
	optionFuncs ...upstream.OptionFunc,
) {
	group := router.Group("/api", PrepareSession(sessions, optionFuncs...))

	auth := group.Group("/auth")
	auth.POST("/login", loginHandler)
	auth.POST("/register", registerHandler)
	auth.GET("/profile", profileHandler)
	auth.POST("/logout", logoutHandler)

	group.GET("/vehicles/search/available", searchVehiclesHandler(responsesCache))
	group.GET("/vehicles/:id", vehicleDetailsHandler)
	group.GET("/vehicles/:id/insurances", ownerInsurancesHandler)
	group.GET("/vehicles/:id/equipments", ownerEquipmentsHandler)

	group.POST("/bookings/pay", initiatePaymentHandler)
}
