package web

import (
	"net/http"
	"os"
	"time"

	"bitbucket.org/crgw/rental-gateway/internal/gateway"
	"bitbucket.org/crgw/rental-gateway/internal/tools/redisfactory"
	"bitbucket.org/crgw/rental-gateway/internal/upstream"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRouter(log *zerolog.Logger, redisFactory *redisfactory.Factory) *gin.Engine {
	var (
		startTime       = time.Now()
		openApiLocation = os.Getenv("OPENAPI_LOCATION")
	)

	if openApiLocation == "" {
		openApiLocation = "./api/openapi.json"
	}

	openApiContent, _ := os.ReadFile(openApiLocation)

	router := gin.New()

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery).
		Use(OpenapiValidator(openApiLocation))

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, string(openApiContent))
	})

	pprof.Register(router)

	gateway.RegisterRoutes(
		router,
		redisFactory.SessionsClient(),
		redisFactory.ResponsesCacheClient(),
		upstream.WithPathConvention(upstream.PathConvention(os.Getenv("CATALOG_PATH_CONVENTION"))),
	)

	return router
}
