package gateway

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
	"bitbucket.org/crgw/rental-gateway/internal/tools/caching"
	"bitbucket.org/crgw/rental-gateway/internal/tools/credstore"
	"bitbucket.org/crgw/rental-gateway/internal/tools/middleware"
	"bitbucket.org/crgw/rental-gateway/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const searchCacheTTL = time.Minute

func loginHandler(c *gin.Context) {
	var credentials schema.LoginRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		middleware.HandleError(c, http.StatusBadRequest, "Failed to bind request params", err)
		return
	}

	result, err := sessionClient(c).Login(c.Request.Context(), credentials)
	if err != nil {
		handleResponseError(c, err, "Login failed")
		return
	}

	echoTokens(c, sessionStore(c), "")
	c.JSON(http.StatusOK, result)
}

func registerHandler(c *gin.Context) {
	var registration schema.RegisterRequest
	if err := c.ShouldBindJSON(&registration); err != nil {
		middleware.HandleError(c, http.StatusBadRequest, "Failed to bind request params", err)
		return
	}

	result, err := sessionClient(c).Register(c.Request.Context(), registration)
	if err != nil {
		handleResponseError(c, err, "Registration failed")
		return
	}

	echoTokens(c, sessionStore(c), "")
	c.JSON(http.StatusOK, result)
}

func profileHandler(c *gin.Context) {
	store := sessionStore(c)
	previousToken := store.AccessToken(c.Request.Context())

	profile, err := sessionClient(c).Profile(c.Request.Context())
	if err != nil {
		handleResponseError(c, err, "Failed to fetch profile")
		return
	}

	echoTokens(c, store, previousToken)
	c.JSON(http.StatusOK, profile)
}

func logoutHandler(c *gin.Context) {
	sessionClient(c).Logout(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func searchVehiclesHandler(responsesCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := c.MustGet("logger").(*zerolog.Logger)

		var searchQuery schema.VehicleSearchQuery
		if err := c.ShouldBindQuery(&searchQuery); err != nil {
			middleware.HandleError(c, http.StatusBadRequest, "Failed to bind request params", err)
			return
		}

		slowLog := slowlog.CreateLogger(logger)
		slowLog.Start("vehicles:search")

		cache := caching.NewRedisCache(responsesCache)
		cacheKey := searchCacheKey(searchQuery)

		var cached schema.VehicleSearchResponse
		if cache.Fetch(c.Request.Context(), cacheKey, &cached) {
			c.JSON(http.StatusOK, cached)
			slowLog.Stop("vehicles:search")
			return
		}

		result, err := sessionClient(c).SearchAvailableVehicles(c.Request.Context(), searchQuery)
		if err != nil {
			handleResponseError(c, err, "Vehicle search failed")
			return
		}

		if err := cache.Store(c.Request.Context(), cacheKey, result, searchCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache vehicle search response")
		}

		c.JSON(http.StatusOK, result)
		slowLog.Stop("vehicles:search")
	}
}

func searchCacheKey(searchQuery schema.VehicleSearchQuery) string {
	values, _ := query.Values(searchQuery)

	return "vehicles:search:" + values.Encode()
}

func vehicleDetailsHandler(c *gin.Context) {
	vehicleId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, http.StatusBadRequest, "Invalid vehicle id", err)
		return
	}

	store := sessionStore(c)
	previousToken := store.AccessToken(c.Request.Context())

	vehicle, err := sessionClient(c).VehicleDetails(c.Request.Context(), vehicleId)
	if err != nil {
		handleResponseError(c, err, "Failed to fetch vehicle details")
		return
	}

	echoTokens(c, store, previousToken)
	c.JSON(http.StatusOK, vehicle)
}

func ownerInsurancesHandler(c *gin.Context) {
	vehicleId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, http.StatusBadRequest, "Invalid vehicle id", err)
		return
	}

	c.JSON(http.StatusOK, sessionClient(c).OwnerInsurances(c.Request.Context(), vehicleId))
}

func ownerEquipmentsHandler(c *gin.Context) {
	vehicleId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, http.StatusBadRequest, "Invalid vehicle id", err)
		return
	}

	c.JSON(http.StatusOK, sessionClient(c).OwnerEquipments(c.Request.Context(), vehicleId))
}

func initiatePaymentHandler(c *gin.Context) {
	var booking schema.BookingRequest
	if err := c.ShouldBindJSON(&booking); err != nil {
		middleware.HandleError(c, http.StatusBadRequest, "Failed to bind request params", err)
		return
	}

	store := sessionStore(c)
	previousToken := store.AccessToken(c.Request.Context())

	redirectUrl, err := sessionClient(c).InitiatePayment(c.Request.Context(), booking)
	if err != nil {
		handleResponseError(c, err, "Payment initiation failed")
		return
	}

	echoTokens(c, store, previousToken)
	c.JSON(http.StatusOK, schema.BookingRedirect{RedirectUrl: redirectUrl})
}

// echoTokens surfaces a rotated token pair back to the caller through
// response headers, before the body is written.
func echoTokens(c *gin.Context, store *credstore.Store, previousToken string) {
	accessToken := store.AccessToken(c.Request.Context())
	if accessToken == "" || accessToken == previousToken {
		return
	}

	c.Header(AccessTokenHeader, accessToken)
	c.Header(RefreshTokenHeader, store.RefreshToken(c.Request.Context()))
}

// handleResponseError maps the client error taxonomy onto gateway
// statuses. Upstream statuses pass through when they are themselves
// errors; shape errors where the upstream claimed success become 502s.
func handleResponseError(c *gin.Context, err error, fallback string) {
	var responseError *schema.ResponseError
	if !errors.As(err, &responseError) {
		middleware.HandleError(c, http.StatusInternalServerError, fallback, err)
		return
	}

	status := http.StatusInternalServerError

	switch responseError.Code {
	case schema.HTMLBodyError, schema.BackendError:
		if responseError.Status >= http.StatusBadRequest {
			status = responseError.Status
		} else {
			status = http.StatusBadGateway
		}
	case schema.InvalidJSONError, schema.PaymentURLError:
		status = http.StatusBadGateway
	case schema.SessionExpiredError:
		status = http.StatusUnauthorized
	case schema.TimeoutError:
		status = http.StatusGatewayTimeout
	case schema.ConnectionError:
		status = http.StatusInternalServerError
	}

	middleware.HandleError(c, status, responseError.Message, responseError)
}
