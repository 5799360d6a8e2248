package gateway_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitbucket.org/crgw/rental-gateway/internal/gateway"
	"bitbucket.org/crgw/rental-gateway/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func setupRouter(t *testing.T, upstreamURL string, sessions *redis.Client, responsesCache *redis.Client) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	out := &bytes.Buffer{}
	log := zerolog.New(out)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("logger", &log)
	})

	gateway.RegisterRoutes(router, sessions, responsesCache, upstream.WithBaseURL(upstreamURL))

	return router
}

func serveRequest(router *gin.Engine, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestLoginRoute(t *testing.T) {
	t.Run("should persist the token pair and echo it back", func(t *testing.T) {
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			w.Write([]byte(`{"success":true,"user":{"id":7,"email":"jane@example.com"},"accessToken":"access","refreshToken":"refresh"}`))
		}))
		defer upstreamServer.Close()

		sessions, sessionsMock := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		sessionsMock.ExpectGet("session:test-session:accessToken").RedisNil()
		sessionsMock.ExpectGet("session:test-session:accessToken").RedisNil()
		sessionsMock.ExpectSetEx("session:test-session:accessToken", "access", 72*time.Hour).SetVal("OK")
		sessionsMock.ExpectSetEx("session:test-session:refreshToken", "refresh", 72*time.Hour).SetVal("OK")
		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("access")
		sessionsMock.ExpectGet("session:test-session:refreshToken").SetVal("refresh")

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(`{"email":"jane@example.com","password":"secret"}`))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "test-session", response.Header().Get(gateway.SessionHeader))
		assert.Equal(t, "access", response.Header().Get(gateway.AccessTokenHeader))
		assert.Equal(t, "refresh", response.Header().Get(gateway.RefreshTokenHeader))
		assert.Contains(t, response.Body.String(), `"success":true`)
		assert.Nil(t, sessionsMock.ExpectationsWereMet())
	})

	t.Run("should mint a session id when none is sent", func(t *testing.T) {
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"Invalid email or password"}`))
		}))
		defer upstreamServer.Close()

		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(`{"email":"jane@example.com","password":"wrong"}`))
		request.Header.Set("Content-Type", "application/json")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusUnauthorized, response.Code)
		assert.NotEmpty(t, response.Header().Get(gateway.SessionHeader))
		assert.JSONEq(t, `{"success":false,"message":"Invalid email or password"}`, response.Body.String())
	})

	t.Run("should reject malformed payloads before calling upstream", func(t *testing.T) {
		upstreamCalled := false
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			upstreamCalled = true
		}))
		defer upstreamServer.Close()

		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(`{"email":"jane@example.com"}`))
		request.Header.Set("Content-Type", "application/json")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.False(t, upstreamCalled)
	})
}

func TestProfileRoute(t *testing.T) {
	t.Run("should seed an empty session from a caller-held bearer", func(t *testing.T) {
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/profile", r.URL.Path)
			assert.Equal(t, "Bearer caller-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"id":7,"email":"jane@example.com"}`))
		}))
		defer upstreamServer.Close()

		sessions, sessionsMock := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		sessionsMock.ExpectGet("session:test-session:accessToken").RedisNil()
		sessionsMock.ExpectGet("session:test-session:accessToken").RedisNil()
		sessionsMock.ExpectSetEx("session:test-session:accessToken", "caller-token", 72*time.Hour).SetVal("OK")
		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("caller-token")
		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("caller-token")
		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("caller-token")
		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("caller-token")
		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("caller-token")

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("GET", "/api/auth/profile", nil)
		request.Header.Set(gateway.SessionHeader, "test-session")
		request.Header.Set("Authorization", "Bearer caller-token")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Profile fetched successfully"`)
		assert.Contains(t, response.Body.String(), `"jane@example.com"`)
		assert.Nil(t, sessionsMock.ExpectationsWereMet())
	})

	t.Run("should answer 401 on an empty session", func(t *testing.T) {
		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, "http://unused", sessions, responsesCache)

		request := httptest.NewRequest("GET", "/api/auth/profile", nil)
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusUnauthorized, response.Code)
		assert.Contains(t, response.Body.String(), `"success":false`)
	})
}

func TestLogoutRoute(t *testing.T) {
	t.Run("should drop the session's tokens", func(t *testing.T) {
		sessions, sessionsMock := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("access")
		sessionsMock.ExpectGet("session:test-session:accessToken").SetVal("access")
		sessionsMock.ExpectDel("session:test-session:accessToken", "session:test-session:refreshToken").SetVal(2)

		router := setupRouter(t, "http://unused", sessions, responsesCache)

		request := httptest.NewRequest("POST", "/api/auth/logout", nil)
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"success":true}`, response.Body.String())
		assert.Nil(t, sessionsMock.ExpectationsWereMet())
	})
}

func TestSearchRoute(t *testing.T) {
	t.Run("should fetch from upstream and cache the page on a miss", func(t *testing.T) {
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/vehicles/search/available", r.URL.Path)
			w.Write([]byte(`{"pagination":{"current_page":0},"data":[{"id":12,"carOwnerId":3}]}`))
		}))
		defer upstreamServer.Close()

		sessions, sessionsMock := redismock.NewClientMock()
		responsesCache, cacheMock := redismock.NewClientMock()

		sessionsMock.ExpectGet("session:test-session:accessToken").RedisNil()

		cacheKey := "vehicles:search:endDate=2026-09-05&startDate=2026-09-02"
		cacheMock.ExpectGet(cacheKey).RedisNil()
		cacheMock.Regexp().ExpectSetEx(cacheKey, `(?s).*`, time.Minute).SetVal("OK")

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("GET", "/api/vehicles/search/available?startDate=2026-09-02&endDate=2026-09-05", nil)
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"id":12`)
		assert.Nil(t, cacheMock.ExpectationsWereMet())
	})

	t.Run("should reject a search without dates", func(t *testing.T) {
		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, "http://unused", sessions, responsesCache)

		request := httptest.NewRequest("GET", "/api/vehicles/search/available", nil)
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func TestVehicleRoutes(t *testing.T) {
	t.Run("should reject a non-numeric vehicle id", func(t *testing.T) {
		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, "http://unused", sessions, responsesCache)

		request := httptest.NewRequest("GET", "/api/vehicles/abc", nil)
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("should always deliver an insurance catalog", func(t *testing.T) {
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/vehicles/12" {
				w.Write([]byte(`{"id":12,"carOwnerId":3}`))
				return
			}

			w.WriteHeader(http.StatusNotFound)
		}))
		defer upstreamServer.Close()

		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("GET", "/api/vehicles/12/insurances", nil)
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Basic Protection"`)
	})
}

func TestPaymentRoute(t *testing.T) {
	bookingPayload := `{"vehicleId":12,"startDate":"2026-09-02","endDate":"2026-09-05"}`

	t.Run("should answer with the extracted redirect URL", func(t *testing.T) {
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/bookings/v2/pay", r.URL.Path)
			w.Write([]byte(`{"checkoutUrl":"https://pay.example.com/55"}`))
		}))
		defer upstreamServer.Close()

		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("POST", "/api/bookings/pay", bytes.NewBufferString(bookingPayload))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"redirectUrl":"https://pay.example.com/55"}`, response.Body.String())
	})

	t.Run("should answer 502 when no redirect URL comes back", func(t *testing.T) {
		upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"bookingId":55}`))
		}))
		defer upstreamServer.Close()

		sessions, _ := redismock.NewClientMock()
		responsesCache, _ := redismock.NewClientMock()

		router := setupRouter(t, upstreamServer.URL, sessions, responsesCache)

		request := httptest.NewRequest("POST", "/api/bookings/pay", bytes.NewBufferString(bookingPayload))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set(gateway.SessionHeader, "test-session")

		response := serveRequest(router, request)

		assert.Equal(t, http.StatusBadGateway, response.Code)
		assert.JSONEq(t, `{"success":false,"message":"payment URL not received"}`, response.Body.String())
	})
}
