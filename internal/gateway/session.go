package gateway

import (
	"strings"

	"bitbucket.org/crgw/rental-gateway/internal/tools/credstore"
	"bitbucket.org/crgw/rental-gateway/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	SessionHeader      = "x-session-id"
	AccessTokenHeader  = "x-access-token"
	RefreshTokenHeader = "x-refresh-token"

	SessionKey string = "session"
	ClientKey  string = "upstreamClient"
)

// PrepareSession binds the request to a session: the session id comes
// from the x-session-id header (minted when absent), the token pair
// lives in redis under that id, and an upstream client wired to the
// session's credential store lands in the gin context for handlers.
//
// A caller that still holds its own bearer seeds an empty session with
// it, so stateless clients keep working.
func PrepareSession(sessions *redis.Client, optionFuncs ...upstream.OptionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := c.MustGet("logger").(*zerolog.Logger)
		ctx := c.Request.Context()

		sessionId := c.GetHeader(SessionHeader)
		if sessionId == "" {
			sessionId = uuid.New().String()
		}
		c.Header(SessionHeader, sessionId)

		store := credstore.New(credstore.NewRedisEngine(sessions, sessionId))

		if bearer := bearerToken(c); bearer != "" && !store.IsAuthenticated(ctx) {
			_ = store.SetTokens(ctx, bearer, c.GetHeader(RefreshTokenHeader))
		}

		sessionLogger := logger.With().Str("sessionId", sessionId).Logger()
		if token := store.AccessToken(ctx); token != "" {
			if identity := upstream.ParseIdentity(token); identity != nil {
				sessionLogger = sessionLogger.With().
					Int("userId", identity.UserId).
					Str("userEmail", identity.Email).
					Logger()
			}
		}
		c.Set("logger", &sessionLogger)

		// subscribed after seeding so only transitions made by the
		// handlers get traced
		events := store.Subscribe()

		c.Set(SessionKey, store)
		c.Set(ClientKey, upstream.New(store, &sessionLogger, optionFuncs...))

		c.Next()

		for {
			select {
			case event := <-events:
				sessionLogger.Info().
					Str("label", "auth-state").
					Str("transition", string(event.Type)).
					Msg("")
			default:
				return
			}
		}
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func sessionStore(c *gin.Context) *credstore.Store {
	return c.MustGet(SessionKey).(*credstore.Store)
}

func sessionClient(c *gin.Context) *upstream.Client {
	return c.MustGet(ClientKey).(*upstream.Client)
}
