package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
	"bitbucket.org/crgw/rental-gateway/internal/tools/requesting"
	"github.com/golang-jwt/jwt/v4"
)

// Login authenticates against the upstream and persists the returned
// token pair into the session's credential store.
func (c *Client) Login(ctx context.Context, credentials schema.LoginRequest) (*schema.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", "login", credentials)
}

// Register creates an account; the upstream signs the new user in
// directly, so tokens are persisted the same way as for login.
func (c *Client) Register(ctx context.Context, registration schema.RegisterRequest) (*schema.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", "registration", registration)
}

func (c *Client) authenticate(ctx context.Context, path string, operation string, payload any) (*schema.AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	// unauthenticated call on purpose: no bearer, no 401 retry
	response, err := c.send(ctx, http.MethodPost, path, body, nil, "")
	if err != nil {
		return nil, err
	}

	var result schema.AuthResponse
	if err := requesting.DecodeJSON(response, operation, &result); err != nil {
		return nil, err
	}

	if result.AccessToken != "" {
		_ = c.credentials.SetTokens(ctx, result.AccessToken, result.RefreshToken)
	}

	return &result, nil
}

// Profile fetches the signed-in user. A 401 that survives the refresh
// cycle is surfaced as a session-expired condition and ends the session.
func (c *Client) Profile(ctx context.Context) (*schema.AuthResponse, error) {
	if !c.credentials.IsAuthenticated(ctx) {
		return nil, schema.NewSessionExpiredError()
	}

	response, err := c.Do(ctx, http.MethodGet, "/api/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusUnauthorized {
		response.Body.Close()
		_ = c.credentials.Clear(ctx)
		return nil, schema.NewSessionExpiredError()
	}

	profile, err := requesting.DecodeProfileJSON(response, "profile")
	if err != nil {
		return nil, err
	}

	// some upstream versions rotate tokens on profile reads
	if profile.AccessToken != "" {
		_ = c.credentials.SetTokens(ctx, profile.AccessToken, profile.RefreshToken)
	}

	return profile, nil
}

// Logout drops the session's credentials. The upstream holds no session
// state worth revoking.
func (c *Client) Logout(ctx context.Context) {
	_ = c.credentials.Clear(ctx)
}

type Identity struct {
	UserId int
	Email  string
}

type identityClaims struct {
	UserId int    `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ParseIdentity extracts the user identity carried in an access token
// for logging purposes. The signature is deliberately not verified: the
// upstream is the authority on token validity, this is display data.
func ParseIdentity(accessToken string) *Identity {
	token, _ := jwt.ParseWithClaims(accessToken, &identityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return nil, nil
	})
	if token == nil {
		return nil
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok {
		return nil
	}

	if claims.UserId == 0 && claims.Email == "" && claims.Subject == "" {
		return nil
	}

	identity := &Identity{
		UserId: claims.UserId,
		Email:  claims.Email,
	}

	if identity.Email == "" {
		identity.Email = claims.Subject
	}

	return identity
}
