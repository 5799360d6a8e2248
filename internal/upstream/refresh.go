package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
	"bitbucket.org/crgw/rental-gateway/internal/tools/requesting"
)

// RefreshAccessToken exchanges the stored refresh token for a new token
// pair and returns the new access token, or "" when no usable token
// came out of the exchange.
//
// Every failure is terminal: a 400 or 401 means the refresh token itself
// is invalid, and any other failure leaves the session in an unknown
// state, so credentials are cleared across the board. Callers never see
// an error from here and the protocol never recurses.
func (c *Client) RefreshAccessToken(ctx context.Context) string {
	refreshToken := c.credentials.RefreshToken(ctx)
	if refreshToken == "" {
		return ""
	}

	// the token travels as query parameter and body both, the upstream
	// has accepted either at different times
	body, _ := json.Marshal(map[string]string{"refreshToken": refreshToken})
	path := "/api/auth/refresh?refreshToken=" + url.QueryEscape(refreshToken)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		c.clearOnRefreshFailure(ctx, "building refresh request failed", err)
		return ""
	}

	request.Header.Set("Content-Type", "application/json")

	response, responseErr := requesting.RequestErrors(c.httpClient().Do(request))
	if responseErr != nil {
		c.clearOnRefreshFailure(ctx, "refresh transport failure", responseErr)
		return ""
	}

	var parsed schema.RefreshResponse
	if err := requesting.DecodeJSON(response, "token refresh", &parsed); err != nil {
		c.clearOnRefreshFailure(ctx, "refresh rejected", err)
		return ""
	}

	if parsed.AccessToken == "" {
		c.clearOnRefreshFailure(ctx, "refresh response missing access token", nil)
		return ""
	}

	_ = c.credentials.SetTokens(ctx, parsed.AccessToken, parsed.RefreshToken)

	return parsed.AccessToken
}

func (c *Client) clearOnRefreshFailure(ctx context.Context, reason string, err error) {
	event := c.logger.Warn().Str("label", "token-refresh")
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(reason)

	_ = c.credentials.Clear(ctx)
}
