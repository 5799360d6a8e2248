package upstream

import (
	"bytes"
	"context"
	"net/http"

	"bitbucket.org/crgw/rental-gateway/internal/tools/requesting"
)

// Do issues an authenticated request against the upstream API.
//
// If the first response is a 401 the refresh protocol runs exactly once
// and the request is reissued once with the new token. A failed refresh
// hands the original 401 back unchanged; there is never a second refresh
// or retry within one call.
func (c *Client) Do(ctx context.Context, method string, path string, body []byte, headers http.Header) (*http.Response, error) {
	response, err := c.send(ctx, method, path, body, headers, c.credentials.AccessToken(ctx))
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusUnauthorized {
		return response, nil
	}

	newToken := c.RefreshAccessToken(ctx)
	if newToken == "" {
		return response, nil
	}

	c.logger.Debug().Str("path", path).Msg("access token refreshed, retrying request")
	response.Body.Close()

	return c.send(ctx, method, path, body, headers, newToken)
}

// send issues one request. The bearer header is set after merging caller
// headers so callers cannot override it.
func (c *Client) send(ctx context.Context, method string, path string, body []byte, headers http.Header, token string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for key, values := range headers {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	if request.Header.Get("Content-Type") == "" {
		request.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, responseErr := requesting.RequestErrors(c.httpClient().Do(request))
	if responseErr != nil {
		return nil, responseErr
	}

	return response, nil
}
