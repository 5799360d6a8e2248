package requesting

import (
	"net/http"
	"os"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
)

// RequestErrors maps transport-level failures onto typed response errors.
// Status handling is left to the normalizer so that callers can still see
// the raw response (the 401 retry protocol depends on it).
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.ResponseError) {
	if err != nil {
		if os.IsTimeout(err) {
			return nil, schema.NewTimeoutError(err.Error())
		}

		return nil, schema.NewConnectionError(err.Error())
	}

	return response, nil
}
