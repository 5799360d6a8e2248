package requesting

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
)

func isOk(code int) bool {
	return code >= 200 && code <= 299
}

// DecodeJSON normalizes a raw upstream response into dest.
//
// Order matters: an HTML content type means the backend served an error
// page instead of the API, an empty body is a valid "no content" success,
// and only then is the body parsed as JSON. Failure statuses surface the
// upstream message field when one is present.
func DecodeJSON(response *http.Response, operation string, dest any) error {
	defer response.Body.Close()

	bodyBytes, readErr := io.ReadAll(response.Body)
	if readErr != nil {
		return schema.NewConnectionError(readErr.Error())
	}

	body := string(bodyBytes)

	contentType := response.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		responseError := schema.NewHTMLBodyError(operation, body)
		responseError.Status = response.StatusCode
		return responseError
	}

	if strings.TrimSpace(body) == "" {
		if !isOk(response.StatusCode) {
			return schema.NewBackendError(operation, response.StatusCode, "")
		}

		// empty body on success, leave dest untouched
		return nil
	}

	if !json.Valid(bodyBytes) {
		responseError := schema.NewInvalidJSONError(operation, body)
		responseError.Status = response.StatusCode
		return responseError
	}

	if !isOk(response.StatusCode) {
		var probe struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(bodyBytes, &probe)

		return schema.NewBackendError(operation, response.StatusCode, probe.Message)
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, dest); err != nil {
		responseError := schema.NewInvalidJSONError(operation, body)
		responseError.Status = response.StatusCode
		return responseError
	}

	return nil
}

// DecodeProfileJSON applies the profile adapter rule on top of DecodeJSON:
// the upstream profile endpoint sometimes returns the user object
// unwrapped, in which case it is folded into the normalized shape.
func DecodeProfileJSON(response *http.Response, operation string) (*schema.AuthResponse, error) {
	var raw map[string]json.RawMessage
	if err := DecodeJSON(response, operation, &raw); err != nil {
		return nil, err
	}

	if raw == nil {
		return &schema.AuthResponse{Success: true}, nil
	}

	_, hasUser := raw["user"]
	_, hasId := raw["id"]
	_, hasEmail := raw["email"]

	if !hasUser && (hasId || hasEmail) {
		merged, _ := json.Marshal(raw)

		var user schema.User
		if err := json.Unmarshal(merged, &user); err != nil {
			return nil, schema.NewInvalidJSONError(operation, string(merged))
		}

		return &schema.AuthResponse{
			Success: true,
			Message: "Profile fetched successfully",
			User:    &user,
		}, nil
	}

	merged, _ := json.Marshal(raw)

	var profile schema.AuthResponse
	if err := json.Unmarshal(merged, &profile); err != nil {
		return nil, schema.NewInvalidJSONError(operation, string(merged))
	}
	profile.Success = true

	return &profile, nil
}
