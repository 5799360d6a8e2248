package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
	"bitbucket.org/crgw/rental-gateway/internal/tools/requesting"
)

// redirectExtractor probes one candidate shape of the payment response
// for the redirect target.
type redirectExtractor func(schema.PaymentResponse) (string, bool)

func fieldExtractor(key string) redirectExtractor {
	return func(payment schema.PaymentResponse) (string, bool) {
		value, ok := payment[key].(string)
		if !ok || !strings.HasPrefix(value, "http") {
			return "", false
		}

		return value, true
	}
}

// Tried in order. The upstream has not settled on a field name for the
// redirect URL; the additionalProp keys are swagger placeholder shapes
// the backend has been seen echoing back.
var redirectExtractors = []redirectExtractor{
	fieldExtractor("url"),
	fieldExtractor("redirectUrl"),
	fieldExtractor("checkoutUrl"),
	fieldExtractor("paymentUrl"),
	fieldExtractor("phpUrl"),
	fieldExtractor("additionalProp1"),
	fieldExtractor("additionalProp2"),
	fieldExtractor("additionalProp3"),
}

// CreateBooking submits the composed booking payload to the
// payment-initiation endpoint and returns the normalized response body.
func (c *Client) CreateBooking(ctx context.Context, booking schema.BookingRequest) (schema.PaymentResponse, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, err
	}

	response, err := c.Do(ctx, http.MethodPost, "/api/bookings/v2/pay", body, nil)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusUnauthorized {
		response.Body.Close()
		return nil, schema.NewSessionExpiredError()
	}

	payment := schema.PaymentResponse{}
	if err := requesting.DecodeJSON(response, "booking", &payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// InitiatePayment creates the booking and extracts the external payment
// redirect URL from the response. No URL-shaped field means the caller
// must not redirect anywhere.
func (c *Client) InitiatePayment(ctx context.Context, booking schema.BookingRequest) (string, error) {
	payment, err := c.CreateBooking(ctx, booking)
	if err != nil {
		return "", err
	}

	for _, extract := range redirectExtractors {
		if redirectUrl, ok := extract(payment); ok {
			return redirectUrl, nil
		}
	}

	c.logger.Error().
		Int("fields", len(payment)).
		Msg("payment response carried no redirect URL")

	return "", schema.NewPaymentURLError()
}
