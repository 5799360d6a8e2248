package upstream

import (
	"net/http"
	"time"

	"bitbucket.org/crgw/rental-gateway/internal/tools/credstore"
	"bitbucket.org/crgw/rental-gateway/internal/tools/requesting"
	"github.com/rs/zerolog"
)

// Client talks to the upstream rental API on behalf of one session. It
// owns bearer attachment, the single refresh-and-retry cycle on 401 and
// response normalization; callers only ever see typed values or typed
// errors.
type Client struct {
	credentials *credstore.Store
	logger      *zerolog.Logger
	baseURL     string
	timeout     time.Duration
	paths       Paths
	transport   http.RoundTripper
}

func New(credentials *credstore.Store, logger *zerolog.Logger, optionFuncs ...OptionFunc) *Client {
	options := NewOptions(optionFuncs...)

	return &Client{
		credentials: credentials,
		logger:      logger,
		baseURL:     options.BaseURL(),
		timeout:     options.Timeout(),
		paths:       PathsFor(options.Convention()),
		transport:   options.Transport(),
	}
}

func (c *Client) Credentials() *credstore.Store {
	return c.credentials
}

func (c *Client) httpClient() *http.Client {
	return &http.Client{
		Timeout: c.timeout,
		Transport: &requesting.InterceptorTransport{
			Transport: c.transport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(c.logger),
			},
		},
	}
}
