package upstream

import (
	"net/http"
	"os"
	"time"
)

const DefaultTimeout = 10 * time.Second

type OptionFunc func(o *Options)

type Options struct {
	// BaseURL - full URL of the upstream rental API (including protocol).
	// Defaults to UPSTREAM_API_URL.
	baseURL string

	// Timeout - if not set, then default timeout is used
	timeout time.Duration

	// Convention for owner-scoped catalog endpoints
	convention PathConvention

	// Transport - overridable for tests and instrumentation
	transport http.RoundTripper
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *Options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *Options) {
		o.timeout = timeout
	}
}

func WithPathConvention(convention PathConvention) OptionFunc {
	return func(o *Options) {
		o.convention = convention
	}
}

func WithTransport(transport http.RoundTripper) OptionFunc {
	return func(o *Options) {
		o.transport = transport
	}
}

func NewOptions(optionFuncs ...OptionFunc) *Options {
	options := &Options{}

	for _, optionFunc := range optionFuncs {
		optionFunc(options)
	}

	return options
}

func (o *Options) BaseURL() string {
	if o.baseURL != "" {
		return o.baseURL
	}

	return os.Getenv("UPSTREAM_API_URL")
}

func (o *Options) Timeout() time.Duration {
	if o.timeout != 0 {
		return o.timeout
	}

	return DefaultTimeout
}

func (o *Options) Convention() PathConvention {
	if o.convention == "" {
		return PathConventionCurrent
	}

	return o.convention
}

func (o *Options) Transport() http.RoundTripper {
	if o.transport != nil {
		return o.transport
	}

	return http.DefaultTransport
}
