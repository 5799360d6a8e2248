package requesting

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type TransportMiddleware func(http.RoundTripper) http.RoundTripper

type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

type LoggingTransportMiddleware struct {
	Transport http.RoundTripper
	log       *zerolog.Logger
}

func NewLoggingTransportMiddleware(log *zerolog.Logger) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &LoggingTransportMiddleware{
			log:       log,
			Transport: rt,
		}
	}
}

func (t *LoggingTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	message := t.log.Info().
		Str("label", "outgoing-request").
		Str("method", req.Method).
		Str("url", req.URL.String())

	defer func() {
		message.
			Float64("duration", time.Since(startTime).Seconds()).
			Msg("")
	}()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		message.Str("error", err.Error())
		return nil, err
	}

	message.Int("code", resp.StatusCode)

	return resp, nil
}

// RecordedRequest is a snapshot of one outgoing request and its response,
// kept by the Recorder for inspection.
type RecordedRequest struct {
	Method      string
	Url         string
	RequestBody string
	Status      int
	Headers     http.Header
}

type Recorder struct {
	recorded []RecordedRequest
	sync.Mutex
}

func NewRecorder() *Recorder {
	return &Recorder{
		recorded: []RecordedRequest{},
	}
}

func (r *Recorder) Recorded() []RecordedRequest {
	r.Lock()
	defer r.Unlock()

	out := make([]RecordedRequest, len(r.recorded))
	copy(out, r.recorded)

	return out
}

func (r *Recorder) add(record RecordedRequest) {
	r.Lock()
	r.recorded = append(r.recorded, record)
	r.Unlock()
}

type recorderTransportMiddleware struct {
	Transport http.RoundTripper
	recorder  *Recorder
}

func NewRecorderTransportMiddleware(recorder *Recorder) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &recorderTransportMiddleware{
			Transport: rt,
			recorder:  recorder,
		}
	}
}

func (m *recorderTransportMiddleware) RoundTrip(request *http.Request) (*http.Response, error) {
	record := RecordedRequest{
		Method:  request.Method,
		Url:     request.URL.String(),
		Headers: request.Header.Clone(),
	}

	if request.Body != nil {
		requestBytes, _ := io.ReadAll(request.Body)
		request.Body.Close()
		request.Body = io.NopCloser(bytes.NewBuffer(requestBytes))
		record.RequestBody = string(requestBytes)
	}

	response, err := m.Transport.RoundTrip(request)
	if err != nil {
		m.recorder.add(record)
		return nil, err
	}

	record.Status = response.StatusCode
	m.recorder.add(record)

	return response, nil
}
