package gateway

import (
	"net/http"
	"net/url"
)

// requestOptions collects per-request settings before dispatch. The
// access-key marker lives here, on the Go side only, so no marker can ever
// be serialized onto the wire.
type requestOptions struct {
	params       url.Values
	headers      http.Header
	useAccessKey bool
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

// WithParam adds a query parameter to the request.
func WithParam(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.params.Set(key, value)
	}
}

// WithParams adds a set of query parameters to the request.
func WithParams(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		for k, v := range params {
			o.params.Set(k, v)
		}
	}
}

// WithHeader adds an extra header to the request.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// WithAccessKey marks the request to carry the session access key (under
// the configured header name) in addition to the bearer token. The marker
// is consumed during credential attachment and never transmitted.
func WithAccessKey() RequestOption {
	return func(o *requestOptions) {
		o.useAccessKey = true
	}
}

func buildOptions(opts []RequestOption) requestOptions {
	o := requestOptions{
		params:  url.Values{},
		headers: http.Header{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
