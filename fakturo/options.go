package fakturo

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	userAgent  string
	login      string
	password   string
	httpClient *http.Client
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithBasicAuth sets the account credentials used by the token-retrieval
// endpoint. No other endpoint uses them.
func WithBasicAuth(login, password string) Option {
	return func(o *clientOptions) {
		o.login = login
		o.password = password
	}
}

// WithHTTPClient injects a custom HTTP client. WithTimeout is ignored when
// a client is injected.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}
