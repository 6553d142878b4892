// Package httpclient builds the HTTP clients used for address lookups and DDNS updates.
package httpclient

import (
	"context"
	"net"
	"net/http"
	"time"

	"ovh-ddns/internal/pkg/version"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
)

// Network values accepted by Config.Network.
const (
	NetworkAny  = "tcp"
	NetworkIPv6 = "tcp6"
)

// Config contains configuration for creating an HTTP client.
type Config struct {
	// Network forces the address family used to dial, e.g. NetworkIPv6.
	// Empty means NetworkAny.
	Network string

	// UserAgent is set on requests that do not carry one.
	// Defaults to "ovh-ddns/<version>".
	UserAgent string

	// Logger receives debug entries for each request and response. Optional.
	Logger logrus.FieldLogger
}

// userAgentTransport wraps an http.RoundTripper to add the User-Agent header
// and log requests at debug level.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
	logger    logrus.FieldLogger
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	// URL is logged without userinfo; credentials travel in the Authorization header
	if t.logger != nil {
		t.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    req.URL.Redacted(),
		}).Debug("HTTP request")
	}

	resp, err := t.base.RoundTrip(req)

	if t.logger != nil && resp != nil {
		t.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    req.URL.Redacted(),
			"status": resp.StatusCode,
		}).Debug("HTTP response")
	}

	return resp, err
}

// New creates an HTTP client from cfg. The client has no overall timeout:
// a request blocks until the server answers or the context is cancelled.
func New(cfg Config) *http.Client {
	network := cfg.Network
	if network == "" {
		network = NetworkAny
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.Name + "/" + version.Version
	}

	transport := cleanhttp.DefaultPooledTransport()
	dialer := &net.Dialer{KeepAlive: 30 * time.Second}
	transport.DialContext = func(ctx context.Context, _, addr string) (net.Conn, error) {
		return dialer.DialContext(ctx, network, addr)
	}

	return &http.Client{
		Transport: &userAgentTransport{
			base:      transport,
			userAgent: userAgent,
			logger:    cfg.Logger,
		},
	}
}
