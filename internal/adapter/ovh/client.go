// Package ovh implements the DDNSUpdater port against OVH's DynHost endpoint.
package ovh

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the dyndns update URL without its query.
const DefaultEndpoint = "https://dns.eu.ovhapis.com/nic/update"

// maxResponseSize bounds how much of the provider's reply is kept for logging.
const maxResponseSize = 512

// Client sends dyndns-style updates authenticated with HTTP Basic auth.
type Client struct {
	endpoint   string
	username   string
	password   string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Ensure Client implements the DDNSUpdater port
var _ port.DDNSUpdater = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient sets the HTTP client used for updates.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates an updater for the given DynHost credentials.
func NewClient(username, password string, logger logrus.FieldLogger, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		username:   username,
		password:   password,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateURL returns the request URL for hostname and address.
// The query keeps the order system, hostname, myip.
func (c *Client) UpdateURL(hostname, address string) string {
	return fmt.Sprintf("%s?system=dyndns&hostname=%s&myip=%s",
		c.endpoint, url.QueryEscape(hostname), url.QueryEscape(address))
}

// Update issues one GET to the update endpoint. Any transport error or non-2xx
// status is a failure; the body of the reply is not interpreted.
func (c *Client) Update(ctx context.Context, hostname, address string) error {
	c.logger.Infof("Updating OVH DDNS for %s -> %s", hostname, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UpdateURL(hostname, address), nil)
	if err != nil {
		return fmt.Errorf("error creating update request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	c.logger.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"response": strings.TrimSpace(string(body)),
	}).Debug("OVH DDNS response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("update request returned %s", resp.Status)
	}

	c.logger.Info("OVH DDNS update complete.")
	return nil
}
