package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// maxBodySize bounds how much of the lookup response is read.
const maxBodySize = 4096

// WebResolver asks an HTTP "what is my IP" service for the caller's address.
// The trimmed response body is returned as-is; it is not checked to be an IPv6 literal.
type WebResolver struct {
	url        string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Ensure WebResolver implements the AddressResolver port
var _ port.AddressResolver = (*WebResolver)(nil)

// NewWebResolver creates a resolver for lookupURL. httpClient should dial over IPv6 only
// so the service sees the IPv6 address.
func NewWebResolver(lookupURL string, httpClient *http.Client, logger logrus.FieldLogger) *WebResolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WebResolver{url: lookupURL, httpClient: httpClient, logger: logger}
}

// Resolve performs a single GET against the lookup service.
func (r *WebResolver) Resolve(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request for %s: %w", r.url, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "text/plain")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup request to %s failed: %w", r.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("lookup request to %s returned %s", r.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("error reading response from %s: %w", r.url, err)
	}

	address := strings.TrimSpace(string(body))
	r.logger.Infof("Obtained IPv6 from %s: %s", r.url, address)
	return address, nil
}
