// Package resolver provides the adapters that find the host's current public IPv6 address.
package resolver

import (
	"context"
	"strings"

	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// StaticResolver returns an address taken from the config file.
type StaticResolver struct {
	address string
	logger  logrus.FieldLogger
}

// Ensure StaticResolver implements the AddressResolver port
var _ port.AddressResolver = (*StaticResolver)(nil)

// NewStaticResolver creates a resolver for a fixed address.
func NewStaticResolver(address string, logger logrus.FieldLogger) *StaticResolver {
	return &StaticResolver{address: strings.TrimSpace(address), logger: logger}
}

// Resolve returns the configured address without touching the network.
func (r *StaticResolver) Resolve(ctx context.Context) (string, error) {
	r.logger.WithField("address", r.address).Debug("Using static IPv6 address from config")
	return r.address, nil
}
