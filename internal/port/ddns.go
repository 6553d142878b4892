// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"
)

//go:generate mockgen -destination=../mock/mock_port.go -package=mock ovh-ddns/internal/port AddressResolver,DDNSUpdater,StateStore,FileManager,NetworkManager

// AddressResolver is the port for finding the host's current public IPv6 address.
// Implementations return the address as a trimmed string and do not validate it.
type AddressResolver interface {
	// Resolve returns the current address
	Resolve(ctx context.Context) (string, error)
}

// DDNSUpdater is the port for pushing an address to a dynamic-DNS provider.
type DDNSUpdater interface {
	// Update points hostname at address. A nil error means the provider accepted the request.
	Update(ctx context.Context, hostname, address string) error
}

// StateStore is the port for the last successfully applied address.
type StateStore interface {
	// ReadLast returns the cached address; ok is false when nothing is cached
	ReadLast() (address string, ok bool, err error)

	// WriteCurrent replaces the cached address
	WriteCurrent(address string) error
}
