package resolver

import (
	"context"
	"fmt"

	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// Address flags from linux/if_addr.h
const (
	ifaFlagTemporary  = 0x01
	ifaFlagDADFailed  = 0x08
	ifaFlagDeprecated = 0x20
	ifaFlagTentative  = 0x40

	unusableFlags = ifaFlagTemporary | ifaFlagDADFailed | ifaFlagDeprecated | ifaFlagTentative
)

// InterfaceResolver reads the address straight off a local interface, for hosts
// whose interface already carries the public IPv6 address.
type InterfaceResolver struct {
	ifaceName  string
	networkMgr port.NetworkManager
	logger     logrus.FieldLogger
}

// Ensure InterfaceResolver implements the AddressResolver port
var _ port.AddressResolver = (*InterfaceResolver)(nil)

// NewInterfaceResolver creates a resolver for the named interface.
func NewInterfaceResolver(ifaceName string, networkMgr port.NetworkManager, logger logrus.FieldLogger) *InterfaceResolver {
	return &InterfaceResolver{ifaceName: ifaceName, networkMgr: networkMgr, logger: logger}
}

// Resolve returns the first global unicast, non-ULA IPv6 address on the interface.
// Temporary (privacy), deprecated and not-yet-usable addresses are skipped.
func (r *InterfaceResolver) Resolve(ctx context.Context) (string, error) {
	link, err := r.networkMgr.GetLinkByName(r.ifaceName)
	if err != nil {
		return "", err
	}

	addrs, err := r.networkMgr.ListAddresses(link)
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		if addr.IPNet == nil {
			continue
		}
		ip := addr.IP
		if ip.To4() != nil || !ip.IsGlobalUnicast() || ip.IsPrivate() {
			continue
		}
		if addr.Flags&unusableFlags != 0 {
			continue
		}

		address := ip.String()
		r.logger.Infof("Obtained IPv6 from interface %s: %s", r.ifaceName, address)
		return address, nil
	}

	return "", fmt.Errorf("no global IPv6 address on interface %s", r.ifaceName)
}
