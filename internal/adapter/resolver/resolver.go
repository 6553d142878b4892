package resolver

import (
	"net/http"
	"strings"

	"ovh-ddns/internal/pkg/config"
	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// New picks the resolver for cfg: a configured ipv6 wins, then interface,
// then a dns:// lookup URL, and otherwise an HTTP lookup of url_lookup.
func New(cfg config.OVHConfig, httpClient *http.Client, networkMgr port.NetworkManager, logger logrus.FieldLogger) (port.AddressResolver, error) {
	switch {
	case cfg.IPv6 != "":
		return NewStaticResolver(cfg.IPv6, logger), nil
	case cfg.Interface != "":
		return NewInterfaceResolver(cfg.Interface, networkMgr, logger), nil
	case strings.HasPrefix(strings.ToLower(cfg.URLLookup), SchemeDNS+"://"):
		r, err := NewDNSResolver(cfg.URLLookup, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return NewWebResolver(cfg.URLLookup, httpClient, logger), nil
	}
}
