package resolver

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"ovh-ddns/internal/port"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// SchemeDNS selects the DNSResolver in url_lookup, e.g.
// dns://resolver1.ipv6-sandbox.opendns.com/myip.opendns.com
const SchemeDNS = "dns"

// DNSResolver finds the public address by asking a DNS server that answers an
// AAAA query with the address of the client that sent it.
type DNSResolver struct {
	server string
	name   string
	client *dns.Client
	logger logrus.FieldLogger
}

// Ensure DNSResolver implements the AddressResolver port
var _ port.AddressResolver = (*DNSResolver)(nil)

// DNSOption configures a DNSResolver.
type DNSOption func(*DNSResolver)

// WithDNSNetwork overrides the transport, "udp6" by default.
func WithDNSNetwork(network string) DNSOption {
	return func(r *DNSResolver) {
		r.client.Net = network
	}
}

// NewDNSResolver parses a dns://server[:port]/name URL.
func NewDNSResolver(lookupURL string, logger logrus.FieldLogger, opts ...DNSOption) (*DNSResolver, error) {
	u, err := url.Parse(lookupURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing lookup URL %s: %w", lookupURL, err)
	}
	if u.Scheme != SchemeDNS {
		return nil, fmt.Errorf("lookup URL %s: scheme must be %s", lookupURL, SchemeDNS)
	}

	name := strings.Trim(u.Path, "/")
	if u.Hostname() == "" || name == "" {
		return nil, fmt.Errorf("lookup URL %s: expected dns://server/name", lookupURL)
	}

	server := u.Host
	if u.Port() == "" {
		server = net.JoinHostPort(u.Hostname(), "53")
	}

	r := &DNSResolver{
		server: server,
		name:   dns.Fqdn(name),
		client: &dns.Client{Net: "udp6"},
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve sends one AAAA query and returns the first AAAA answer.
func (r *DNSResolver) Resolve(ctx context.Context) (string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(r.name, dns.TypeAAAA)

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return "", fmt.Errorf("AAAA query for %s to %s failed: %w", r.name, r.server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("AAAA query for %s to %s returned %s", r.name, r.server, dns.RcodeToString[resp.Rcode])
	}

	for _, rr := range resp.Answer {
		if aaaa, ok := rr.(*dns.AAAA); ok {
			address := aaaa.AAAA.String()
			r.logger.Infof("Obtained IPv6 from dns://%s/%s: %s", r.server, r.name, address)
			return address, nil
		}
	}
	return "", fmt.Errorf("AAAA query for %s to %s returned no AAAA record", r.name, r.server)
}
