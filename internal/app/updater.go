// Package app runs one DDNS check: resolve, compare with the cache, update, persist.
package app

import (
	"context"
	"strings"

	"ovh-ddns/internal/port"

	"github.com/sirupsen/logrus"
)

// Outcome is the result of a successful run.
type Outcome int

const (
	OutcomeSkipped Outcome = iota + 1
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Result describes a successful run.
type Result struct {
	Outcome  Outcome
	Address  string
	Previous string
}

// Updater wires the resolver, the address cache and the DDNS provider together.
type Updater struct {
	hostname string
	resolver port.AddressResolver
	store    port.StateStore
	ddns     port.DDNSUpdater
	logger   logrus.FieldLogger
}

// NewUpdater creates an Updater for hostname.
func NewUpdater(hostname string, resolver port.AddressResolver, store port.StateStore, ddns port.DDNSUpdater, logger logrus.FieldLogger) *Updater {
	return &Updater{
		hostname: hostname,
		resolver: resolver,
		store:    store,
		ddns:     ddns,
		logger:   logger,
	}
}

// Run performs one check. The cache is written only after the provider accepted
// the update, so a failed update leaves the previous address in place.
// Errors are *Error values carrying the failing step.
func (u *Updater) Run(ctx context.Context) (Result, error) {
	address, err := u.resolver.Resolve(ctx)
	if err != nil {
		return Result{}, Wrap(KindLookupFailed, err)
	}
	address = strings.TrimSpace(address)

	last, ok, err := u.store.ReadLast()
	if err != nil {
		return Result{}, Wrap(KindStateFailed, err)
	}

	if ok && last == address {
		u.logger.Infof("No IPv6 change detected (%s). Skipping update.", address)
		return Result{Outcome: OutcomeSkipped, Address: address, Previous: last}, nil
	}

	if err := u.ddns.Update(ctx, u.hostname, address); err != nil {
		return Result{}, Wrap(KindUpdateFailed, err)
	}

	if err := u.store.WriteCurrent(address); err != nil {
		return Result{}, Wrap(KindStateFailed, err)
	}
	u.logger.Infof("Stored new IPv6 address: %s", address)

	return Result{Outcome: OutcomeUpdated, Address: address, Previous: last}, nil
}
