package ipprovider

import (
	"context"
	"net/netip"
)

// Provider discovers the host's public IPv4 address.
//
// GetCurrentIP returns an invalid netip.Addr and a nil error when the service
// answered but no IPv4 address could be determined from it.
type Provider interface {
	GetCurrentIP(ctx context.Context) (netip.Addr, error)
	GetProviderName() string
}
